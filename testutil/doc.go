// Package testutil provides seeded random vector generators for tests.
package testutil
