// Package model contains the shared data types used across annrecall packages.
package model
