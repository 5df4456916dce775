// Package distance implements the distance metrics supported by the
// recall evaluator.
//
// Both metrics follow the smaller-is-closer convention: Euclidean distance is
// non-negative with 0 meaning identical vectors, and cosine distance is
// computed as 1 - cosine similarity so that it is directly comparable against
// a per-query distance threshold.
package distance
