package annrecall

import (
	"errors"
	"fmt"

	"github.com/hupe1980/annrecall/distance"
	"github.com/hupe1980/annrecall/model"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrEmptyTrainingSet is returned when a training set is built from no vectors.
	ErrEmptyTrainingSet = errors.New("training set must not be empty")

	// ErrEmptyQuerySet is returned when a query set contains no vectors.
	ErrEmptyQuerySet = errors.New("query set must not be empty")

	// ErrCountMismatch is returned when queries, ground truth and approximate
	// results do not have pairwise matching lengths.
	ErrCountMismatch = errors.New("queries, ground truth and results must have equal length")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrMetricMismatch indicates that a ground truth was computed with a
// different distance metric than the evaluator scores with. A single run must
// use one metric throughout; mixing metrics makes thresholds meaningless.
type ErrMetricMismatch struct {
	Expected distance.Metric
	Actual   distance.Metric
}

func (e *ErrMetricMismatch) Error() string {
	return fmt.Sprintf("metric mismatch: evaluator uses %s, ground truth was computed with %s", e.Expected, e.Actual)
}

// ErrInsufficientData indicates that the training set is smaller than the
// requested neighbor count k.
type ErrInsufficientData struct {
	Have int
	Need int
}

func (e *ErrInsufficientData) Error() string {
	return fmt.Sprintf("insufficient data: training set has %d vectors, need at least %d", e.Have, e.Need)
}

// ErrDuplicateIdentifier indicates that two training vectors share the same
// identifier.
type ErrDuplicateIdentifier struct {
	ID model.ID
}

func (e *ErrDuplicateIdentifier) Error() string {
	return fmt.Sprintf("duplicate identifier: %q", e.ID)
}

// ErrUnknownIdentifier indicates that an approximate result references an
// identifier absent from the training set. This signals a mismatch between
// the search system's index and the evaluator's training set and must be
// surfaced, never silently skipped.
type ErrUnknownIdentifier struct {
	ID    model.ID
	Query int
}

func (e *ErrUnknownIdentifier) Error() string {
	return fmt.Sprintf("unknown identifier %q in result for query %d", e.ID, e.Query)
}
