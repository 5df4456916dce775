package annrecall

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hupe1980/annrecall/distance"
	"github.com/hupe1980/annrecall/model"
)

// TrainingSet is an immutable collection of identified vectors with an
// id-to-position index built once at construction for O(1) lookup.
type TrainingSet struct {
	ids       []model.ID
	vectors   [][]float32
	index     map[model.ID]int
	dimension int
}

// NewTrainingSet builds a TrainingSet from identified vectors.
// All vectors must share the same dimension and identifiers must be unique.
func NewTrainingSet(items []model.IdentifiedVector) (*TrainingSet, error) {
	if len(items) == 0 {
		return nil, ErrEmptyTrainingSet
	}

	s := &TrainingSet{
		ids:       make([]model.ID, len(items)),
		vectors:   make([][]float32, len(items)),
		index:     make(map[model.ID]int, len(items)),
		dimension: len(items[0].Vector),
	}

	for i, item := range items {
		if len(item.Vector) != s.dimension {
			return nil, &ErrDimensionMismatch{Expected: s.dimension, Actual: len(item.Vector)}
		}
		if _, ok := s.index[item.ID]; ok {
			return nil, &ErrDuplicateIdentifier{ID: item.ID}
		}

		s.ids[i] = item.ID
		s.vectors[i] = item.Vector
		s.index[item.ID] = i
	}

	return s, nil
}

// Len returns the number of vectors in the training set.
func (s *TrainingSet) Len() int { return len(s.ids) }

// Dimension returns the vector dimension D.
func (s *TrainingSet) Dimension() int { return s.dimension }

// Vector returns the vector stored under id.
func (s *TrainingSet) Vector(id model.ID) ([]float32, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.vectors[i], true
}

// GroundTruth is the exact k-NN reference for a query set. It is computed
// once per (training set, query set, metric, k) tuple and read-only
// thereafter.
type GroundTruth struct {
	// K is the neighbor count every per-query list has.
	K int `json:"k"`

	// Metric is the distance metric the truth was computed with.
	Metric distance.Metric `json:"metric"`

	// Neighbors holds one neighbor list per query, aligned positionally with
	// the query set and sorted ascending by distance.
	Neighbors [][]model.Neighbor `json:"neighbors"`
}

// Report holds the recall scores of a single evaluation run.
type Report struct {
	// PerQuery holds one recall in [0,1] per query, aligned positionally
	// with the query set.
	PerQuery []float64 `json:"per_query"`

	// Mean is the arithmetic mean of PerQuery.
	Mean float64 `json:"mean"`
}

// Evaluator measures agreement between exact nearest neighbors and the
// results of an external approximate search system.
//
// Metric and k are fixed for the lifetime of an Evaluator; both ground-truth
// computation and scoring use the same exact distance function.
type Evaluator struct {
	metric           distance.Metric
	distFn           distance.Func
	k                int
	epsilon          float32
	renormalize      bool
	logger           *Logger
	metricsCollector MetricsCollector
}

// New creates an Evaluator for the given metric and neighbor count k.
func New(metric distance.Metric, k int, optFns ...Option) (*Evaluator, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}

	distFn, err := distance.Provider(metric)
	if err != nil {
		return nil, err
	}

	o := applyOptions(optFns)

	return &Evaluator{
		metric:           metric,
		distFn:           distFn,
		k:                k,
		epsilon:          o.epsilon,
		renormalize:      o.renormalizeResults,
		logger:           o.logger,
		metricsCollector: o.metricsCollector,
	}, nil
}

// K returns the configured neighbor count.
func (e *Evaluator) K() int { return e.k }

// Metric returns the configured distance metric.
func (e *Evaluator) Metric() distance.Metric { return e.metric }

// GroundTruth computes the exact k nearest training neighbors for every
// query by brute-force pairwise distance. This is an O(Q*N*D) one-time
// offline oracle; it intentionally uses no approximate index structure since
// its purpose is to be the unapproximated reference.
//
// Results are deterministic for a fixed input ordering: neighbor lists are
// sorted ascending by distance with ties broken by training order.
func (e *Evaluator) GroundTruth(ctx context.Context, train *TrainingSet, queries [][]float32) (*GroundTruth, error) {
	start := time.Now()

	gt, err := e.groundTruth(train, queries)

	e.metricsCollector.RecordGroundTruth(len(queries), time.Since(start), err)
	e.logger.LogGroundTruth(ctx, len(queries), train.Len(), e.k, err)

	return gt, err
}

func (e *Evaluator) groundTruth(train *TrainingSet, queries [][]float32) (*GroundTruth, error) {
	if len(queries) == 0 {
		return nil, ErrEmptyQuerySet
	}
	if train.Len() < e.k {
		return nil, &ErrInsufficientData{Have: train.Len(), Need: e.k}
	}

	gt := &GroundTruth{
		K:         e.k,
		Metric:    e.metric,
		Neighbors: make([][]model.Neighbor, len(queries)),
	}

	row := make([]model.Neighbor, train.Len())

	for qi, query := range queries {
		if len(query) != train.Dimension() {
			return nil, &ErrDimensionMismatch{Expected: train.Dimension(), Actual: len(query)}
		}

		for i, vector := range train.vectors {
			row[i] = model.Neighbor{ID: train.ids[i], Distance: e.distFn(query, vector)}
		}

		// Stable sort keeps training order on distance ties, making the
		// selected neighbor lists deterministic.
		sort.SliceStable(row, func(i, j int) bool { return row[i].Distance < row[j].Distance })

		neighbors := make([]model.Neighbor, e.k)
		copy(neighbors, row[:e.k])
		gt.Neighbors[qi] = neighbors
	}

	return gt, nil
}

// Evaluate scores the approximate results against the ground truth. The
// ground truth's k and metric must match the evaluator's configuration;
// a truth computed under a different metric is rejected.
//
// For each query the threshold is the k-th ground-truth distance plus
// epsilon. Every returned identifier's exact distance to the query is
// recomputed with the evaluator's metric (never taken from the approximate
// system's own scoring) and counted when it is within the threshold.
// Per-query recall is count/k; missing slots in short result lists always
// count as misses unless WithShortResultRenormalization is set.
func (e *Evaluator) Evaluate(ctx context.Context, train *TrainingSet, queries [][]float32, gt *GroundTruth, results [][]model.ID) (*Report, error) {
	start := time.Now()

	report, err := e.evaluate(train, queries, gt, results)

	e.metricsCollector.RecordEvaluate(len(queries), time.Since(start), err)

	var mean float64
	if report != nil {
		mean = report.Mean
	}
	e.logger.LogEvaluate(ctx, len(queries), mean, err)

	return report, err
}

func (e *Evaluator) evaluate(train *TrainingSet, queries [][]float32, gt *GroundTruth, results [][]model.ID) (*Report, error) {
	if gt.K != e.k {
		return nil, ErrInvalidK
	}
	if gt.Metric != e.metric {
		return nil, &ErrMetricMismatch{Expected: e.metric, Actual: gt.Metric}
	}
	if len(queries) == 0 {
		return nil, ErrEmptyQuerySet
	}
	if len(queries) != len(gt.Neighbors) || len(queries) != len(results) {
		return nil, ErrCountMismatch
	}

	report := &Report{
		PerQuery: make([]float64, len(queries)),
	}

	for qi, query := range queries {
		if len(query) != train.Dimension() {
			return nil, &ErrDimensionMismatch{Expected: train.Dimension(), Actual: len(query)}
		}

		neighbors := gt.Neighbors[qi]
		if len(neighbors) != e.k {
			return nil, fmt.Errorf("%w: ground truth for query %d has %d neighbors, want %d", ErrCountMismatch, qi, len(neighbors), e.k)
		}

		threshold := neighbors[e.k-1].Distance + e.epsilon

		returned := results[qi]
		if len(returned) > e.k {
			returned = returned[:e.k]
		}

		hits := 0
		for _, id := range returned {
			vector, ok := train.Vector(id)
			if !ok {
				return nil, &ErrUnknownIdentifier{ID: id, Query: qi}
			}
			if e.distFn(query, vector) <= threshold {
				hits++
			}
		}

		denominator := e.k
		if e.renormalize && len(returned) > 0 {
			denominator = len(returned)
		}

		report.PerQuery[qi] = float64(hits) / float64(denominator)
	}

	var sum float64
	for _, r := range report.PerQuery {
		sum += r
	}
	report.Mean = sum / float64(len(report.PerQuery))

	return report, nil
}
