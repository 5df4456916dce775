// Package searcher defines the approximate search capability whose results
// the recall evaluator scores.
package searcher

import (
	"context"

	"github.com/hupe1980/annrecall/model"
)

// Searcher is an external approximate nearest-neighbor search system.
// Implementations return at most k identifiers in the system's own ranking
// order; they never return distances, since the evaluator recomputes exact
// distances itself.
type Searcher interface {
	Search(ctx context.Context, vector []float32, k int) ([]model.ID, error)
}

// SearchAll issues one search per query and collects the identifier lists in
// query order, ready to be passed to the evaluator.
func SearchAll(ctx context.Context, s Searcher, queries [][]float32, k int) ([][]model.ID, error) {
	results := make([][]model.ID, len(queries))

	for qi, query := range queries {
		ids, err := s.Search(ctx, query, k)
		if err != nil {
			return nil, err
		}
		results[qi] = ids
	}

	return results, nil
}
