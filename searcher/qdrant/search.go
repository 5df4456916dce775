package qdrant

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hupe1980/annrecall/model"
)

// ErrCollectionNotFound is returned when the configured collection does not
// exist on the server.
var ErrCollectionNotFound = errors.New("collection not found")

// Search performs a dense vector query and returns the point identifiers in
// the server's ranking order. It implements searcher.Searcher.
func (c *Client) Search(ctx context.Context, vector []float32, k int) ([]model.ID, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrClosed
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("query vector is required")
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	queryPoints := &qdrant.QueryPoints{
		CollectionName: c.config.Collection,
		Query:          qdrant.NewQueryDense(vector),
		Limit:          qdrant.PtrOf(uint64(k)),
	}
	if c.config.VectorName != "" {
		queryPoints.Using = qdrant.PtrOf(c.config.VectorName)
	}

	points, err := c.client.Query(ctx, queryPoints)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, c.config.Collection)
		}
		return nil, fmt.Errorf("dense search failed: %w", err)
	}

	ids := make([]model.ID, 0, len(points))
	for _, point := range points {
		ids = append(ids, pointIDToModelID(point.GetId()))
	}

	return ids, nil
}

// pointIDToModelID converts a Qdrant point id (UUID or numeric) to the
// evaluator's string identifier space.
func pointIDToModelID(id *qdrant.PointId) model.ID {
	if id == nil {
		return ""
	}
	if uuid := id.GetUuid(); uuid != "" {
		return model.ID(uuid)
	}
	return model.ID(strconv.FormatUint(id.GetNum(), 10))
}
