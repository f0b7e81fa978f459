// Package cache stores solve results keyed by the grid and settings that
// produced them, so repeated runs on the same input skip the solver.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/piwi3910/slicecut/internal/model"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ResultTTL is how long solve results stay cached.
const ResultTTL = 30 * 24 * time.Hour

// ResultKey builds the cache key for solving g with settings. Only the
// settings that change the outcome take part in the key.
func ResultKey(g *model.Grid, settings model.SolveSettings) string {
	return hashKey("result",
		g.Rows, g.Cols, g.MinIngredients, g.MaxCells, cellString(g),
		settings.Method, settings.MaxSteps, settings.DropInvalid,
	)
}

// GetResult looks up a cached result for g and settings.
func GetResult(ctx context.Context, c Cache, g *model.Grid, settings model.SolveSettings) (model.SolveResult, bool, error) {
	data, ok, err := c.Get(ctx, ResultKey(g, settings))
	if err != nil || !ok {
		return model.SolveResult{}, false, err
	}
	var result model.SolveResult
	if err := json.Unmarshal(data, &result); err != nil {
		return model.SolveResult{}, false, nil
	}
	if result.Rows != g.Rows || result.Cols != g.Cols {
		return model.SolveResult{}, false, nil
	}
	return result, true, nil
}

// PutResult stores result for g and settings.
func PutResult(ctx context.Context, c Cache, g *model.Grid, settings model.SolveSettings, result model.SolveResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return c.Set(ctx, ResultKey(g, settings), data, ResultTTL)
}

func cellString(g *model.Grid) string {
	b := make([]byte, len(g.Cells))
	for i, c := range g.Cells {
		b[i] = byte(c)
	}
	return string(b)
}
