package slice

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"slicedss/monitoring"
)

// CachedEvaluator memoizes recommendations in memory. Evaluation is a pure
// function of the request for the lifetime of the loaded artifacts, so entries
// never go stale.
type CachedEvaluator struct {
	next   Recommender
	cache  *lru.Cache[Request, *Recommendation]
	logger *zap.Logger
}

func NewCachedEvaluator(next Recommender, size int, logger *zap.Logger) (*CachedEvaluator, error) {
	cache, err := lru.New[Request, *Recommendation](size)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedEvaluator{next: next, cache: cache, logger: logger}, nil
}

func (c *CachedEvaluator) Evaluate(ctx context.Context, req Request) (*Recommendation, error) {
	// Invalid requests go through so the inner evaluator rejects them.
	if req.Validate() == nil {
		if rec, ok := c.cache.Get(req); ok {
			monitoring.ObserveCache(true)
			return rec.clone(), nil
		}
		monitoring.ObserveCache(false)
	}

	rec, err := c.next.Evaluate(ctx, req)
	if err != nil {
		return nil, err
	}
	if evicted := c.cache.Add(req, rec.clone()); evicted {
		c.logger.Debug("result cache full, evicted oldest entry", zap.Int("size", c.cache.Len()))
	}
	return rec, nil
}

func (c *CachedEvaluator) Len() int {
	return c.cache.Len()
}
