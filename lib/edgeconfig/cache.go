package edgeconfig

import (
	"context"
	"sync/atomic"

	"portfolio/lib/models"
)

// Cache holds an EdgeConfig for the life of the execution environment
type Cache interface {
	GetOrResolve(ctx context.Context, resolver ConfigResolver) (*models.EdgeConfig, error)
	Reset()
}

// OnceCache keeps the first successful resolution. Failures are not stored, so the
// next invocation retries. Two cold invocations racing both resolve and the later
// store overwrites the earlier one with an identical value.
type OnceCache struct {
	value atomic.Pointer[models.EdgeConfig]
}

func (c *OnceCache) GetOrResolve(ctx context.Context, resolver ConfigResolver) (*models.EdgeConfig, error) {
	if cfg := c.value.Load(); cfg != nil {
		return cfg, nil
	}
	cfg, err := resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	c.value.Store(cfg)
	return cfg, nil
}

func (c *OnceCache) Reset() {
	c.value.Store(nil)
}

// NoCache resolves on every call
type NoCache struct{}

func (NoCache) GetOrResolve(ctx context.Context, resolver ConfigResolver) (*models.EdgeConfig, error) {
	return resolver.Resolve(ctx)
}

func (NoCache) Reset() {}
