package service

import (
	"context"
	"time"

	"github.com/cuducos/astronomer/model"
	"github.com/hashicorp/golang-lru/v2/expirable"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

type CacheKey struct {
	Login  string
	Status model.RepositoryStatus
}

func (k CacheKey) String() string {
	return k.Login + "|" + string(k.Status)
}

type ComputeFunc func(ctx context.Context) (model.AccountResult, error)

// ResultCache keep computed results during a fixed TTL
// concurrent misses on the same key share a single computation
// while different keys are computed independently
type ResultCache struct {
	results *expirable.LRU[CacheKey, model.AccountResult]
	flights singleflight.Group
}

// NewResultCache create the cache, a maxEntries of 0 means no limit on the number of keys
func NewResultCache(ttl time.Duration, maxEntries int) *ResultCache {
	return &ResultCache{
		results: expirable.NewLRU[CacheKey, model.AccountResult](maxEntries, nil, ttl),
	}
}

// GetOrCompute return the cached result for the key or run compute to get it
// failures are sent to every caller waiting for the same computation but are never cached
// the computation is not cancelled when ctx is done: other callers may still be waiting for it
func (c *ResultCache) GetOrCompute(ctx context.Context, key CacheKey, compute ComputeFunc) (model.AccountResult, error) {
	if result, found := c.results.Get(key); found {
		log.WithField("key", key.String()).Debug("result found in cache")
		return result, nil
	}

	flightCtx := context.WithoutCancel(ctx)

	ch := c.flights.DoChan(key.String(), func() (interface{}, error) {
		// a previous flight could have finished between the lookup and this one
		if result, found := c.results.Get(key); found {
			return result, nil
		}

		result, err := compute(flightCtx)
		if err != nil {
			return nil, err
		}

		c.results.Add(key, result)
		return result, nil
	})

	select {
	case <-ctx.Done():
		return model.AccountResult{}, ctx.Err()

	case res := <-ch:
		if res.Err != nil {
			return model.AccountResult{}, res.Err
		}

		if res.Shared {
			log.WithField("key", key.String()).Debug("result shared with concurrent requests")
		}

		return res.Val.(model.AccountResult), nil
	}
}

// Len return the number of results currently cached (expired ones included until purged)
func (c *ResultCache) Len() int {
	return c.results.Len()
}
