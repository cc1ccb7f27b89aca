package resolver

import (
	"context"

	"github.com/NilFoundation/suiflow/core/types"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const DefaultCacheSize = 1024

// Cache keeps initial shared versions. They never change for an object, so
// entries are written once and never invalidated. Concurrent misses on the same
// id share a single remote lookup.
type Cache struct {
	versions *lru.Cache[types.ObjectId, uint64]
	inflight singleflight.Group
}

func NewCache(size int) (*Cache, error) {
	versions, err := lru.New[types.ObjectId, uint64](size)
	if err != nil {
		return nil, err
	}
	return &Cache{versions: versions}, nil
}

func (c *Cache) Get(id types.ObjectId) (uint64, bool) {
	return c.versions.Get(id)
}

func (c *Cache) Len() int {
	return c.versions.Len()
}

// getOrLoad returns the cached version or runs load once for all concurrent
// callers. load runs detached from the cancellation of the caller that started
// it, so a caller that gives up does not fail the others; each caller still
// returns as soon as its own ctx is done.
func (c *Cache) getOrLoad(
	ctx context.Context, id types.ObjectId, load func(ctx context.Context) (uint64, error),
) (uint64, bool, error) {
	if v, ok := c.versions.Get(id); ok {
		return v, true, nil
	}
	loadCtx := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(id.Hex(), func() (any, error) {
		version, err := load(loadCtx)
		if err != nil {
			return uint64(0), err
		}
		c.versions.Add(id, version)
		return version, nil
	})
	select {
	case <-ctx.Done():
		return 0, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return 0, false, res.Err
		}
		return res.Val.(uint64), false, nil
	}
}
