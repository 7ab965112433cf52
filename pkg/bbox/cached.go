package bbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/phoscity/svg2cetz/pkg/cache"
	"github.com/phoscity/svg2cetz/pkg/errors"
)

// DefaultTTL bounds how long cached query results stay valid. The cache key
// covers the document bytes, so entries only go stale when Inkscape itself
// changes its extent computation.
const DefaultTTL = 24 * time.Hour

// Cached wraps a Querier with a cache keyed on the document content and the
// queried id set.
type Cached struct {
	Inner Querier
	Cache cache.Cache
	TTL   time.Duration

	// Hit reports whether the last Query was served from cache.
	Hit bool
}

// NewCached returns a caching Querier with the default TTL.
func NewCached(inner Querier, c cache.Cache) *Cached {
	return &Cached{Inner: inner, Cache: c, TTL: DefaultTTL}
}

func (q *Cached) Query(ctx context.Context, doc []byte, ids []string) (map[string]Box, error) {
	key := cache.BoxKey(doc, ids)
	q.Hit = false

	if data, ok, err := q.Cache.Get(ctx, key); err == nil && ok {
		var boxes map[string]Box
		if err := json.Unmarshal(data, &boxes); err == nil {
			q.Hit = true
			return boxes, nil
		}
		// Corrupt entry; fall through to a fresh query.
		_ = q.Cache.Delete(ctx, key)
	}

	boxes, err := q.Inner.Query(ctx, doc, ids)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(boxes)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding bounding boxes for cache")
	}
	// Cache write failures are not fatal; the result is already in hand.
	_ = q.Cache.Set(ctx, key, data, q.TTL)

	return boxes, nil
}
