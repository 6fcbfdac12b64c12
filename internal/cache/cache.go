// Package cache keeps the most recent scan in memory for a bounded time.
// It is off by default: without it every request rescans the tree.
package cache

import (
	"context"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/Aman-CERP/promptdex/internal/catalog"
	"github.com/Aman-CERP/promptdex/internal/scanner"
	"github.com/Aman-CERP/promptdex/internal/telemetry"
)

// DefaultTTL is how long a snapshot is served before the next rescan.
const DefaultTTL = 30 * time.Second

// Snapshot is a catalog.Source that serves the last scan until it expires
// or is invalidated.
type Snapshot struct {
	inner   catalog.Source
	key     string
	entries *expirable.LRU[string, []scanner.Document]
	group   singleflight.Group
	gen     atomic.Uint64
	metrics *telemetry.Collector
}

// New wraps inner. key identifies the catalog (normally its root path).
// A ttl <= 0 means DefaultTTL. metrics may be nil.
func New(inner catalog.Source, key string, ttl time.Duration, metrics *telemetry.Collector) *Snapshot {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Snapshot{
		inner:   inner,
		key:     key,
		entries: expirable.NewLRU[string, []scanner.Document](1, nil, ttl),
		metrics: metrics,
	}
}

// Documents implements catalog.Source. Callers get their own deep copy.
// Concurrent misses share a single scan, which is not cancelled when one of
// the waiting callers gives up.
func (s *Snapshot) Documents(ctx context.Context) ([]scanner.Document, error) {
	if docs, ok := s.entries.Get(s.key); ok {
		s.metrics.RecordCacheHit()
		return cloneDocuments(docs), nil
	}
	s.metrics.RecordCacheMiss()

	gen := s.gen.Load()
	scanCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		docs, err := s.inner.Documents(scanCtx)
		if err != nil {
			return nil, err
		}
		// A snapshot taken before an invalidation is never stored.
		if s.gen.Load() == gen {
			s.entries.Add(s.key, docs)
		}
		return docs, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return cloneDocuments(res.Val.([]scanner.Document)), nil
	}
}

// cloneDocuments copies docs including each Tags backing array.
func cloneDocuments(docs []scanner.Document) []scanner.Document {
	out := slices.Clone(docs)
	for i := range out {
		out[i].Tags = slices.Clone(out[i].Tags)
	}
	return out
}

// Invalidate drops the current snapshot; the next call rescans.
func (s *Snapshot) Invalidate() {
	s.gen.Add(1)
	s.entries.Purge()
}
