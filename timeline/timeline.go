// Package timeline caches the rendered anonymous home timeline.
//
// Each entry is keyed by the requested page number and lives for a fixed TTL. Writes to
// posts do not invalidate entries, so a cached page may be up to one TTL stale. Clear
// drops every entry at once. A failing store is logged and bypassed; it never fails a
// request.
package timeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/cppla/aiblog/cache"
)

// KeyPrefix scopes timeline entries inside a shared store.
const KeyPrefix = "timeline:index:"

var lookupsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "blog_timeline_cache_lookups_total",
		Help: "Home timeline cache lookups by result (hit, miss, bypass, error).",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(lookupsTotal)
}

// Rendered is one rendered home timeline page. Page is the page number actually
// served after clamping, which differs from the requested one when it was out of range.
type Rendered struct {
	Body []byte
	Page int
}

// Renderer produces the response for one requested page of the home timeline.
type Renderer func(ctx context.Context, page int) (Rendered, error)

// Request describes one home timeline read.
type Request struct {
	Page int
	// Anonymous is false for authenticated visitors, whose responses are never cached.
	Anonymous bool
}

// Timeline memoizes rendered home timeline pages in an injected store.
type Timeline struct {
	store cache.Store
	ttl   time.Duration
	log   *zap.Logger
}

// New returns a Timeline over store. A nil store disables caching.
func New(store cache.Store, ttl time.Duration, log *zap.Logger) *Timeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Timeline{store: store, ttl: ttl, log: log}
}

// Key returns the cache key of a home timeline page.
func Key(page int) string {
	return fmt.Sprintf("%spage=%d", KeyPrefix, page)
}

// Serve returns the body for req, from the store when an entry is fresh. hit reports
// whether the body came from the store. Errors come only from render.
//
// Only in-range pages are stored: a request clamped to another page is served but
// not cached, so the number of entries never exceeds the number of real pages.
func (t *Timeline) Serve(ctx context.Context, req Request, render Renderer) (body []byte, hit bool, err error) {
	if t.store == nil || !req.Anonymous || t.ttl <= 0 {
		lookupsTotal.WithLabelValues("bypass").Inc()
		out, err := render(ctx, req.Page)
		if err != nil {
			return nil, false, err
		}
		return out.Body, false, nil
	}

	key := Key(req.Page)
	cached, err := t.store.Get(ctx, key)
	switch {
	case err == nil:
		lookupsTotal.WithLabelValues("hit").Inc()
		return cached, true, nil
	case errors.Is(err, cache.ErrMiss):
		lookupsTotal.WithLabelValues("miss").Inc()
	default:
		lookupsTotal.WithLabelValues("error").Inc()
		t.log.Warn("timeline cache get failed", zap.String("key", key), zap.Error(err))
	}

	out, err := render(ctx, req.Page)
	if err != nil {
		return nil, false, err
	}
	if out.Page != req.Page {
		return out.Body, false, nil
	}
	// concurrent misses may both land here; the last Set wins
	if err := t.store.Set(ctx, key, out.Body, t.ttl); err != nil {
		t.log.Warn("timeline cache set failed", zap.String("key", key), zap.Error(err))
	}
	return out.Body, false, nil
}

// Clear removes every cached page immediately.
func (t *Timeline) Clear(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	if err := t.store.Clear(ctx); err != nil {
		t.log.Warn("timeline cache clear failed", zap.Error(err))
		return err
	}
	return nil
}

// TTL reports the freshness window of cached pages.
func (t *Timeline) TTL() time.Duration {
	return t.ttl
}
