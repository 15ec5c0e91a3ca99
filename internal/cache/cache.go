// Package cache holds one session's in-memory copy of the inventory table.
// The backing store is slow and rate-limited; browsing is served from this
// snapshot and a successful write replaces it in place so the session sees
// its own writes without waiting on the backend's read-after-write
// consistency, which is not guaranteed.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mkawano/eyewear-stock/internal/model"
	"github.com/mkawano/eyewear-stock/internal/store"
)

// Snapshot caches the full table with the time it was fetched. Owned by a
// single session; the mutex only serializes that session's own handlers.
type Snapshot struct {
	backend store.Backend
	logger  *zap.Logger
	now     func() time.Time

	mu        sync.Mutex
	table     *model.Table
	fetchedAt time.Time
}

// Option configures a Snapshot.
type Option func(*Snapshot)

// WithClock swaps the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Snapshot) { s.now = now }
}

func New(backend store.Backend, logger *zap.Logger, opts ...Option) *Snapshot {
	s := &Snapshot{backend: backend, logger: logger, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Get returns the cached table regardless of age, fetching only when the
// cache is empty. Age-based eviction happens solely in RefreshIfStale.
func (s *Snapshot) Get(ctx context.Context) (*model.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table != nil {
		return s.table, nil
	}
	return s.fetch(ctx)
}

// RefreshIfStale re-fetches when the cache is absent or older than ttl,
// otherwise returns the cached table unchanged. When a re-fetch fails but
// a previous snapshot exists, that snapshot is returned alongside the
// error so browsing can continue on stale data.
func (s *Snapshot) RefreshIfStale(ctx context.Context, ttl time.Duration) (*model.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table != nil && s.now().Sub(s.fetchedAt) < ttl {
		return s.table, nil
	}
	t, err := s.fetch(ctx)
	if err != nil && s.table != nil && errors.Is(err, store.ErrBackendUnavailable) {
		s.logger.Warn("refresh failed, serving stale snapshot",
			zap.Time("fetched_at", s.fetchedAt), zap.Error(err))
		return s.table, err
	}
	return t, err
}

// ForceRefresh unconditionally re-fetches; the explicit reload action.
// On failure the previous snapshot, if any, is kept rather than dropped.
func (s *Snapshot) ForceRefresh(ctx context.Context) (*model.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetch(ctx)
}

// Replace installs a table as the cache content without contacting the
// backend. Called after a successful write with the just-written table.
func (s *Snapshot) Replace(t *model.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = t
	s.fetchedAt = s.now()
}

// fetch loads from the backend and installs the result. Caller holds mu.
// The previous snapshot survives a failed fetch.
func (s *Snapshot) fetch(ctx context.Context) (*model.Table, error) {
	t, err := s.backend.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	s.table = t
	s.fetchedAt = s.now()
	s.logger.Debug("snapshot refreshed", zap.Int("rows", t.Len()))
	return t, nil
}
