// Package session ties one user session together: its snapshot cache, its
// mutation engine and its brand preferences. Nothing here is process-wide;
// every core operation receives state through the Session so concurrent
// sessions stay independent.
package session

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mkawano/eyewear-stock/internal/cache"
	"github.com/mkawano/eyewear-stock/internal/inventory"
	"github.com/mkawano/eyewear-stock/internal/inventory/usecase"
	"github.com/mkawano/eyewear-stock/internal/model"
	"github.com/mkawano/eyewear-stock/internal/query"
	"github.com/mkawano/eyewear-stock/internal/schema"
	"github.com/mkawano/eyewear-stock/internal/store"
)

// Session is the per-user context. Lifetime runs from creation to the end
// of the user's visit; preferences reset with it.
type Session struct {
	ID        string
	Snapshot  *cache.Snapshot
	Inventory inventory.UseCase

	ttl    time.Duration
	logger *zap.Logger

	// Favorites sort first in search results. Allowed is the visibility
	// allow-list; empty means every brand shows.
	favorites map[string]bool
	allowed   map[string]bool
}

func New(backend store.Backend, logger *zap.Logger, ttl time.Duration) *Session {
	id := uuid.New().String()
	log := logger.With(zap.String("session", id))
	snap := cache.New(backend, log)
	return &Session{
		ID:        id,
		Snapshot:  snap,
		Inventory: usecase.NewInventoryUseCase(backend, snap, log),
		ttl:       ttl,
		logger:    log,
		favorites: make(map[string]bool),
		allowed:   make(map[string]bool),
	}
}

// Table returns the session's view of the inventory, refreshing it when
// older than the configured TTL.
func (s *Session) Table(ctx context.Context) (*model.Table, error) {
	return s.Snapshot.RefreshIfStale(ctx, s.ttl)
}

// Search runs a filter over the current snapshot with the session's
// allow-list and favorites applied.
func (s *Session) Search(ctx context.Context, f query.Filter) (query.Result, error) {
	t, err := s.Table(ctx)
	if t == nil {
		return query.Result{}, err
	}
	if len(f.AllowedBrands) == 0 {
		f.AllowedBrands = s.allowed
	}
	return query.Search(t, f, s.favorites)
}

// AllBrands lists the distinct trimmed brands in the table, sorted.
func AllBrands(t *model.Table) []string {
	s, err := schema.New(t.Headers)
	if err != nil || !s.Has(schema.ColBrand) {
		return nil
	}
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		if b := s.Get(row, schema.ColBrand); b != "" {
			seen[b] = true
		}
	}
	out := make([]string, 0, len(seen))
	for b := range seen {
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

// Favorites returns the favorite-brand set.
func (s *Session) Favorites() map[string]bool { return s.favorites }

// AddFavorite marks a brand to sort first in search results.
func (s *Session) AddFavorite(brand string) { s.favorites[strings.TrimSpace(brand)] = true }

// RemoveFavorite unmarks a favorite brand.
func (s *Session) RemoveFavorite(brand string) { delete(s.favorites, strings.TrimSpace(brand)) }

// Allowed returns the brand allow-list; empty means no restriction.
func (s *Session) Allowed() map[string]bool { return s.allowed }

// SetAllowed replaces the allow-list.
func (s *Session) SetAllowed(brands []string) {
	s.allowed = make(map[string]bool, len(brands))
	for _, b := range brands {
		s.allowed[strings.TrimSpace(b)] = true
	}
}

// AllowAll clears the allow-list so every brand shows.
func (s *Session) AllowAll() { s.allowed = make(map[string]bool) }
