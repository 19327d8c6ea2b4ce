// Package store holds the in-memory copy of the order collection.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/matthieukhl/parceltrack/internal/metrics"
	"github.com/matthieukhl/parceltrack/internal/models"
	"github.com/matthieukhl/parceltrack/internal/types"
)

// Store is the only place the collection is replaced. At most one reload is
// in flight; overlapping calls return without touching state.
type Store struct {
	source  types.OrderSource
	logger  *slog.Logger
	metrics *metrics.Metrics

	loading *atomic.Bool

	mu       sync.RWMutex
	orders   []models.Order
	loadedAt time.Time
}

func New(source types.OrderSource, logger *slog.Logger, m *metrics.Metrics) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		source:  source,
		logger:  logger,
		metrics: m,
		loading: atomic.NewBool(false),
		orders:  []models.Order{},
	}
}

// Reload fetches the full collection and swaps it in. It reports false with a
// nil error when another reload was already running. On failure the previous
// collection is kept.
func (s *Store) Reload(ctx context.Context) (bool, error) {
	if !s.loading.CompareAndSwap(false, true) {
		s.metrics.Reload(metrics.OutcomeSkipped)
		return false, nil
	}
	defer s.loading.Store(false)

	orders, err := s.source.ListOrders(ctx)
	if err != nil {
		s.logger.Error("Error loading orders", slog.Any("err", err))
		s.metrics.Reload(metrics.OutcomeError)
		return true, fmt.Errorf("failed to load orders: %w", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}

	s.mu.Lock()
	s.orders = orders
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.metrics.Reload(metrics.OutcomeSuccess)
	s.metrics.OrdersLoaded(len(orders))
	s.logger.Debug("orders loaded", slog.Int("count", len(orders)))
	return true, nil
}

func (s *Store) Loading() bool {
	return s.loading.Load()
}

// Snapshot returns a copy of the collection in server order.
func (s *Store) Snapshot() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.orders)
}

func (s *Store) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

func (s *Store) Find(id int) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

// LoadedAt is the zero time until the first successful reload.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
