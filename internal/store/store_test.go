package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/matthieukhl/parceltrack/internal/metrics"
	"github.com/matthieukhl/parceltrack/internal/models"
)

type fakeSource struct {
	orders []models.Order
	err    error
	calls  atomic.Int32

	started chan struct{}
	release chan struct{}
}

func (f *fakeSource) ListOrders(ctx context.Context) ([]models.Order, error) {
	f.calls.Inc()
	if f.started != nil {
		close(f.started)
		<-f.release
	}
	return f.orders, f.err
}

func TestReload(t *testing.T) {
	src := &fakeSource{orders: []models.Order{{ID: 1}, {ID: 2}}}
	s := New(src, nil, metrics.New())

	assert.True(t, s.LoadedAt().IsZero())

	ran, err := s.Reload(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 2, s.Total())
	assert.False(t, s.LoadedAt().IsZero())

	o, ok := s.Find(2)
	assert.True(t, ok)
	assert.Equal(t, 2, o.ID)
	_, ok = s.Find(3)
	assert.False(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(&fakeSource{orders: []models.Order{{ID: 1, ProductTitle: "a"}}}, nil, nil)
	_, err := s.Reload(context.Background())
	require.NoError(t, err)

	snap := s.Snapshot()
	snap[0].ProductTitle = "changed"

	o, _ := s.Find(1)
	assert.Equal(t, "a", o.ProductTitle)
}

func TestFailedReloadKeepsPreviousCollection(t *testing.T) {
	src := &fakeSource{orders: []models.Order{{ID: 1}}}
	s := New(src, nil, nil)
	_, err := s.Reload(context.Background())
	require.NoError(t, err)

	src.orders = nil
	src.err = errors.New("connection refused")

	ran, err := s.Reload(context.Background())
	assert.True(t, ran)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 1, s.Total())
	assert.False(t, s.Loading())
}

func TestConcurrentReloadIsSkipped(t *testing.T) {
	src := &fakeSource{
		orders:  []models.Order{{ID: 7}},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := New(src, nil, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ran, err := s.Reload(context.Background())
		assert.True(t, ran)
		assert.NoError(t, err)
	}()

	<-src.started
	assert.True(t, s.Loading())

	ran, err := s.Reload(context.Background())
	assert.False(t, ran)
	assert.NoError(t, err)
	assert.Equal(t, 0, s.Total(), "state must not change while the first reload is in flight")

	close(src.release)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, 1, s.Total())
	assert.False(t, s.Loading())
}
