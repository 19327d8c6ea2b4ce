package viewmodel

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/parceltrack/internal/actions"
	"github.com/matthieukhl/parceltrack/internal/apperr"
	"github.com/matthieukhl/parceltrack/internal/filter"
	"github.com/matthieukhl/parceltrack/internal/models"
	"github.com/matthieukhl/parceltrack/internal/store"
	"github.com/matthieukhl/parceltrack/internal/view"
)

type staticSource []models.Order

func (s staticSource) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s, nil
}

func newVM(t *testing.T, orders ...models.Order) *ViewModel {
	t.Helper()
	st := store.New(staticSource(orders), nil, nil)
	_, err := st.Reload(context.Background())
	require.NoError(t, err)

	vm := New(st, view.NewRenderer(view.DefaultImageResolver()), "")
	vm.now = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }
	return vm
}

func rowIDs(p Page) []int {
	out := make([]int, 0, len(p.Rows))
	for _, r := range p.Rows {
		out = append(out, r.ID)
	}
	return out
}

func TestDefaultViewAndPriceSort(t *testing.T) {
	vm := newVM(t,
		models.Order{ID: 1, AddedDate: "2024-01-01", Price: "$10"},
		models.Order{ID: 2, AddedDate: "2024-02-01", Price: "$5"},
	)

	p := vm.View()
	assert.Equal(t, []int{2, 1}, rowIDs(p))
	assert.Equal(t, "Showing all 2 orders", p.Summary)
	assert.Empty(t, p.Empty)

	c := vm.Criteria()
	c.Sort = filter.SortPriceAsc
	vm.SetCriteria(c)
	assert.Equal(t, []int{2, 1}, rowIDs(vm.View()))
}

// reloadingStore reports a stale total, as if a reload landed between calls.
type reloadingStore struct {
	*store.Store
}

func (reloadingStore) Total() int { return 99 }

func TestViewCountsFromOneSnapshot(t *testing.T) {
	st := store.New(staticSource{{ID: 1}, {ID: 2}, {ID: 3}}, nil, nil)
	_, err := st.Reload(context.Background())
	require.NoError(t, err)

	vm := New(reloadingStore{st}, view.NewRenderer(view.DefaultImageResolver()), "")
	p := vm.View()

	assert.Equal(t, 3, p.Total)
	assert.Equal(t, "Showing all 3 orders", p.Summary)
}

func TestClearFilters(t *testing.T) {
	vm := newVM(t,
		models.Order{ID: 1, AddedDate: "2024-01-01", TrackingInfo: &models.TrackingInfo{Status: "Delivered"}},
		models.Order{ID: 2, AddedDate: "2024-02-01", ProductTitle: "Lamp"},
		models.Order{ID: 3, AddedDate: "2024-03-01", ProductTitle: "Mug"},
	)

	vm.SetCriteria(filter.Criteria{Search: "lamp", Sort: filter.SortAddedDateAsc})
	p := vm.View()
	assert.Equal(t, []int{2}, rowIDs(p))
	assert.Equal(t, "Showing 1 of 3 orders", p.Summary)

	vm.SetCriteria(filter.Criteria{Search: "nothing"})
	p = vm.View()
	assert.Empty(t, p.Rows)
	assert.Equal(t, view.EmptyMessage(true), p.Empty)

	assert.Equal(t, filter.DefaultCriteria(), vm.ClearFilters())
	assert.Equal(t, []int{3, 2}, rowIDs(vm.View()))
}

func TestApplyResetsFiltersAfterAdd(t *testing.T) {
	vm := newVM(t)
	vm.SetCriteria(filter.Criteria{Status: "pending"})

	vm.Apply(&actions.Result{})
	assert.Equal(t, "pending", vm.Criteria().Status)

	vm.Apply(&actions.Result{ResetFilters: true})
	assert.Equal(t, filter.DefaultCriteria(), vm.Criteria())
}

func TestExportUsesLiveCriteria(t *testing.T) {
	vm := newVM(t,
		models.Order{ID: 1, AddedDate: "2024-01-01", ProductTitle: "Lamp"},
		models.Order{ID: 2, AddedDate: "2024-02-01", ProductTitle: "Mug"},
	)
	_ = vm.View()
	vm.SetCriteria(filter.Criteria{Search: "mug", HideDelivered: true})

	var buf bytes.Buffer
	require.NoError(t, vm.Export(&buf))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2", records[1][0])

	assert.Equal(t, "aliexpress_orders_2024-03-09.csv", vm.ExportFilename())

	fs := afero.NewMemMapFs()
	path, err := vm.ExportFile(fs, "out")
	require.NoError(t, err)
	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.True(t, exists)
}

type fakeUpdater struct {
	got actions.UpdateOrderInput
}

func (f *fakeUpdater) UpdateOrder(ctx context.Context, in actions.UpdateOrderInput) (*actions.Result, error) {
	f.got = in
	return &actions.Result{Message: "Order updated successfully!"}, nil
}

func TestEditFlow(t *testing.T) {
	vm := newVM(t, models.Order{ID: 4, ProductTitle: "Old"})
	u := &fakeUpdater{}

	_, err := vm.SaveEdit(context.Background(), u, "New", "", "")
	assert.True(t, apperr.Is(err, apperr.Validation))

	_, err = vm.BeginEdit(99)
	assert.True(t, apperr.Is(err, apperr.Validation))

	o, err := vm.BeginEdit(4)
	require.NoError(t, err)
	assert.Equal(t, "Old", o.ProductTitle)

	_, err = vm.SaveEdit(context.Background(), u, "New", "RR1IL", "")
	require.NoError(t, err)
	assert.Equal(t, actions.UpdateOrderInput{ID: 4, ProductTitle: "New", TrackingNumber: "RR1IL"}, u.got)

	_, ok := vm.EditTarget()
	assert.False(t, ok)
}
