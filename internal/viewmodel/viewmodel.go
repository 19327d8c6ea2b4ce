// Package viewmodel owns the state behind the order table: the loaded
// collection, the live filter criteria and the order being edited.
package viewmodel

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/matthieukhl/parceltrack/internal/actions"
	"github.com/matthieukhl/parceltrack/internal/apperr"
	"github.com/matthieukhl/parceltrack/internal/export"
	"github.com/matthieukhl/parceltrack/internal/filter"
	"github.com/matthieukhl/parceltrack/internal/models"
	"github.com/matthieukhl/parceltrack/internal/view"
)

type Store interface {
	Reload(ctx context.Context) (bool, error)
	Snapshot() []models.Order
	Total() int
	Find(id int) (models.Order, bool)
	LoadedAt() time.Time
}

// Updater saves an edited order.
type Updater interface {
	UpdateOrder(ctx context.Context, in actions.UpdateOrderInput) (*actions.Result, error)
}

// Page is one rendering of the order table.
type Page struct {
	Criteria filter.Criteria `json:"criteria"`
	Rows     []view.Row      `json:"rows"`
	Shown    int             `json:"shown"`
	Total    int             `json:"total"`
	Summary  string          `json:"summary"`
	Empty    string          `json:"empty,omitempty"`
}

type ViewModel struct {
	store        Store
	renderer     *view.Renderer
	exportPrefix string
	now          func() time.Time

	mu       sync.Mutex
	criteria filter.Criteria
	editID   int
}

func New(store Store, renderer *view.Renderer, exportPrefix string) *ViewModel {
	return &ViewModel{
		store:        store,
		renderer:     renderer,
		exportPrefix: exportPrefix,
		now:          time.Now,
		criteria:     filter.DefaultCriteria(),
	}
}

func (vm *ViewModel) Store() Store {
	return vm.store
}

func (vm *ViewModel) Renderer() *view.Renderer {
	return vm.renderer
}

func (vm *ViewModel) Criteria() filter.Criteria {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.criteria
}

func (vm *ViewModel) SetCriteria(c filter.Criteria) {
	if c.Sort == "" {
		c.Sort = filter.DefaultSort
	}
	vm.mu.Lock()
	vm.criteria = c
	vm.mu.Unlock()
}

// ClearFilters restores the default criteria and returns them.
func (vm *ViewModel) ClearFilters() filter.Criteria {
	c := filter.DefaultCriteria()
	vm.SetCriteria(c)
	return c
}

// Orders derives the visible list from the current collection and criteria.
func (vm *ViewModel) Orders() []models.Order {
	return filter.Apply(vm.store.Snapshot(), vm.Criteria())
}

func (vm *ViewModel) View() Page {
	c := vm.Criteria()
	snap := vm.store.Snapshot()
	visible := filter.Apply(snap, c)
	total := len(snap)

	p := Page{
		Criteria: c,
		Rows:     vm.renderer.Rows(visible),
		Shown:    len(visible),
		Total:    total,
		Summary:  view.Summary(len(visible), total),
	}
	if len(visible) == 0 {
		p.Empty = view.EmptyMessage(c.HasActiveFilters())
	}
	return p
}

// Export writes the CSV for the criteria live at call time. The list is
// derived again here rather than taken from the last View.
func (vm *ViewModel) Export(w io.Writer) error {
	return export.WriteCSV(w, vm.Orders())
}

func (vm *ViewModel) ExportFilename() string {
	return export.Filename(vm.exportPrefix, vm.now())
}

// ExportFile saves the export into dir and returns its path.
func (vm *ViewModel) ExportFile(fs afero.Fs, dir string) (string, error) {
	return export.SaveFile(fs, dir, vm.exportPrefix, vm.now(), vm.Orders())
}

// Apply folds an action result into the view state.
func (vm *ViewModel) Apply(res *actions.Result) {
	if res != nil && res.ResetFilters {
		vm.ClearFilters()
	}
}

// BeginEdit marks id as the order being edited and returns its current data.
func (vm *ViewModel) BeginEdit(id int) (models.Order, error) {
	o, ok := vm.store.Find(id)
	if !ok {
		return models.Order{}, apperr.ValidationErr(fmt.Sprintf("Order %d not found", id), map[string]string{"id": "unknown"})
	}
	vm.mu.Lock()
	vm.editID = id
	vm.mu.Unlock()
	return o, nil
}

func (vm *ViewModel) EditTarget() (int, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.editID, vm.editID != 0
}

func (vm *ViewModel) EndEdit() {
	vm.mu.Lock()
	vm.editID = 0
	vm.mu.Unlock()
}

// SaveEdit sends the edit for the current target. Without a target nothing is sent.
func (vm *ViewModel) SaveEdit(ctx context.Context, u Updater, title, trackingNumber, image string) (*actions.Result, error) {
	id, ok := vm.EditTarget()
	if !ok {
		return nil, apperr.ValidationErr("No order selected", nil)
	}

	res, err := u.UpdateOrder(ctx, actions.UpdateOrderInput{
		ID:             id,
		ProductTitle:   title,
		TrackingNumber: trackingNumber,
		ProductImage:   image,
	})
	if err != nil {
		return nil, err
	}
	vm.EndEdit()
	return res, nil
}
