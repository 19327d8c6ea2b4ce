package filter

import (
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/matthieukhl/parceltrack/internal/dates"
	"github.com/matthieukhl/parceltrack/internal/models"
)

// Comparator returns the three-way comparison for key, or nil for an unknown key.
// Missing values in the last-update, tracking-number, price and Doar-status
// columns sort last whatever the direction.
func Comparator(key SortKey) func(a, b models.Order) int {
	switch key {
	case SortAddedDateDesc:
		return func(a, b models.Order) int { return addedDate(b).Compare(addedDate(a)) }
	case SortAddedDateAsc:
		return func(a, b models.Order) int { return addedDate(a).Compare(addedDate(b)) }
	case SortOrderDateDesc:
		return func(a, b models.Order) int { return orderDate(b).Compare(orderDate(a)) }
	case SortOrderDateAsc:
		return func(a, b models.Order) int { return orderDate(a).Compare(orderDate(b)) }
	case SortLastUpdateDesc:
		return func(a, b models.Order) int { return compareLastUpdate(a, b, false) }
	case SortLastUpdateAsc:
		return func(a, b models.Order) int { return compareLastUpdate(a, b, true) }
	case SortProductTitleAsc:
		col := newCollator()
		return func(a, b models.Order) int { return col.CompareString(a.ProductTitle, b.ProductTitle) }
	case SortProductTitleDesc:
		col := newCollator()
		return func(a, b models.Order) int { return col.CompareString(b.ProductTitle, a.ProductTitle) }
	case SortTrackingNumberAsc:
		col := newCollator()
		return func(a, b models.Order) int { return compareTracking(col, a, b, true) }
	case SortTrackingNumberDesc:
		col := newCollator()
		return func(a, b models.Order) int { return compareTracking(col, a, b, false) }
	case SortPriceAsc:
		return func(a, b models.Order) int { return ComparePrices(a.Price, b.Price, true) }
	case SortPriceDesc:
		return func(a, b models.Order) int { return ComparePrices(a.Price, b.Price, false) }
	case SortStatusAsc:
		col := newCollator()
		return func(a, b models.Order) int {
			return col.CompareString(strings.ToLower(a.EffectiveStatus()), strings.ToLower(b.EffectiveStatus()))
		}
	case SortDoarStatusAsc:
		col := newCollator()
		return func(a, b models.Order) int { return compareDoarStatus(col, a, b, true) }
	case SortDoarStatusDesc:
		col := newCollator()
		return func(a, b models.Order) int { return compareDoarStatus(col, a, b, false) }
	default:
		return nil
	}
}

// newCollator builds a fresh English collator; collate.Collator is not safe for
// concurrent use, so each comparator owns one.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

func addedDate(o models.Order) time.Time {
	return dates.ParseOrEpoch(o.AddedDate)
}

func orderDate(o models.Order) time.Time {
	if o.OrderDate != "" {
		return dates.ParseOrEpoch(o.OrderDate)
	}
	return dates.ParseOrEpoch(o.AddedDate)
}

func compareLastUpdate(a, b models.Order, ascending bool) int {
	aDate, bDate := a.LastUpdateDate(), b.LastUpdateDate()
	if r, done := missingLast(aDate == "", bDate == ""); done {
		return r
	}
	if ascending {
		return dates.ParseOrEpoch(aDate).Compare(dates.ParseOrEpoch(bDate))
	}
	return dates.ParseOrEpoch(bDate).Compare(dates.ParseOrEpoch(aDate))
}

func compareTracking(col *collate.Collator, a, b models.Order, ascending bool) int {
	aNum, bNum := strings.ToLower(a.TrackingNumber), strings.ToLower(b.TrackingNumber)
	if r, done := missingLast(!a.HasTracking(), !b.HasTracking()); done {
		return r
	}
	if ascending {
		return col.CompareString(aNum, bNum)
	}
	return col.CompareString(bNum, aNum)
}

func compareDoarStatus(col *collate.Collator, a, b models.Order, ascending bool) int {
	na := strings.ToLower(models.DoarStatusNA)
	aStatus, bStatus := strings.ToLower(a.EffectiveDoarStatus()), strings.ToLower(b.EffectiveDoarStatus())
	if r, done := missingLast(aStatus == na, bStatus == na); done {
		return r
	}
	if ascending {
		return col.CompareString(aStatus, bStatus)
	}
	return col.CompareString(bStatus, aStatus)
}

// missingLast settles the comparison when either side lacks a value.
func missingLast(aMissing, bMissing bool) (int, bool) {
	switch {
	case aMissing && bMissing:
		return 0, true
	case aMissing:
		return 1, true
	case bMissing:
		return -1, true
	}
	return 0, false
}
