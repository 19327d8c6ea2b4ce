// Package filter narrows and orders the in-memory order list. It has no side
// effects: every function takes the collection and the criteria explicitly.
package filter

import (
	"slices"
	"strings"

	"github.com/matthieukhl/parceltrack/internal/models"
)

// Apply filters orders by c and stable-sorts the result by c.Sort.
// The input slice is never modified.
func Apply(orders []models.Order, c Criteria) []models.Order {
	out := Filter(orders, c)
	Sort(out, c.Sort)
	return out
}

// Filter returns the orders matching c, preserving their relative order.
func Filter(orders []models.Order, c Criteria) []models.Order {
	status := strings.ToLower(c.Status)
	search := trimLower(c.Search)

	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && strings.ToLower(o.EffectiveStatus()) != status {
			continue
		}
		if search != "" && !matchesSearch(o, search) {
			continue
		}
		if c.HideDelivered && o.IsDelivered() {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matchesSearch(o models.Order, search string) bool {
	return strings.Contains(strings.ToLower(o.ProductTitle), search) ||
		strings.Contains(strings.ToLower(o.TrackingNumber), search) ||
		strings.Contains(strings.ToLower(o.ProductID), search)
}

// Sort orders in place by key. Ties keep their current order; an unknown key
// leaves the slice untouched.
func Sort(orders []models.Order, key SortKey) {
	cmp := Comparator(key)
	if cmp == nil {
		return
	}
	slices.SortStableFunc(orders, cmp)
}

func trimLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
