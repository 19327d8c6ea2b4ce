package filter

import "fmt"

// SortKey names one column and direction of the order table.
type SortKey string

const (
	SortAddedDateDesc      SortKey = "added_date_desc"
	SortAddedDateAsc       SortKey = "added_date_asc"
	SortOrderDateDesc      SortKey = "order_date_desc"
	SortOrderDateAsc       SortKey = "order_date_asc"
	SortLastUpdateDesc     SortKey = "last_update_desc"
	SortLastUpdateAsc      SortKey = "last_update_asc"
	SortProductTitleAsc    SortKey = "product_title_asc"
	SortProductTitleDesc   SortKey = "product_title_desc"
	SortTrackingNumberAsc  SortKey = "tracking_number_asc"
	SortTrackingNumberDesc SortKey = "tracking_number_desc"
	SortPriceAsc           SortKey = "price_asc"
	SortPriceDesc          SortKey = "price_desc"
	SortStatusAsc          SortKey = "status_asc"
	SortDoarStatusAsc      SortKey = "doar_status_asc"
	SortDoarStatusDesc     SortKey = "doar_status_desc"
)

// DefaultSort is the order shown on first load and after clearing filters.
const DefaultSort = SortAddedDateDesc

var sortKeys = []SortKey{
	SortAddedDateDesc, SortAddedDateAsc,
	SortOrderDateDesc, SortOrderDateAsc,
	SortLastUpdateDesc, SortLastUpdateAsc,
	SortProductTitleAsc, SortProductTitleDesc,
	SortTrackingNumberAsc, SortTrackingNumberDesc,
	SortPriceAsc, SortPriceDesc,
	SortStatusAsc,
	SortDoarStatusAsc, SortDoarStatusDesc,
}

// SortKeys lists every accepted key, default first.
func SortKeys() []SortKey {
	out := make([]SortKey, len(sortKeys))
	copy(out, sortKeys)
	return out
}

// ParseSortKey validates s. An empty string selects DefaultSort.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return DefaultSort, nil
	}
	for _, k := range sortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key: %s", s)
}

// Criteria is the state of the filter controls, captured once per render or export.
type Criteria struct {
	Status        string  `json:"status"`
	Search        string  `json:"search"`
	HideDelivered bool    `json:"hide_delivered"`
	Sort          SortKey `json:"sort"`
}

// DefaultCriteria is what "clear filters" resets to.
func DefaultCriteria() Criteria {
	return Criteria{
		HideDelivered: true,
		Sort:          DefaultSort,
	}
}

// HasActiveFilters reports whether the status or search control narrows the list.
// The hide-delivered checkbox does not count.
func (c Criteria) HasActiveFilters() bool {
	return c.Status != "" || trimLower(c.Search) != ""
}
