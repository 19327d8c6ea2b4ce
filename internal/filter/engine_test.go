package filter

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/parceltrack/internal/models"
)

func ids(orders []models.Order) []int {
	out := make([]int, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func tracked(status string) *models.TrackingInfo {
	return &models.TrackingInfo{Status: status}
}

func sampleOrders() []models.Order {
	return []models.Order{
		{ID: 1, ProductTitle: "USB cable", ProductID: "1005001", TrackingNumber: "LP001", AddedDate: "2024-01-01T09:00:00", Price: "US $3.10", TrackingInfo: tracked("Delivered")},
		{ID: 2, ProductTitle: "Phone case", ProductID: "1005002", TrackingNumber: "", AddedDate: "2024-03-01T09:00:00", Price: ""},
		{ID: 3, ProductTitle: "Bike light", ProductID: "1005003", TrackingNumber: "rr999cn", AddedDate: "2024-02-01T09:00:00", Price: "$12.00", TrackingInfo: tracked("In transit")},
		{ID: 4, ProductTitle: "Cable organiser", ProductID: "2005004", TrackingNumber: "LP004", AddedDate: "2024-02-15T09:00:00", Price: "$1,050.00", TrackingInfo: tracked("delivered")},
	}
}

func TestFilterByStatus(t *testing.T) {
	got := Filter(sampleOrders(), Criteria{Status: "in TRANSIT"})
	assert.Equal(t, []int{3}, ids(got))

	got = Filter(sampleOrders(), Criteria{Status: "pending"})
	assert.Equal(t, []int{2}, ids(got))
}

func TestFilterBySearch(t *testing.T) {
	tests := []struct {
		search string
		want   []int
	}{
		{"cable", []int{1, 4}},
		{"  RR999 ", []int{3}},
		{"2005", []int{4}},
		{"", []int{1, 2, 3, 4}},
		{"nothing", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(sampleOrders(), Criteria{Search: tt.search})))
		})
	}
}

func TestFilterHideDeliveredPreservesOrder(t *testing.T) {
	orders := sampleOrders()
	got := Filter(orders, Criteria{HideDelivered: true})

	assert.Equal(t, []int{2, 3}, ids(got))
	for _, o := range got {
		assert.False(t, o.IsDelivered())
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	orders := sampleOrders()
	before := ids(orders)

	Apply(orders, Criteria{Sort: SortPriceDesc})
	assert.Equal(t, before, ids(orders))
}

func TestSortDates(t *testing.T) {
	orders := []models.Order{
		{ID: 1, AddedDate: "2024-01-01"},
		{ID: 2, AddedDate: ""},
		{ID: 3, AddedDate: "2024-06-01", OrderDate: "Jan 5, 2023"},
		{ID: 4, AddedDate: "2024-03-01"},
	}

	got := Apply(orders, Criteria{Sort: SortAddedDateDesc})
	assert.Equal(t, []int{3, 4, 1, 2}, ids(got))

	got = Apply(orders, Criteria{Sort: SortAddedDateAsc})
	assert.Equal(t, []int{2, 1, 4, 3}, ids(got))

	// Order date falls back to the added date.
	got = Apply(orders, Criteria{Sort: SortOrderDateAsc})
	assert.Equal(t, []int{2, 3, 1, 4}, ids(got))
}

func TestSortLastUpdateMissingLast(t *testing.T) {
	orders := []models.Order{
		{ID: 1},
		{ID: 2, TrackingInfo: &models.TrackingInfo{LastUpdateDate: "2024-01-02 10:00:00"}},
		{ID: 3, TrackingInfo: &models.TrackingInfo{LastUpdateDate: "2024-01-05 10:00:00"}},
		{ID: 4, TrackingInfo: &models.TrackingInfo{}},
	}

	assert.Equal(t, []int{2, 3, 1, 4}, ids(Apply(orders, Criteria{Sort: SortLastUpdateAsc})))
	assert.Equal(t, []int{3, 2, 1, 4}, ids(Apply(orders, Criteria{Sort: SortLastUpdateDesc})))
}

func TestSortTrackingNumberMissingLast(t *testing.T) {
	orders := []models.Order{
		{ID: 1, TrackingNumber: "b2"},
		{ID: 2},
		{ID: 3, TrackingNumber: "A1"},
		{ID: 4, TrackingNumber: "   "},
	}

	assert.Equal(t, []int{3, 1, 2, 4}, ids(Apply(orders, Criteria{Sort: SortTrackingNumberAsc})))
	assert.Equal(t, []int{1, 3, 2, 4}, ids(Apply(orders, Criteria{Sort: SortTrackingNumberDesc})))
}

func TestSortPriceReversalKeepsMissingLast(t *testing.T) {
	orders := []models.Order{
		{ID: 1, Price: "$10"},
		{ID: 2, Price: "N/A"},
		{ID: 3, Price: "$5"},
		{ID: 4, Price: "$1,000"},
		{ID: 5, Price: ""},
	}

	asc := ids(Apply(orders, Criteria{Sort: SortPriceAsc}))
	desc := ids(Apply(orders, Criteria{Sort: SortPriceDesc}))

	assert.Equal(t, []int{3, 1, 4, 2, 5}, asc)
	assert.Equal(t, []int{4, 1, 3, 2, 5}, desc)

	priced := asc[:3]
	slices.Reverse(priced)
	assert.Equal(t, desc[:3], priced)
}

func TestSortProductTitle(t *testing.T) {
	orders := []models.Order{
		{ID: 1, ProductTitle: "zipper"},
		{ID: 2, ProductTitle: "Apple"},
		{ID: 3, ProductTitle: "éclair"},
		{ID: 4, ProductTitle: "banana"},
	}

	assert.Equal(t, []int{2, 4, 3, 1}, ids(Apply(orders, Criteria{Sort: SortProductTitleAsc})))
	assert.Equal(t, []int{1, 3, 4, 2}, ids(Apply(orders, Criteria{Sort: SortProductTitleDesc})))
}

func TestSortStatus(t *testing.T) {
	orders := []models.Order{
		{ID: 1, TrackingInfo: tracked("Shipped")},
		{ID: 2},
		{ID: 3, TrackingInfo: tracked("delivered")},
	}
	assert.Equal(t, []int{3, 2, 1}, ids(Apply(orders, Criteria{Sort: SortStatusAsc})))
}

func TestSortDoarStatusNALast(t *testing.T) {
	doar := func(s string) *models.DoarTrackingInfo { return &models.DoarTrackingInfo{Status: s} }
	orders := []models.Order{
		{ID: 1},
		{ID: 2, DoarTrackingInfo: doar("Delivered")},
		{ID: 3, DoarTrackingInfo: doar("arrived in Israel")},
		{ID: 4, DoarTrackingInfo: doar("N/A")},
	}

	assert.Equal(t, []int{3, 2, 1, 4}, ids(Apply(orders, Criteria{Sort: SortDoarStatusAsc})))
	assert.Equal(t, []int{2, 3, 1, 4}, ids(Apply(orders, Criteria{Sort: SortDoarStatusDesc})))
}

func TestUnknownSortKeepsOrder(t *testing.T) {
	got := Apply(sampleOrders(), Criteria{Sort: "nonsense"})
	assert.Equal(t, []int{1, 2, 3, 4}, ids(got))
}

func TestDefaultCriteriaView(t *testing.T) {
	c := DefaultCriteria()
	assert.Equal(t, Criteria{Status: "", Search: "", HideDelivered: true, Sort: SortAddedDateDesc}, c)

	got := Apply(sampleOrders(), c)
	assert.Equal(t, []int{2, 3}, ids(got))
}

func TestDefaultViewEndToEnd(t *testing.T) {
	orders := []models.Order{
		{ID: 1, AddedDate: "2024-01-01", Price: "$10"},
		{ID: 2, AddedDate: "2024-02-01", Price: "$5"},
	}

	assert.Equal(t, []int{2, 1}, ids(Apply(orders, DefaultCriteria())))

	c := DefaultCriteria()
	c.Sort = SortPriceAsc
	assert.Equal(t, []int{2, 1}, ids(Apply(orders, c)))
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSort, k)

	for _, key := range SortKeys() {
		got, err := ParseSortKey(string(key))
		require.NoError(t, err)
		assert.Equal(t, key, got)
	}

	_, err = ParseSortKey("status_desc")
	assert.Error(t, err)
}

func TestHasActiveFilters(t *testing.T) {
	assert.False(t, DefaultCriteria().HasActiveFilters())
	assert.False(t, Criteria{Search: "   "}.HasActiveFilters())
	assert.True(t, Criteria{Status: "Pending"}.HasActiveFilters())
	assert.True(t, Criteria{Search: "cable"}.HasActiveFilters())
}
