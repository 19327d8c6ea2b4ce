package view

import (
	"fmt"

	"github.com/matthieukhl/parceltrack/internal/models"
)

const (
	dateNotAvailable = "Date not available"
	unknownProduct   = "Unknown Product"
)

type EventRow struct {
	Date        string `json:"date"`
	Status      string `json:"status,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description"`
}

// EventsView is the event timeline of one carrier for one order.
type EventsView struct {
	OrderID        int        `json:"order_id"`
	TrackingNumber string     `json:"tracking_number"`
	DeliveryType   string     `json:"delivery_type,omitempty"`
	Total          int        `json:"total"`
	Events         []EventRow `json:"events"`
}

// TrackingEvents projects the Cainiao timeline. ok is false when the order has no
// tracking info at all.
func TrackingEvents(o models.Order) (EventsView, bool) {
	if o.TrackingInfo == nil {
		return EventsView{}, false
	}

	v := EventsView{OrderID: o.ID, TrackingNumber: o.TrackingNumber, Events: []EventRow{}}
	for _, ev := range o.TrackingInfo.Events {
		v.Events = append(v.Events, EventRow{
			Date:        orDefault(ev.Date, dateNotAvailable),
			Status:      ev.NodeDesc,
			Description: ev.Description,
		})
	}
	v.Total = len(v.Events)
	return v, true
}

// DoarEvents projects the Israel Post timeline.
func DoarEvents(o models.Order) (EventsView, bool) {
	if o.DoarTrackingInfo == nil {
		return EventsView{}, false
	}

	v := EventsView{
		OrderID:        o.ID,
		TrackingNumber: o.TrackingNumber,
		DeliveryType:   orNA(o.DoarTrackingInfo.DeliveryType),
		Events:         []EventRow{},
	}
	for _, ev := range o.DoarTrackingInfo.Events {
		location := ev.Branch
		if location != "" && ev.City != "" {
			location += ", " + ev.City
		}
		v.Events = append(v.Events, EventRow{
			Date:        orDefault(ev.Date, dateNotAvailable),
			Status:      ev.Category,
			Location:    location,
			Description: ev.Description,
		})
	}
	v.Total = len(v.Events)
	return v, true
}

type SubItemCard struct {
	Title      string `json:"title"`
	ProductURL string `json:"product_url"`
	ProductID  string `json:"product_id"`
	Price      string `json:"price"`
	Image      Image  `json:"image"`
}

// SubItemsView lists the items of a multi-item order.
type SubItemsView struct {
	OrderID    int           `json:"order_id"`
	OrderRef   string        `json:"order_ref"`
	OrderDate  string        `json:"order_date"`
	TotalItems int           `json:"total_items"`
	TotalPrice string        `json:"total_price,omitempty"`
	Items      []SubItemCard `json:"items"`
}

// SubItems projects the sub-items of o; ok is false when there are none.
func (r *Renderer) SubItems(o models.Order) (SubItemsView, bool) {
	if len(o.SubItems) == 0 {
		return SubItemsView{}, false
	}

	v := SubItemsView{
		OrderID:    o.ID,
		OrderRef:   orNA(o.OrderID),
		OrderDate:  FormatOrderDate(o.OrderDate, o.AddedDate),
		TotalItems: len(o.SubItems),
		TotalPrice: o.Price,
	}
	for _, item := range o.SubItems {
		v.Items = append(v.Items, SubItemCard{
			Title:      item.ProductTitle,
			ProductURL: item.ProductURL,
			ProductID:  item.ProductID,
			Price:      orNA(item.Price),
			Image:      r.images.ResolveSubItem(item.ProductImage, item.ProductID),
		})
	}
	return v, true
}

// ImportPreview is the summary card shown for each freshly imported order.
type ImportPreview struct {
	Title     string `json:"title"`
	ProductID string `json:"product_id"`
	OrderDate string `json:"order_date"`
	Price     string `json:"price"`
}

func ImportPreviews(orders []models.Order) []ImportPreview {
	out := make([]ImportPreview, 0, len(orders))
	for _, o := range orders {
		out = append(out, ImportPreview{
			Title:     orDefault(o.ProductTitle, unknownProduct),
			ProductID: orNA(o.ProductID),
			OrderDate: orNA(o.OrderDate),
			Price:     orNA(o.Price),
		})
	}
	return out
}

// Summary describes how much of the collection the current filters show.
func Summary(shown, total int) string {
	if shown == total {
		return fmt.Sprintf("Showing all %d orders", total)
	}
	return fmt.Sprintf("Showing %d of %d orders", shown, total)
}

// EmptyMessage is the text for a table with no rows.
func EmptyMessage(filtersActive bool) string {
	if filtersActive {
		return "No orders match your filters. Try adjusting your search criteria."
	}
	return "No orders yet. Add an order to get started!"
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
