package models

import "strings"

// Display-time defaults. The raw entity may legitimately lack the fields these stand in for.
const (
	StatusPending   = "Pending"
	StatusDelivered = "delivered"
	DoarStatusNA    = "N/A"
)

type Order struct {
	ID               int               `json:"id"`
	ProductTitle     string            `json:"product_title"`
	ProductURL       string            `json:"product_url"`
	ProductImage     string            `json:"product_image"`
	ProductID        string            `json:"product_id"`
	Price            string            `json:"price"`
	OrderID          string            `json:"order_id,omitempty"`
	Status           string            `json:"status,omitempty"` // legacy order-level status
	OrderDate        string            `json:"order_date"`
	AddedDate        string            `json:"added_date"`
	TrackingNumber   string            `json:"tracking_number"`
	TrackingInfo     *TrackingInfo     `json:"tracking_info,omitempty"`
	DoarTrackingInfo *DoarTrackingInfo `json:"doar_tracking_info,omitempty"`
	SubItems         []SubItem         `json:"sub_items,omitempty"`
}

type TrackingInfo struct {
	Status             string          `json:"status"`
	Carrier            string          `json:"carrier"`
	LastUpdateDate     string          `json:"last_update_date"`
	LatestStanderdDesc string          `json:"latest_standerd_desc"`
	EarliestDate       string          `json:"earliest_date,omitempty"`
	Events             []TrackingEvent `json:"events"`
}

type TrackingEvent struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	NodeDesc    string `json:"nodeDesc,omitempty"`
}

type DoarTrackingInfo struct {
	Status       string      `json:"status"`
	StatusField  string      `json:"status_field"`
	DeliveryType string      `json:"delivery_type"`
	Events       []DoarEvent `json:"events"`
}

// DoarEvent is one Israel Post scan; the server lists them oldest first.
type DoarEvent struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Branch      string `json:"branch,omitempty"`
	City        string `json:"city,omitempty"`
}

type SubItem struct {
	ProductTitle string `json:"product_title"`
	ProductURL   string `json:"product_url"`
	ProductImage string `json:"product_image"`
	Price        string `json:"price"`
	ProductID    string `json:"product_id"`
}

// EffectiveStatus returns the Cainiao status shown for the order.
func (o Order) EffectiveStatus() string {
	if o.TrackingInfo == nil {
		return StatusPending
	}
	if o.TrackingInfo.Status != "" {
		return o.TrackingInfo.Status
	}
	if o.Status != "" {
		return o.Status
	}
	return StatusPending
}

// EffectiveDoarStatus returns the Israel Post status shown for the order.
func (o Order) EffectiveDoarStatus() string {
	if o.DoarTrackingInfo == nil || o.DoarTrackingInfo.Status == "" {
		return DoarStatusNA
	}
	return o.DoarTrackingInfo.Status
}

// HasTracking reports whether the order carries a non-blank tracking number.
func (o Order) HasTracking() bool {
	return strings.TrimSpace(o.TrackingNumber) != ""
}

// IsDelivered compares the effective status case-insensitively against "delivered".
func (o Order) IsDelivered() bool {
	return strings.EqualFold(o.EffectiveStatus(), StatusDelivered)
}

func (o Order) LastUpdateDate() string {
	if o.TrackingInfo == nil {
		return ""
	}
	return o.TrackingInfo.LastUpdateDate
}

// LatestDoarEvent returns the most recent Israel Post event, if any.
func (o Order) LatestDoarEvent() (DoarEvent, bool) {
	if o.DoarTrackingInfo == nil || len(o.DoarTrackingInfo.Events) == 0 {
		return DoarEvent{}, false
	}
	events := o.DoarTrackingInfo.Events
	return events[len(events)-1], true
}
