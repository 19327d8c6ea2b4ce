// Package view projects orders into the records the order table displays.
// Nothing here re-sorts: rows come out in the order they went in.
package view

import (
	"net/url"
	"strings"

	"github.com/matthieukhl/parceltrack/internal/models"
)

const doarTrackingURL = "https://doar.israelpost.co.il/deliverytracking?itemcode="

// Row is one line of the order table.
type Row struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	ProductURL       string  `json:"product_url"`
	ProductID        string  `json:"product_id"`
	Image            Image   `json:"image"`
	OrderDate        string  `json:"order_date"`
	Price            string  `json:"price"`
	HasPrice         bool    `json:"has_price"`
	TrackingNumber   string  `json:"tracking_number"`
	HasTracking      bool    `json:"has_tracking"`
	Carrier          string  `json:"carrier,omitempty"`
	Status           string  `json:"status"`
	StatusClass      string  `json:"status_class"`
	LatestUpdate     string  `json:"latest_update"`
	LatestUpdateFull string  `json:"latest_update_full"`
	DoarStatus       string  `json:"doar_status"`
	DoarStatusClass  string  `json:"doar_status_class"`
	DoarStatusField  string  `json:"doar_status_field,omitempty"`
	DeliveryType     string  `json:"delivery_type"`
	LastUpdateDate   string  `json:"last_update_date"`
	SubItemCount     int     `json:"sub_item_count"`
	DoarTrackingURL  string  `json:"doar_tracking_url,omitempty"`
	Actions          Actions `json:"actions"`
}

// Actions lists the affordances available on a row.
type Actions struct {
	Edit            bool `json:"edit"`
	Delete          bool `json:"delete"`
	RefreshTracking bool `json:"refresh_tracking"`
	RefreshDoar     bool `json:"refresh_doar"`
	ShowEvents      bool `json:"show_events"`
	ShowDoarEvents  bool `json:"show_doar_events"`
	ShowSubItems    bool `json:"show_sub_items"`
	OpenDoar        bool `json:"open_doar"`
}

type Renderer struct {
	images ImageResolver
}

func NewRenderer(images ImageResolver) *Renderer {
	return &Renderer{images: images}
}

// Rows projects every order, keeping the input order.
func (r *Renderer) Rows(orders []models.Order) []Row {
	rows := make([]Row, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, r.Row(o))
	}
	return rows
}

// Row projects a single order.
func (r *Renderer) Row(o models.Order) Row {
	hasTracking := o.HasTracking()
	status := o.EffectiveStatus()
	doarStatus := o.EffectiveDoarStatus()

	row := Row{
		ID:             o.ID,
		Title:          o.ProductTitle,
		ProductURL:     o.ProductURL,
		ProductID:      o.ProductID,
		Image:          r.images.Resolve(o.ProductImage, o.ProductID),
		OrderDate:      FormatOrderDate(o.OrderDate, o.AddedDate),
		Price:          orNA(o.Price),
		HasPrice:       o.Price != "",
		TrackingNumber: NotAvailable,
		HasTracking:    hasTracking,
		Status:         status,
		StatusClass:    StatusClass(status),
		DoarStatus:     doarStatus,
		DeliveryType:   NotAvailable,
		LastUpdateDate: orNA(o.LastUpdateDate()),
		SubItemCount:   len(o.SubItems),
	}

	if hasTracking {
		row.TrackingNumber = o.TrackingNumber
		row.DoarTrackingURL = DoarTrackingURL(o.TrackingNumber)
	}

	var trackingEvents int
	if ti := o.TrackingInfo; ti != nil {
		if hasTracking {
			row.Carrier = ti.Carrier
		}
		row.LatestUpdateFull = ti.LatestStanderdDesc
		row.LatestUpdate = Truncate(ti.LatestStanderdDesc, LatestUpdateMax)
		trackingEvents = len(ti.Events)
	}

	if doarStatus != models.DoarStatusNA {
		row.DoarStatusClass = StatusClass(doarStatus)
	}

	var doarEvents int
	if di := o.DoarTrackingInfo; di != nil {
		row.DoarStatusField = di.StatusField
		row.DeliveryType = orNA(di.DeliveryType)
		doarEvents = len(di.Events)
	}

	row.Actions = Actions{
		Edit:            true,
		Delete:          true,
		RefreshTracking: hasTracking,
		RefreshDoar:     hasTracking,
		ShowEvents:      hasTracking && trackingEvents > 0,
		ShowDoarEvents:  hasTracking && doarEvents > 0,
		ShowSubItems:    len(o.SubItems) > 0,
		OpenDoar:        hasTracking,
	}
	return row
}

// DoarTrackingURL links a tracking number to the Israel Post tracking page.
// Blank numbers yield an empty string.
func DoarTrackingURL(trackingNumber string) string {
	trimmed := strings.TrimSpace(trackingNumber)
	if trimmed == "" {
		return ""
	}
	return doarTrackingURL + url.QueryEscape(trimmed)
}
