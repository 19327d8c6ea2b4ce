// Package export turns an order list into the downloadable CSV document.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/matthieukhl/parceltrack/internal/models"
)

// DefaultFilePrefix names exported files "<prefix>_YYYY-MM-DD.csv".
const DefaultFilePrefix = "aliexpress_orders"

// Header is the fixed column order of the export.
var Header = []string{
	"ID",
	"Product Title",
	"Product URL",
	"Product ID",
	"Tracking Number",
	"Status",
	"Latest Update",
	"Order Date",
	"Last Update Date",
	"Added Date",
	"Carrier",
	"Doar Israel Status",
	"Doar Israel Status Field",
	"Doar Israel Delivery Type",
	"Doar Israel Last Event",
}

// WriteCSV writes the header and one record per order, in the given order.
func WriteCSV(w io.Writer, orders []models.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, o := range orders {
		if err := cw.Write(Record(o)); err != nil {
			return fmt.Errorf("failed to write order %d: %w", o.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Record is the CSV projection of one order.
func Record(o models.Order) []string {
	var latestUpdate, carrier, lastUpdate string
	if ti := o.TrackingInfo; ti != nil {
		latestUpdate = ti.LatestStanderdDesc
		carrier = ti.Carrier
		lastUpdate = ti.LastUpdateDate
	}

	var doarStatus, doarField, deliveryType string
	if di := o.DoarTrackingInfo; di != nil {
		doarStatus = di.Status
		doarField = di.StatusField
		deliveryType = di.DeliveryType
	}

	orderDate := o.OrderDate
	if orderDate == "" {
		orderDate = o.AddedDate
	}

	return []string{
		strconv.Itoa(o.ID),
		o.ProductTitle,
		o.ProductURL,
		o.ProductID,
		o.TrackingNumber,
		o.EffectiveStatus(),
		latestUpdate,
		orderDate,
		lastUpdate,
		o.AddedDate,
		carrier,
		doarStatus,
		doarField,
		deliveryType,
		lastDoarEvent(o),
	}
}

func lastDoarEvent(o models.Order) string {
	ev, ok := o.LatestDoarEvent()
	if !ok {
		return ""
	}
	return strings.TrimSpace(ev.Date + " - " + ev.Description)
}

// Filename stamps prefix with the UTC calendar date of now.
func Filename(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultFilePrefix
	}
	return fmt.Sprintf("%s_%s.csv", prefix, now.UTC().Format(time.DateOnly))
}

// SaveFile writes the export into dir on fs and returns the file path.
func SaveFile(fs afero.Fs, dir, prefix string, now time.Time, orders []models.Order) (string, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, Filename(prefix, now))
	f, err := fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err := WriteCSV(f, orders); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}
	return path, nil
}
