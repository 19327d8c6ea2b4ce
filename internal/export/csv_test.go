package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/parceltrack/internal/models"
)

func TestWriteCSVRoundTripsQuotedFields(t *testing.T) {
	title := `Case, "slim" fit`
	orders := []models.Order{
		{ID: 7, ProductTitle: title, AddedDate: "2024-01-01T10:00:00"},
		{ID: 8, ProductTitle: "line one\nline two"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, orders))

	assert.Contains(t, buf.String(), `"Case, ""slim"" fit"`)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, title, records[1][1])
	assert.Equal(t, "line one\nline two", records[2][1])
}

func TestRecordColumns(t *testing.T) {
	o := models.Order{
		ID:             3,
		ProductTitle:   "Lamp",
		ProductURL:     "https://www.aliexpress.com/item/1.html",
		ProductID:      "1",
		TrackingNumber: "RR1IL",
		AddedDate:      "2024-02-01T08:00:00",
		TrackingInfo: &models.TrackingInfo{
			Status:             "In transit",
			Carrier:            "Cainiao",
			LastUpdateDate:     "2024-02-05 09:00:00",
			LatestStanderdDesc: "Departed",
		},
		DoarTrackingInfo: &models.DoarTrackingInfo{
			Status:       "Arrived",
			StatusField:  "Sorting",
			DeliveryType: "Locker",
			Events: []models.DoarEvent{
				{Date: "2024-02-04", Description: "Left China"},
				{Date: "2024-02-06", Description: "Arrived in Israel"},
			},
		},
	}

	assert.Equal(t, []string{
		"3", "Lamp", "https://www.aliexpress.com/item/1.html", "1", "RR1IL",
		"In transit", "Departed", "2024-02-01T08:00:00", "2024-02-05 09:00:00",
		"2024-02-01T08:00:00", "Cainiao", "Arrived", "Sorting", "Locker",
		"2024-02-06 - Arrived in Israel",
	}, Record(o))
}

func TestRecordDefaults(t *testing.T) {
	rec := Record(models.Order{ID: 1, OrderDate: "Jan 1, 2024"})

	assert.Len(t, rec, len(Header))
	assert.Equal(t, models.StatusPending, rec[5])
	assert.Equal(t, "Jan 1, 2024", rec[7])
	assert.Empty(t, rec[11])
	assert.Empty(t, rec[14])
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "aliexpress_orders_2026-10-19.csv", Filename("", now))
	assert.Equal(t, "orders_2026-10-19.csv", Filename("orders", now))

	jerusalem := time.FixedZone("IDT", 3*60*60)
	assert.Equal(t, "aliexpress_orders_2026-10-19.csv", Filename("", time.Date(2026, 10, 20, 1, 30, 0, 0, jerusalem)))
}

func TestSaveFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	path, err := SaveFile(fs, "exports", "", now, []models.Order{{ID: 1, ProductTitle: "Mug"}})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "aliexpress_orders_2025-01-02.csv"))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "1,Mug,"))
}
