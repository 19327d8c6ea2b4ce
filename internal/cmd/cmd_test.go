package cmd

import (
	"bytes"
	"encoding/csv"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/parceltrack/internal/filter"
	"github.com/matthieukhl/parceltrack/internal/view"
	"github.com/matthieukhl/parceltrack/internal/viewmodel"
)

func newTracker(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/orders":
			io.WriteString(w, `{"orders":[
				{"id":1,"product_title":"Desk Lamp","added_date":"2024-01-01","price":"$10"},
				{"id":2,"product_title":"Mug","added_date":"2024-02-01","price":"$5","tracking_number":"RR2IL",
				 "tracking_info":{"status":"Delivered"}}
			]}`)
		case "/api/auto-update/last-updates":
			io.WriteString(w, `{"success":true,"cainiao_last_update":"2024-05-01 10:00"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestListCommand(t *testing.T) {
	tracker := newTracker(t)

	out := run(t, "list", "--api", tracker.URL, "--show-delivered=false", "--sort", "added_date_desc")
	assert.Contains(t, out, "Desk Lamp")
	assert.NotContains(t, out, "Mug")
	assert.Contains(t, out, "Showing 1 of 2 orders")

	out = run(t, "list", "--api", tracker.URL, "--show-delivered", "--sort", "price_asc")
	assert.Less(t, strings.Index(out, "Mug"), strings.Index(out, "Desk Lamp"))
}

func TestExportCommandToStdout(t *testing.T) {
	tracker := newTracker(t)

	out := run(t, "export", "--api", tracker.URL, "--stdout", "--show-delivered")
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2", records[1][0])
}

func TestLastUpdatesCommand(t *testing.T) {
	tracker := newTracker(t)

	out := run(t, "last-updates", "--api", tracker.URL)
	assert.Contains(t, out, "Cainiao last update: 2024-05-01 10:00")
	assert.Contains(t, out, "Doar Israel last update: N/A")
}

func TestFilterFlags(t *testing.T) {
	f := filterFlags{search: "lamp", sort: "price_desc"}
	c, err := f.criteria()
	require.NoError(t, err)
	assert.Equal(t, filter.Criteria{Search: "lamp", HideDelivered: true, Sort: filter.SortPriceDesc}, c)

	f.sort = "nope"
	_, err = f.criteria()
	assert.EqualError(t, err, "unknown sort key: nope")
}

func TestParseOrderID(t *testing.T) {
	id, err := parseOrderID(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	_, err = parseOrderID("0")
	assert.Error(t, err)
	_, err = parseOrderID("x")
	assert.Error(t, err)
}

func TestReadCurl(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "req.txt", []byte("curl 'https://example.com'"), 0o644))

	c := &cobra.Command{}
	c.SetIn(strings.NewReader("curl from stdin"))

	importFile, importCurl = "", "curl inline"
	got, err := readCurl(c, fs)
	require.NoError(t, err)
	assert.Equal(t, "curl inline", got)

	importFile = "req.txt"
	got, err = readCurl(c, fs)
	require.NoError(t, err)
	assert.Equal(t, "curl 'https://example.com'", got)

	importFile = "-"
	got, err = readCurl(c, fs)
	require.NoError(t, err)
	assert.Equal(t, "curl from stdin", got)

	importFile = "missing.txt"
	_, err = readCurl(c, fs)
	assert.Error(t, err)

	importFile, importCurl = "", ""
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	page := viewmodel.Page{Rows: []view.Row{{ID: 7, Title: strings.Repeat("t", 45), Status: "Pending"}}}
	require.NoError(t, writeTable(&buf, page))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], strings.Repeat("t", 40)+"...")
}
