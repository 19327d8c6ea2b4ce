package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/parceltrack/internal/filter"
	"github.com/matthieukhl/parceltrack/internal/view"
	"github.com/matthieukhl/parceltrack/internal/viewmodel"
)

const titleWidth = 40

// filterFlags mirrors the filter controls of the web view.
type filterFlags struct {
	status        string
	search        string
	showDelivered bool
	sort          string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.status, "status", "", "Only orders whose status equals this (case-insensitive)")
	cmd.Flags().StringVar(&f.search, "search", "", "Search title, tracking number and product ID")
	cmd.Flags().BoolVar(&f.showDelivered, "show-delivered", false, "Include delivered orders")
	cmd.Flags().StringVar(&f.sort, "sort", string(filter.DefaultSort), "Sort key")
}

func (f *filterFlags) criteria() (filter.Criteria, error) {
	key, err := filter.ParseSortKey(f.sort)
	if err != nil {
		return filter.Criteria{}, err
	}
	return filter.Criteria{
		Status:        f.status,
		Search:        f.search,
		HideDelivered: !f.showDelivered,
		Sort:          key,
	}, nil
}

func writeTable(w io.Writer, page viewmodel.Page) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tORDER DATE\tPRICE\tTRACKING\tSTATUS\tDOAR\tLATEST UPDATE")
	for _, r := range page.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			strconv.Itoa(r.ID),
			view.Truncate(r.Title, titleWidth),
			r.OrderDate,
			r.Price,
			r.TrackingNumber,
			r.Status,
			r.DoarStatus,
			r.LatestUpdate,
		)
	}
	return tw.Flush()
}

func writeEvents(w io.Writer, ev view.EventsView) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSTATUS\tLOCATION\tDESCRIPTION")
	for _, e := range ev.Events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Date, e.Status, e.Location, e.Description)
	}
	return tw.Flush()
}
