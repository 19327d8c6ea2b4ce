package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/matthieukhl/parceltrack/internal/apiclient"
	"github.com/matthieukhl/parceltrack/internal/apperr"
	"github.com/matthieukhl/parceltrack/internal/carrier"
	"github.com/matthieukhl/parceltrack/internal/models"
	"github.com/matthieukhl/parceltrack/internal/types"
)

// AllCarriers selects every carrier in RefreshAll.
const AllCarriers = "all"

// StatusMessage is a transient line shown after a bulk refresh.
type StatusMessage struct {
	Text       string        `json:"text"`
	Error      bool          `json:"error"`
	ClearAfter time.Duration `json:"clear_after"`
}

// Result describes a completed action to the caller.
type Result struct {
	Message string `json:"message,omitempty"`
	// Info marks a message that is neither success nor failure.
	Info bool `json:"info,omitempty"`
	// ResetFilters asks the caller to restore the default criteria.
	ResetFilters bool               `json:"reset_filters,omitempty"`
	Reloaded     bool               `json:"reloaded"`
	Order        *models.Order      `json:"order,omitempty"`
	Imported     []models.Order     `json:"imported,omitempty"`
	Status       *StatusMessage     `json:"status,omitempty"`
	LastUpdates  *types.LastUpdates `json:"last_updates,omitempty"`
}

func (d *Dispatcher) AddOrder(ctx context.Context, in AddOrderInput) (*Result, error) {
	const action = "add_order"
	in.URL = strings.TrimSpace(in.URL)
	in.TrackingNumber = strings.TrimSpace(in.TrackingNumber)
	if err := d.check(in, "Please enter an AliExpress URL"); err != nil {
		return nil, d.fail(ctx, action, err, "", "")
	}

	resp, err := d.api.AddOrder(ctx, apiclient.AddOrderRequest{URL: in.URL, TrackingNumber: in.TrackingNumber})
	if err != nil {
		return nil, d.fail(ctx, action, err, "Failed to add order", "Error adding order. Please try again.")
	}
	d.succeed(action)

	// Give the tracker time to persist before refetching.
	if err := d.sleep(ctx, d.opts.AddSettleDelay); err != nil {
		return nil, fmt.Errorf("failed to wait before reload: %w", err)
	}

	return &Result{
		Message:      "Order added successfully!",
		ResetFilters: true,
		Reloaded:     d.reload(ctx),
		Order:        resp.Order,
	}, nil
}

func (d *Dispatcher) UpdateOrder(ctx context.Context, in UpdateOrderInput) (*Result, error) {
	const action = "update_order"
	in.ProductTitle = strings.TrimSpace(in.ProductTitle)
	in.TrackingNumber = strings.TrimSpace(in.TrackingNumber)
	in.ProductImage = strings.TrimSpace(in.ProductImage)
	if err := d.check(in, "No order selected"); err != nil {
		return nil, d.fail(ctx, action, err, "", "")
	}

	resp, err := d.api.UpdateOrder(ctx, in.ID, apiclient.UpdateOrderRequest{
		ProductTitle:   in.ProductTitle,
		TrackingNumber: in.TrackingNumber,
		ProductImage:   in.ProductImage,
	})
	if err != nil {
		return nil, d.fail(ctx, action, err, "Failed to update order", "Error updating order. Please try again.")
	}
	d.succeed(action)

	return &Result{
		Message:  "Order updated successfully!",
		Reloaded: d.reload(ctx),
		Order:    resp.Order,
	}, nil
}

func (d *Dispatcher) DeleteOrder(ctx context.Context, id int) (*Result, error) {
	const action = "delete_order"
	if err := d.check(orderRef{ID: id}, "Invalid order ID"); err != nil {
		return nil, d.fail(ctx, action, err, "", "")
	}

	if err := d.api.DeleteOrder(ctx, id); err != nil {
		return nil, d.fail(ctx, action, err, "Error deleting order", "Error deleting order. Please try again.")
	}
	d.succeed(action)

	return &Result{Message: "Order deleted successfully", Reloaded: d.reload(ctx)}, nil
}

// RefreshTracking re-queries one carrier for one order.
func (d *Dispatcher) RefreshTracking(ctx context.Context, carrierName string, id int) (*Result, error) {
	action := "refresh_" + carrierName
	c, err := d.carrier(carrierName)
	if err != nil {
		return nil, d.fail(ctx, "refresh", err, "", "")
	}
	if err := d.check(orderRef{ID: id}, "Invalid order ID"); err != nil {
		return nil, d.fail(ctx, action, err, "", "")
	}

	if err := c.Refresh(ctx, id); err != nil {
		return nil, d.fail(ctx, action, err,
			"Failed to fetch tracking information",
			fmt.Sprintf("Error refreshing %stracking. Please try again.", displayPrefix(c.Name())))
	}
	d.succeed(action)

	return &Result{Message: "✓", Reloaded: d.reload(ctx)}, nil
}

// RefreshAll runs a bulk refresh for one carrier, or for every carrier when
// carrierName is AllCarriers. The returned Result carries the status line on
// failure as well as on success.
func (d *Dispatcher) RefreshAll(ctx context.Context, carrierName string) (*Result, error) {
	var targets []types.Carrier
	if carrierName == AllCarriers {
		for _, name := range carrier.Names() {
			targets = append(targets, d.carriers[name])
		}
	} else {
		c, err := d.carrier(carrierName)
		if err != nil {
			return nil, d.fail(ctx, "refresh_all", err, "", "")
		}
		targets = []types.Carrier{c}
	}

	var (
		messages []string
		errs     error
	)
	for _, c := range targets {
		action := "refresh_all_" + c.Name()
		msg, err := c.RefreshAll(ctx)
		if err != nil {
			errs = multierr.Append(errs, d.fail(ctx, action, err, "Failed to update orders", "Failed to update orders"))
			continue
		}
		d.succeed(action)
		messages = append(messages, msg)
	}

	if errs != nil {
		texts := make([]string, 0, len(multierr.Errors(errs)))
		for _, e := range multierr.Errors(errs) {
			texts = append(texts, apperr.PublicMessage(e))
		}
		res := &Result{Status: &StatusMessage{
			Text:       "✗ Error: " + strings.Join(texts, "; "),
			Error:      true,
			ClearAfter: d.opts.StatusClearError,
		}}
		// A partial success still changed server data.
		if len(messages) > 0 {
			res.Reloaded = d.reload(ctx)
		}
		return res, errs
	}

	res := &Result{
		Message: strings.Join(messages, "; "),
		Status: &StatusMessage{
			Text:       "✓ " + strings.Join(messages, "; "),
			ClearAfter: d.opts.StatusClearSuccess,
		},
		Reloaded: d.reload(ctx),
	}
	if lu, err := d.lastUpdates(ctx); err == nil {
		res.LastUpdates = lu
	} else {
		d.logger.Warn("Error fetching last update times", "err", err)
	}
	return res, nil
}

func (d *Dispatcher) ImportOrders(ctx context.Context, in ImportInput) (*Result, error) {
	const action = "import_orders"
	in.CurlCommand = strings.TrimSpace(in.CurlCommand)
	if err := d.check(in, "Please paste a cURL command"); err != nil {
		return nil, d.fail(ctx, action, err, "", "")
	}

	resp, err := d.api.ImportOrders(ctx, in.CurlCommand)
	if err != nil {
		return nil, d.fail(ctx, action, err, "Failed to import orders", "Error importing orders. Please try again.")
	}

	if !resp.Success {
		d.metrics.Action(action, "empty")
		msg := resp.Message
		if msg == "" {
			msg = "No orders were imported"
		}
		return &Result{Message: msg, Info: true}, nil
	}
	d.succeed(action)

	return &Result{
		Message:  fmt.Sprintf("Successfully imported %d order(s)!", resp.Imported),
		Imported: resp.Orders,
		Reloaded: d.reload(ctx),
	}, nil
}

func (d *Dispatcher) SaveDoarAPIKey(ctx context.Context, in APIKeyInput) (*Result, error) {
	const action = "save_doar_api_key"
	in.APIKey = strings.TrimSpace(in.APIKey)
	if err := d.check(in, "Please enter an API key"); err != nil {
		return nil, d.fail(ctx, action, err, "", "")
	}

	if err := d.api.SetDoarAPIKey(ctx, in.APIKey); err != nil {
		return nil, d.fail(ctx, action, err, "Failed to save API key", "Error saving API key. Please try again.")
	}
	d.succeed(action)

	return &Result{Message: "API key saved successfully!", Reloaded: d.reload(ctx)}, nil
}

func (d *Dispatcher) DoarAPIKeyStatus(ctx context.Context) (*apiclient.APIKeyStatus, error) {
	st, err := d.api.DoarAPIKeyStatus(ctx)
	if err != nil {
		return nil, d.fail(ctx, "doar_api_key_status", err,
			"Failed to load API key status", "Error loading API key status. Please try again.")
	}
	return st, nil
}

func (d *Dispatcher) LastUpdates(ctx context.Context) (*types.LastUpdates, error) {
	lu, err := d.lastUpdates(ctx)
	if err != nil {
		return nil, d.fail(ctx, "last_updates", err,
			"Failed to load last update times", "Error loading last update times. Please try again.")
	}
	return lu, nil
}

func (d *Dispatcher) lastUpdates(ctx context.Context) (*types.LastUpdates, error) {
	resp, err := d.api.LastUpdates(ctx)
	if err != nil {
		return nil, err
	}
	return &types.LastUpdates{Cainiao: resp.CainiaoLastUpdate, Doar: resp.DoarLastUpdate}, nil
}

func displayPrefix(carrierName string) string {
	if carrierName == carrier.Doar {
		return "Doar Israel "
	}
	return ""
}
