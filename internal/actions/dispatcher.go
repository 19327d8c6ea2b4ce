// Package actions turns user intents into single tracker API calls followed by
// a reload of the order collection.
package actions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/matthieukhl/parceltrack/internal/apiclient"
	"github.com/matthieukhl/parceltrack/internal/apperr"
	"github.com/matthieukhl/parceltrack/internal/carrier"
	"github.com/matthieukhl/parceltrack/internal/metrics"
	"github.com/matthieukhl/parceltrack/internal/types"
)

// API is the tracker surface the dispatcher calls.
type API interface {
	carrier.API
	AddOrder(ctx context.Context, req apiclient.AddOrderRequest) (*apiclient.OrderResponse, error)
	UpdateOrder(ctx context.Context, id int, req apiclient.UpdateOrderRequest) (*apiclient.OrderResponse, error)
	DeleteOrder(ctx context.Context, id int) error
	ImportOrders(ctx context.Context, curlCommand string) (*apiclient.ImportResponse, error)
	DoarAPIKeyStatus(ctx context.Context) (*apiclient.APIKeyStatus, error)
	SetDoarAPIKey(ctx context.Context, key string) error
	LastUpdates(ctx context.Context) (*apiclient.LastUpdatesResponse, error)
}

type Reloader interface {
	Reload(ctx context.Context) (bool, error)
}

type Options struct {
	// AddSettleDelay is waited between a successful add and the reload.
	AddSettleDelay time.Duration
	// StatusClearSuccess and StatusClearError bound how long a bulk refresh
	// status line stays visible.
	StatusClearSuccess time.Duration
	StatusClearError   time.Duration
}

func DefaultOptions() Options {
	return Options{
		AddSettleDelay:     500 * time.Millisecond,
		StatusClearSuccess: 3 * time.Second,
		StatusClearError:   5 * time.Second,
	}
}

type Dispatcher struct {
	api      API
	store    Reloader
	carriers map[string]types.Carrier
	validate *validator.Validate
	metrics  *metrics.Metrics
	logger   *slog.Logger
	opts     Options

	sleep func(ctx context.Context, d time.Duration) error
}

func NewDispatcher(api API, store Reloader, m *metrics.Metrics, logger *slog.Logger, opts Options) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	carriers := make(map[string]types.Carrier)
	for _, c := range carrier.All(api) {
		carriers[c.Name()] = c
	}
	return &Dispatcher{
		api:      api,
		store:    store,
		carriers: carriers,
		validate: newValidator(),
		metrics:  m,
		logger:   logger,
		opts:     opts,
		sleep:    sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// reload refreshes the store after a successful mutation. A failed reload is
// logged by the store and does not turn the action into a failure.
func (d *Dispatcher) reload(ctx context.Context) bool {
	ran, err := d.store.Reload(ctx)
	return ran && err == nil
}

// fail classifies err, records it and returns the user-facing error.
// serverFallback is shown when the server refused without text; transportMsg
// when no response arrived at all.
func (d *Dispatcher) fail(ctx context.Context, action string, err error, serverFallback, transportMsg string) error {
	var ae *apperr.AppError
	var se *apiclient.StatusError
	switch {
	case errors.As(err, &ae):
	case errors.As(err, &se):
		ae = apperr.ServerErr(se.StatusCode, se.Message, serverFallback, err)
	default:
		ae = apperr.TransportErr(transportMsg, err)
	}

	outcome := metrics.OutcomeError
	if ae.Kind == apperr.Validation {
		outcome = metrics.OutcomeInvalid
	} else {
		d.logger.LogAttrs(ctx, slog.LevelError, "action_failed",
			slog.String("action", action),
			slog.String("kind", string(ae.Kind)),
			slog.Any("err", err),
		)
	}
	d.metrics.Action(action, outcome)
	return ae
}

func (d *Dispatcher) succeed(action string) {
	d.metrics.Action(action, metrics.OutcomeSuccess)
}

func (d *Dispatcher) carrier(name string) (types.Carrier, error) {
	c, ok := d.carriers[name]
	if !ok {
		return nil, apperr.ValidationErr(fmt.Sprintf("Unknown carrier: %s", name), map[string]string{"carrier": "unknown"})
	}
	return c, nil
}
