package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/parceltrack/internal/actions"
	"github.com/matthieukhl/parceltrack/internal/apiclient"
	"github.com/matthieukhl/parceltrack/internal/apperr"
	"github.com/matthieukhl/parceltrack/internal/config"
	"github.com/matthieukhl/parceltrack/internal/logging"
	"github.com/matthieukhl/parceltrack/internal/metrics"
	"github.com/matthieukhl/parceltrack/internal/store"
	"github.com/matthieukhl/parceltrack/internal/view"
	"github.com/matthieukhl/parceltrack/internal/viewmodel"
)

// app is the wired object graph shared by every command.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	client     *apiclient.Client
	metrics    *metrics.Metrics
	store      *store.Store
	vm         *viewmodel.ViewModel
	dispatcher *actions.Dispatcher
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if apiBaseURL != "" {
		cfg.API.BaseURL = apiBaseURL
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(logger)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	client := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, logger)
	st := store.New(client, logger, m)

	renderer := view.NewRenderer(view.ImageResolver{
		LocalPrefix:        cfg.View.LocalImagePrefix,
		ProxyPath:          cfg.View.ImageProxyPath,
		Placeholder:        cfg.View.Placeholder,
		SubItemPlaceholder: cfg.View.SubItemPlaceholder,
	})

	opts := actions.DefaultOptions()
	opts.AddSettleDelay = cfg.API.AddSettleDelay

	return &app{
		cfg:        cfg,
		logger:     logger,
		client:     client,
		metrics:    m,
		store:      st,
		vm:         viewmodel.New(st, renderer, cfg.Export.Prefix),
		dispatcher: actions.NewDispatcher(client, st, m, logger, opts),
	}, nil
}

// load fetches the order collection once.
func (a *app) load(ctx context.Context) error {
	if _, err := a.store.Reload(ctx); err != nil {
		return userError(err, "Error loading orders. Please try again.")
	}
	return nil
}

// userError turns err into the message a person should read. Details stay in the log.
func userError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return errors.New(apperr.PublicMessage(err))
	}
	slog.Debug("command failed", "err", err)
	return errors.New(fallback)
}

func setup(cmd *cobra.Command) (*app, context.Context, error) {
	a, err := newApp()
	if err != nil {
		return nil, nil, err
	}
	return a, cmd.Context(), nil
}
