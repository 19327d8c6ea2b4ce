package cmd

import (
	"fmt"
	"net/url"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/matthieukhl/parceltrack/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the parceltrack web server",
	Long: `Start the parceltrack web server which provides:
- JSON views of the filtered and sorted order table
- CSV export of the current view
- Order actions forwarded to the tracker service
- A pass-through for product images served by the tracker`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 parceltrack starting...")

	fmt.Println("📝 Loading configuration...")
	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		a.cfg.Server.Addr = serveAddr
	}

	upstream, err := url.Parse(a.cfg.API.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse api.base_url: %w", err)
	}

	fmt.Printf("🔌 Loading orders from %s...\n", a.client.BaseURL())
	if err := a.load(ctx); err != nil {
		// The tracker may come up later; /view/reload retries.
		fmt.Printf("⚠️  %v\n", err)
	} else {
		fmt.Printf("✅ Loaded %d orders\n", a.store.Total())
	}

	if a.cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	fmt.Println("⚙️  Setting up server...")
	srv := server.NewServer(a.vm, a.dispatcher, a.metrics, a.logger, server.Options{
		Server:   a.cfg.Server,
		Metrics:  a.cfg.Metrics,
		Upstream: upstream,
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("🌐 Starting server on %s...\n", a.cfg.Server.Addr)
	return srv.Run(ctx)
}
