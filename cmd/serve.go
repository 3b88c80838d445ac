package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msalah0e/chainmap/internal/metrics"
	"github.com/msalah0e/chainmap/internal/ui"
	"github.com/msalah0e/chainmap/internal/web"
)

func serveCmd() *cobra.Command {
	var (
		addr string
		idle time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive mind map to browsers",
		Long: `Run the preview server. Every browser gets its own exploration session.

  chainmap serve                      # http://127.0.0.1:7420
  chainmap serve --addr :8080

Endpoints:
  GET  /                     the mind map page
  POST /nodes/{id}/activate  open a node
  POST /panel/close          start closing the detail panel
  POST /panel/settled        report the close animation finished
  GET  /api/scene            the current scene as JSON
  GET  /api/panel            the detail panel content as JSON
  GET  /export/{format}      download svg, html, dot, json or yaml
  GET  /metrics              Prometheus metrics
  GET  /healthz              health check`,
		Run: func(cmd *cobra.Command, args []string) {
			if addr == "" {
				addr = loadConfig().Serve.Addr
			}
			d, g := loadDataset(), loadGraph()

			reg := metrics.NewRegistry()
			reg.SetContentHealth(len(d.Faults), len(layoutErr))

			srv, err := web.New(d, g, web.Options{
				Addr:           addr,
				ExitTransition: exitTransition(),
				IdleTimeout:    idle,
				Logger:         appLog(),
				Metrics:        reg,
			})
			if err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ui.Banner("preview server")
			fmt.Printf("  Open %s\n", ui.Brand.Sprint("http://"+addr))
			fmt.Println(ui.Subtle.Sprint("  Ctrl+C to stop"))
			fmt.Println()

			if err := srv.ListenAndServe(ctx); err != nil {
				ui.Bad.Printf("  serve: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, 127.0.0.1:7420)")
	cmd.Flags().DurationVar(&idle, "idle-timeout", 2*time.Hour, "Forget browser sessions idle this long (0 keeps them)")
	return cmd
}
