package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"solar-system-scene/engine/headless"
	"solar-system-scene/frame"
	"solar-system-scene/handlers"
	"solar-system-scene/metrics"
	"solar-system-scene/scene"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scene over HTTP",
		Long: `Run the scene without a window and serve it over HTTP.

Routes:
  GET /api/bodies                     all bodies
  GET /api/bodies/:name               one body
  GET /api/bodies/:name/position?t=   position at t milliseconds
  GET /api/snapshot[?t=]              latest frame, or positions at t
  GET /api/stream                     websocket of frame snapshots
  GET /assets/*                       textures and audio
  GET /metrics                        Prometheus metrics

Example:
  solarsystem serve --addr :8080 --assets ./public`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	log := opts.logger(cmd.ErrOrStderr())
	slog.SetDefault(log)

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}

	st, err := scene.NewComposer(headless.New(), cfg).Compose(1280, 720)
	if err != nil {
		return fmt.Errorf("compose scene: %w", err)
	}
	m := metrics.NewCollector(prometheus.NewRegistry())
	driver := frame.NewDriver(st, frame.NewTickerScheduler(cfg.Frame.FPS, nil),
		frame.WithRecorder(m),
		frame.WithLogger(log),
	)
	h := handlers.New(cfg, driver, m, log)

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	driverErr := make(chan error, 1)
	go func() { driverErr <- driver.Run(ctx) }()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: handlers.NewRouter(h),
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.ListenAndServe() }()
	log.Info("scene API listening", "addr", cfg.Server.Addr, "fps", cfg.Frame.FPS)

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-serveErr:
		driver.Stop()
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
	case err := <-driverErr:
		if err != nil {
			log.Error("frame loop failed", "err", err)
		}
	}

	h.Close()
	driver.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("stopped", "frames", driver.Frames())
	return nil
}
