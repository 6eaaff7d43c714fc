package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/soccerbrain/internal/core/behavior"
	"github.com/zeusync/soccerbrain/internal/core/observability/log"
	"github.com/zeusync/soccerbrain/internal/injector"
	"github.com/zeusync/soccerbrain/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "configs/bishop.yaml", "scenario config (.yaml or .json)")
	flag.Parse()

	cfg, err := behavior.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	app, err := injector.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error building app:", err)
		os.Exit(1)
	}
	defer func() { _ = app.Logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Logger.Info("starting",
		log.Stringer("role", cfg.Role),
		log.Duration("cycle_interval", cfg.CycleInterval),
		log.Int("frames", len(cfg.Frames)),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Agent.Run(ctx, cfg.CycleInterval)
	})
	if cfg.Telemetry.Addr != "" {
		hub := telemetry.NewHub(app.Logger)
		if err := hub.Attach(app.Bus); err != nil {
			app.Logger.Fatal("telemetry attach failed", log.Error(err))
		}
		defer func() { _ = hub.Close() }()
		g.Go(func() error {
			app.Logger.Info("telemetry listening", log.String("addr", cfg.Telemetry.Addr))
			return telemetry.Serve(ctx, cfg.Telemetry.Addr, hub.Handler())
		})
	}

	runErr := g.Wait()
	if cfg.HistoryFile != "" {
		if err := behavior.SaveMemoryFile(app.Agent.Memory(), cfg.HistoryFile); err != nil {
			app.Logger.Error("saving decision history failed", log.String("path", cfg.HistoryFile), log.Error(err))
		} else {
			app.Logger.Info("decision history saved",
				log.String("path", cfg.HistoryFile),
				log.Int("decisions", len(app.Agent.Memory().History())),
			)
		}
	}
	if runErr != nil {
		app.Logger.Error("stopped with error", log.Error(runErr))
		os.Exit(1)
	}
	app.Logger.Info("stopped")
}
