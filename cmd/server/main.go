package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/OCharnyshevich/treasure-chest/internal/assets"
	"github.com/OCharnyshevich/treasure-chest/internal/server"
	"github.com/OCharnyshevich/treasure-chest/internal/server/config"
	"github.com/OCharnyshevich/treasure-chest/internal/server/logtee"
	"github.com/OCharnyshevich/treasure-chest/internal/treasure"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "YAML config file; explicit flags override it")
	debugLog := flag.String("debug-log", "", "also write debug-level logs to this file")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.StringVar(&cfg.GeneratorType, "generator", cfg.GeneratorType, "world generator: default or flat")
	flag.IntVar(&cfg.WorldRadius, "radius", cfg.WorldRadius, "chunks pre-generated around spawn")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "directory for world and player saves")
	flag.StringVar(&cfg.AssetsDir, "assets", cfg.AssetsDir, "asset pack directory (empty = built-in assets)")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve prometheus metrics on this address")
	flag.Parse()

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if *debugLog != "" {
		f, err := os.OpenFile(*debugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			slog.Error("open debug log", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		handler = logtee.New(handler, slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}), slog.LevelDebug)
	}
	log := slog.New(handler)

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
		log.Info("loaded config from file", "path", *configPath)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	store, err := assets.New(cfg.AssetsDir, log)
	if err != nil {
		log.Error("open assets", "error", err)
		os.Exit(1)
	}

	srv, err := server.New(cfg, log, store)
	if err != nil {
		log.Error("create server", "error", err)
		os.Exit(1)
	}
	srv.AddMod(treasure.New(cfg.Treasure))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, log)
	}
	if err := registerStop(srv, cancel); err != nil {
		log.Error("register stop command", "error", err)
		os.Exit(1)
	}
	go runConsole(ctx, srv, os.Stdin, os.Stdout, log)

	if err := srv.Start(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func serveMetrics(ctx context.Context, addr string, log *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	hs := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
	}()

	log.Info("serving metrics", "addr", addr)
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("metrics server", "error", err)
	}
}
