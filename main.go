package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geohaz-data/ada.viewer/internal/api"
	"github.com/geohaz-data/ada.viewer/internal/config"
	"github.com/geohaz-data/ada.viewer/internal/store"
	"github.com/geohaz-data/ada.viewer/internal/trend"
	"github.com/geohaz-data/ada.viewer/internal/version"
)

var (
	configPath = flag.String("config", config.DefaultConfigPath, "Path to viewer config JSON")
	listen     = flag.String("listen", "", "Listen address (overrides config)")
	dataRoot   = flag.String("data", "", "Dataset root directory (overrides config)")
	classifier = flag.String("classifier", "", "Trend classifier URL (overrides config)")
)

func main() {
	flag.Parse()
	log.Printf("ada.viewer %s (%s, built %s)", version.Version, version.GitSHA, version.BuildTime)

	cfg, err := config.Load(*configPath)
	if err != nil {
		// A missing file at the default path is fine: run on defaults.
		if !errors.Is(err, os.ErrNotExist) || *configPath != config.DefaultConfigPath {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = config.Empty()
	}
	if *listen != "" {
		cfg.ListenAddr = listen
	}
	if *dataRoot != "" {
		cfg.DataRoot = dataRoot
	}
	if *classifier != "" {
		cfg.ClassifierURL = classifier
	}

	st := store.New(cfg.GetDataRoot())
	dispatcher := trend.NewDispatcher(trend.NewHTTPClassifier(cfg.GetClassifierURL()))

	if cfg.DefaultLocator != nil {
		ds, err := st.Switch(*cfg.DefaultLocator)
		if err != nil {
			log.Fatalf("Failed to load default dataset: %v", err)
		}
		log.Printf("Loaded dataset %s: %d polygons, %d points (%s)",
			ds.Locator.AOIName, len(ds.Polygons), len(ds.Points), ds.Generation)
	} else {
		log.Print("No default dataset configured; waiting for POST /api/dataset")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := api.NewServer(st, dispatcher).ServeMux()
	server := &http.Server{
		Addr:    cfg.GetListenAddr(),
		Handler: api.LoggingMiddleware(mux),
	}

	go func() {
		log.Printf("Listening on %s", cfg.GetListenAddr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for context cancellation to shut down server
	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Print("Graceful shutdown complete")
}
