package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"mime-registry/internal/filesystem"
	"mime-registry/internal/handlers"
	"mime-registry/internal/logging"
	"mime-registry/internal/metrics"
	"mime-registry/internal/middleware"
	"mime-registry/internal/registry"
	"mime-registry/internal/startup"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Metrics
	metrics.SetAppInfo(startup.Version, startup.Commit, runtime.Version())
	metrics.InitializeMetrics()
	filesystem.SetObserver(metrics.NewFilesystemObserver())
	filesystem.SetDefaultVolumeResolver(volumeResolver(config))

	// Load the registry
	reg, err := startup.LoadRegistry(config.RegistryConfig())
	if err != nil {
		startup.LogFatal("Failed to load mime registry: %v", err)
	}

	// Initialize handlers
	h := handlers.New(reg, config)
	if err := prometheus.Register(metrics.NewCollector(h)); err != nil {
		logging.Warn("Failed to register registry collector: %v", err)
	}

	router := handlers.NewRouter(h)
	startup.LogHTTPRoutes(router, config.LogStaticFiles, config.LogHealthChecks)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      buildHandler(router, reg, config),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsSrv = newMetricsServer(h, config.MetricsPort)
		go func() {
			logging.Info("Metrics server listening on :%s", config.MetricsPort)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv)

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		startup.LogFatal("Server error: %v", err)
	}
}

// buildHandler wraps the router in the middleware chain. Metrics run
// inside the router so the matched route template is available.
func buildHandler(router *mux.Router, reg *registry.Registry, config *startup.Config) http.Handler {
	router.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	loggingConfig.Structured = strings.EqualFold(config.LogFormat, "json")
	logged := middleware.Logger(loggingConfig)(router)

	return middleware.Compression(middleware.DefaultCompressionConfig(reg))(logged)
}

func newMetricsServer(h *handlers.Handlers, port string) *http.Server {
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", h.MetricsHandler())
	metricsMux.HandleFunc("/health", h.HealthCheck)

	return &http.Server{
		Addr:         ":" + port,
		Handler:      metricsMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

func volumeResolver(config *startup.Config) *filesystem.VolumeResolver {
	volumes := map[string]string{
		"static": config.StaticDir,
	}
	if config.MimeMapPath != "" {
		volumes["config"] = filepath.Dir(config.MimeMapPath)
	}
	return filesystem.NewVolumeResolver(volumes)
}

func handleShutdown(srv, metricsSrv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()

	if err := logging.Close(); err != nil {
		logging.Warn("Failed to close log file: %v", err)
	}
}
