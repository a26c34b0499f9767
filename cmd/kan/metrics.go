package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donghojung/kan/internal/app"
	"github.com/donghojung/kan/internal/logging"
)

// newMetricsServer exposes the logger metrics of a on /metrics. Server
// errors go to the "metrics" log target.
func newMetricsServer(addr string, a *app.App) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))

	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logging.NewHandler(a.Logger, "metrics"), slog.LevelError),
	}
}
