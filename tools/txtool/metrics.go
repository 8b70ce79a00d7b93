package main

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	"github.com/labstack/echo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// serveMetrics exposes the metrics of the registry on /metrics until the returned function is called.
func serveMetrics(bindAddress string, registry *prometheus.Registry, log *logger.Logger) (stop func()) {
	e := echo.New()
	e.HideBanner = true
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{EnableOpenMetrics: true})))

	go func() {
		log.Infof("You can now access the Prometheus exporter using: http://%s/metrics", bindAddress)
		if err := e.Start(bindAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("Stopping Prometheus exporter due to an error", "err", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := e.Shutdown(ctx); err != nil {
			log.Errorw("Failed to stop Prometheus exporter", "err", err)
		}
	}
}
