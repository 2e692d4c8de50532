package monitor

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Config structure
type Config struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

var (
	// DegradedMetrics counts dashboard specs that fell back to their
	// neutral value, labeled by spec name.
	DegradedMetrics = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "admin_api",
		Name:      "dashboard_degraded_metrics_total",
		Help:      "Dashboard metric specs degraded to their fallback value",
	}, []string{"metric"})

	// DashboardAssemblies counts dashboard snapshot builds by outcome.
	DashboardAssemblies = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "admin_api",
		Name:      "dashboard_assemblies_total",
		Help:      "Dashboard snapshot assemblies by outcome",
	}, []string{"outcome"})

	// DashboardGauge mirrors the latest collected value of each dashboard
	// metric, refreshed by the crons package for alerting.
	DashboardGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "admin_api",
		Name:      "dashboard_metric_value",
		Help:      "Last collected value of a dashboard metric",
	}, []string{"metric"})

	// RequestDuration observes admin endpoint latency.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "admin_api",
		Name:      "http_request_duration_seconds",
		Help:      "Admin API request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

// LoopProfilingServer serves prometheus metrics and pprof on the
// monitoring port until the process exits.
func LoopProfilingServer(cfg Config) {
	if !cfg.Enabled {
		return
	}
	http.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().Str("worker", "monitoring").Str("addr", addr).Msg("Monitoring server - started")
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Error().Err(err).Msg("Monitoring server stopped")
	}
}
