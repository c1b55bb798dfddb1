package remind

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rnwolfe/siptrackr/internal/streak"
)

// Metrics exposes reminder daemon state to Prometheus. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry
	current  prometheus.Gauge
	longest  prometheus.Gauge
	sent     prometheus.Counter
	failed   prometheus.Counter
}

// NewMetrics registers the siptrackr collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		current: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "siptrackr_current_streak_days",
			Help: "Length of the first-sip streak that includes today.",
		}),
		longest: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "siptrackr_longest_streak_days",
			Help: "Longest first-sip streak on record.",
		}),
		sent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "siptrackr_reminders_sent_total",
			Help: "Reminders delivered.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "siptrackr_reminder_failures_total",
			Help: "Reminders that could not be delivered.",
		}),
	}
	m.registry.MustRegister(m.current, m.longest, m.sent, m.failed)
	return m
}

// Observe records the latest streak stats.
func (m *Metrics) Observe(st streak.Stats) {
	if m == nil {
		return
	}
	m.current.Set(float64(st.Current))
	m.longest.Set(float64(st.Longest))
}

func (m *Metrics) Sent() {
	if m != nil {
		m.sent.Inc()
	}
}

func (m *Metrics) Failed() {
	if m != nil {
		m.failed.Inc()
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve listens on addr and serves /metrics until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
