package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"color-palette/internal/ui"
)

var (
	// ColorsGenerated counts random colors handed out
	ColorsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "palette_colors_generated_total",
		Help: "Total random colors generated",
	})

	// PalettesGenerated counts harmonious palettes built
	PalettesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "palette_palettes_generated_total",
		Help: "Total palettes generated",
	})

	// AccessibilityChecks counts verdicts by WCAG level
	AccessibilityChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palette_accessibility_checks_total",
		Help: "Total accessibility checks by resulting level",
	}, []string{"level"})

	// InvalidColors counts rejected color inputs by operation
	InvalidColors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palette_invalid_color_total",
		Help: "Total malformed color inputs by operation",
	}, []string{"operation"})

	// ClipboardWrites counts clipboard writes by result (ok, failed)
	ClipboardWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palette_clipboard_writes_total",
		Help: "Total clipboard writes by result",
	}, []string{"result"})

	// InFlight tracks requests currently being served
	InFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "palette_requests_in_flight",
		Help: "Current API requests being served",
	})

	// RequestDuration tracks API latency by route
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "palette_request_duration_seconds",
		Help:    "API request duration in seconds",
		Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"route"})
)

// ObserveClipboard records the outcome of one clipboard write
func ObserveClipboard(ok bool) {
	if ok {
		ClipboardWrites.WithLabelValues("ok").Inc()
		return
	}
	ClipboardWrites.WithLabelValues("failed").Inc()
}

// MetricsServer wraps the HTTP server for prometheus metrics
type MetricsServer struct {
	server *http.Server
}

// NewMetricsServer creates a new metrics server
func NewMetricsServer(addr string) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins serving metrics (non-blocking)
func (m *MetricsServer) Start() {
	go func() {
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ui.LogStatus("error", "Metrics server error: "+err.Error())
		}
	}()
}

// Shutdown gracefully stops the metrics server
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.server.Shutdown(shutdownCtx)
}
