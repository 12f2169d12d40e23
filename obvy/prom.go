package ottava

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsInternal is the internal prometheus registry,
// attached to the View and served on /metrics.
type StatsInternal struct {
	Registry    *prometheus.Registry
	RenderTimer prometheus.Histogram
	WWWTotal    *prometheus.CounterVec
}

func NewStatsInternal() *StatsInternal {
	reg := prometheus.NewRegistry()

	renderTimer := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ottava_render_pass_duration_seconds",
		Help:    "Time spent composing and drawing one month grid.",
		Buckets: prometheus.DefBuckets,
	})

	wwwTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ottava_http_requests_total",
		Help: "Requests served by the data endpoints.",
	}, []string{"code", "method"})

	reg.MustRegister(
		renderTimer,
		wwwTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &StatsInternal{
		Registry:    reg,
		RenderTimer: renderTimer,
		WWWTotal:    wwwTotal,
	}
}

// RecRenderTimer records one render pass duration in seconds.
func (s *StatsInternal) RecRenderTimer(d float64) {
	s.RenderTimer.Observe(d)
}

// RecWWW counts one served request by status code and method.
func (s *StatsInternal) RecWWW(code, method string) {
	s.WWWTotal.WithLabelValues(code, method).Inc()
}

// Handler serves the registry for scraping.
func (s *StatsInternal) Handler() http.Handler {
	return promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})
}
