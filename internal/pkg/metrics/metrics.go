package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adstudio_renders_total",
			Help: "Total number of render requests by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	RenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adstudio_render_duration_seconds",
			Help:    "End to end render latency, generator call included",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"kind"},
	)

	GeneratorDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "adstudio_generator_duration_seconds",
			Help:    "Latency of calls to the image-to-image model",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)
)

func init() {
	prometheus.MustRegister(RendersTotal)
	prometheus.MustRegister(RenderDuration)
	prometheus.MustRegister(GeneratorDuration)
}

func ObserveRender(kind string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	RendersTotal.WithLabelValues(kind, status).Inc()
	RenderDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func ObserveGenerator(start time.Time) {
	GeneratorDuration.Observe(time.Since(start).Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
