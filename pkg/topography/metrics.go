package topography

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	queries *prometheus.CounterVec
	points  *prometheus.HistogramVec
}

// newMetrics registers the collectors with reg. A nil reg leaves them unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)

	return &metrics{
		queries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geoframe",
			Subsystem: "topography",
			Name:      "queries_total",
			Help:      "Number of terrain queries.",
		}, []string{"kind", "outcome"}),
		points: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "geoframe",
			Subsystem: "topography",
			Name:      "query_points",
			Help:      "Number of points per terrain query.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"kind"}),
	}
}

func (m *metrics) observe(kind string, n int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	m.queries.WithLabelValues(kind, outcome).Inc()

	if n > 0 {
		m.points.WithLabelValues(kind).Observe(float64(n))
	}
}
