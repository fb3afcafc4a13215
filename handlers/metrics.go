package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts page requests and failures per route.
type Metrics struct {
	endpoints *prometheus.CounterVec
	errors    *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		endpoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tareasweb_endpoint_calls_total",
			Help: "Total number of calls per page.",
		}, []string{"endpoint", "method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tareasweb_errors_total",
			Help: "Total number of errors occurred in the application.",
		}, []string{"endpoint"}),
	}
	reg.MustRegister(m.endpoints, m.errors)
	return m
}

// instrument counts every call of handlerFunc under endpoint.
func (s *Server) instrument(endpoint string, handlerFunc http.HandlerFunc) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		if s.metrics != nil {
			s.metrics.endpoints.WithLabelValues(endpoint, req.Method).Inc()
		}
		handlerFunc(res, req)
	}
}

func (m *Metrics) countError(endpoint string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(endpoint).Inc()
}
