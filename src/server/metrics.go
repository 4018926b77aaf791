package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"wastecarbon-go/src/models"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wastecarbon_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wastecarbon_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"route"},
	)

	ValidationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wastecarbon_validation_errors_total",
			Help: "Total number of rejected calculation requests by error kind",
		},
		[]string{"kind"},
	)

	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wastecarbon_rate_limit_exceeded_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	EmissionsCalculatedKg = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wastecarbon_emissions_calculated_kg_total",
			Help: "Cumulative pollutant mass reported by successful calculations",
		},
		[]string{"pollutant"},
	)
)

func recordEmissions(p models.Pollutants) {
	EmissionsCalculatedKg.WithLabelValues("co2").Add(p.CO2)
	EmissionsCalculatedKg.WithLabelValues("ch4").Add(p.CH4)
	EmissionsCalculatedKg.WithLabelValues("n2o").Add(p.N2O)
	EmissionsCalculatedKg.WithLabelValues("bc").Add(p.BC)
}
