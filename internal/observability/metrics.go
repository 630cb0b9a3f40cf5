package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds the application's Prometheus collectors on a private registry,
// so constructing it more than once (tests) never panics on duplicates.
type Metrics struct {
	Registry *prometheus.Registry

	httpDuration       *prometheus.HistogramVec
	licenseValidations *prometheus.CounterVec
	installmentPlans   prometheus.Counter
	installments       prometheus.Counter
	localReadFailures  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cofre_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		licenseValidations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cofre_license_validations_total",
				Help: "License validations by outcome.",
			},
			[]string{"outcome"},
		),
		installmentPlans: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cofre_installment_plans_total",
				Help: "Drafts submitted and expanded into transactions.",
			},
		),
		installments: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cofre_installments_created_total",
				Help: "Transactions created from expanded drafts.",
			},
		),
		localReadFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cofre_local_read_failures_total",
				Help: "Local store reads that failed and returned an empty result.",
			},
			[]string{"table"},
		),
	}
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	m.httpDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

func (m *Metrics) IncrLicenseValidation(outcome string) {
	m.licenseValidations.WithLabelValues(outcome).Inc()
}

// RecordInstallmentPlan counts one submitted draft that produced n transactions.
func (m *Metrics) RecordInstallmentPlan(n int) {
	m.installmentPlans.Inc()
	m.installments.Add(float64(n))
}

func (m *Metrics) IncrLocalReadFailure(table string) {
	m.localReadFailures.WithLabelValues(table).Inc()
}

// LicenseValidations returns the cumulative count for one outcome.
func (m *Metrics) LicenseValidations(outcome string) float64 {
	return counterValue(m.licenseValidations.WithLabelValues(outcome))
}

// InstallmentsCreated returns the cumulative number of expanded transactions.
func (m *Metrics) InstallmentsCreated() float64 {
	return counterValue(m.installments)
}

func counterValue(c prometheus.Counter) float64 {
	var out dto.Metric
	if err := c.Write(&out); err != nil {
		return 0
	}

	if out.Counter == nil || out.Counter.Value == nil {
		return 0
	}

	return *out.Counter.Value
}
