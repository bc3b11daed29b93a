// Package metrics exports purchase outcomes as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"rewardtrack/internal/domain/types"
	"rewardtrack/internal/services/rewards"
)

// Metrics implements rewards.Recorder on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	purchases    *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	earned       *prometheus.CounterVec
	redeemed     *prometheus.CounterVec
	discounts    *prometheus.CounterVec
	saveFailures prometheus.Counter
}

// New registers the rewardtrack collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rewardtrack",
			Name:      "purchases_total",
			Help:      "Purchases recorded, by program.",
		}, []string{"program"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rewardtrack",
			Name:      "purchase_rejections_total",
			Help:      "Purchases rejected, by program and reason.",
		}, []string{"program", "reason"}),
		earned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rewardtrack",
			Name:      "points_earned_total",
			Help:      "Points earned, by program.",
		}, []string{"program"}),
		redeemed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rewardtrack",
			Name:      "points_redeemed_total",
			Help:      "Points redeemed, by program.",
		}, []string{"program"}),
		discounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rewardtrack",
			Name:      "discount_value_total",
			Help:      "Monetary value of redeemed points, by program.",
		}, []string{"program"}),
		saveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rewardtrack",
			Name:      "snapshot_save_failures_total",
			Help:      "Ledger snapshots that could not be saved.",
		}),
	}
	m.registry.MustRegister(m.purchases, m.rejections, m.earned, m.redeemed, m.discounts, m.saveFailures)
	return m
}

func (m *Metrics) PurchaseRecorded(id types.ProgramID, earned, redeemed int64, discount decimal.Decimal) {
	program := id.String()
	m.purchases.WithLabelValues(program).Inc()
	m.earned.WithLabelValues(program).Add(float64(earned))
	m.redeemed.WithLabelValues(program).Add(float64(redeemed))
	m.discounts.WithLabelValues(program).Add(discount.InexactFloat64())
}

func (m *Metrics) PurchaseRejected(id types.ProgramID, reason string) {
	m.rejections.WithLabelValues(id.String(), reason).Inc()
}

func (m *Metrics) SnapshotSaveFailed() { m.saveFailures.Inc() }

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Compile-time assertion that Metrics implements rewards.Recorder.
var _ rewards.Recorder = (*Metrics)(nil)
