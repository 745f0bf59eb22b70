package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type minterMetrics struct {
	operations   *prometheus.CounterVec
	liquidations prometheus.Counter
	feesPaid     prometheus.Counter
}

var (
	minterMetricsOnce sync.Once
	minterRegistry    *minterMetrics
)

// Minter returns the metrics registry tracking protocol engine operations.
func Minter() *minterMetrics {
	minterMetricsOnce.Do(func() {
		minterRegistry = &minterMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "kresko",
				Subsystem: "minter",
				Name:      "operations_total",
				Help:      "Count of engine operations segmented by kind and outcome.",
			}, []string{"op", "outcome"}),
			liquidations: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "kresko",
				Subsystem: "minter",
				Name:      "liquidations_total",
				Help:      "Count of successful liquidations.",
			}),
			feesPaid: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "kresko",
				Subsystem: "minter",
				Name:      "fee_payments_total",
				Help:      "Count of protocol fee payments across all collateral assets.",
			}),
		}
		prometheus.MustRegister(minterRegistry.operations, minterRegistry.liquidations, minterRegistry.feesPaid)
	})
	return minterRegistry
}

// RecordOperation increments the operation counter, labelling the outcome by
// whether err is nil.
func (m *minterMetrics) RecordOperation(op string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.operations.WithLabelValues(op, outcome).Inc()
}

// RecordLiquidation increments the liquidation counter.
func (m *minterMetrics) RecordLiquidation() {
	if m == nil {
		return
	}
	m.liquidations.Inc()
}

// RecordFeePayment increments the fee payment counter.
func (m *minterMetrics) RecordFeePayment() {
	if m == nil {
		return
	}
	m.feesPaid.Inc()
}
