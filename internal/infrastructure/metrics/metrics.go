package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LedgerMetrics holds every transaction lifecycle metric.
type LedgerMetrics struct {
	TransactionsBegunTotal       prometheus.CounterVec
	TransactionsBegunAmountTotal prometheus.CounterVec

	TransactionsFormedTotal prometheus.CounterVec

	TransactionsVerifiedTotal       prometheus.CounterVec
	TransactionsVerifiedAmountTotal prometheus.CounterVec

	TransactionsRefundedTotal       prometheus.CounterVec
	TransactionsRefundedAmountTotal prometheus.CounterVec

	TransactionStatusGauge prometheus.GaugeVec

	TransitionErrorsTotal prometheus.CounterVec
	StorageRetriesTotal   prometheus.CounterVec

	VerifyDuration prometheus.HistogramVec
}

func NewLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		TransactionsBegunTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_begun_total",
				Help: "Total number of begun transactions",
			},
			[]string{"gateway", "currency"},
		),

		TransactionsBegunAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_begun_amount_total",
				Help: "Total fiat amount of begun transactions",
			},
			[]string{"gateway", "currency"},
		),

		TransactionsFormedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_formed_total",
				Help: "Total number of transactions sent to the payment provider",
			},
			[]string{"gateway"},
		),

		TransactionsVerifiedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_verified_total",
				Help: "Total number of verified transactions by outcome",
			},
			[]string{"gateway", "currency", "outcome"},
		),

		TransactionsVerifiedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_verified_amount_total",
				Help: "Total fiat amount of verified transactions by outcome",
			},
			[]string{"gateway", "currency", "outcome"},
		),

		TransactionsRefundedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_refunded_total",
				Help: "Total number of refunded transactions",
			},
			[]string{"gateway", "currency"},
		),

		TransactionsRefundedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_refunded_amount_total",
				Help: "Total fiat amount of refunded transactions",
			},
			[]string{"gateway", "currency"},
		),

		TransactionStatusGauge: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "transactions_by_status",
				Help: "Number of transactions currently in each status",
			},
			[]string{"gateway", "status"},
		),

		TransitionErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_transition_errors_total",
				Help: "Total number of rejected status transitions",
			},
			[]string{"gateway", "from", "to"},
		),

		StorageRetriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_storage_retries_total",
				Help: "Total number of retried ledger writes",
			},
			[]string{"operation"},
		),

		VerifyDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transaction_verify_duration_seconds",
				Help:    "Time from forming a transaction to its verification",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1s, 2s, 4s...
			},
			[]string{"gateway", "outcome"},
		),
	}
}

// RecordBegun records a newly begun transaction.
func (m *LedgerMetrics) RecordBegun(gateway, currency string, amountFiat float64) {
	m.TransactionsBegunTotal.WithLabelValues(gateway, currency).Inc()
	m.TransactionsBegunAmountTotal.WithLabelValues(gateway, currency).Add(amountFiat)
	m.TransactionStatusGauge.WithLabelValues(gateway, "CREATED").Inc()
}

// RecordFormed records a transaction handed to the provider.
func (m *LedgerMetrics) RecordFormed(gateway string) {
	m.TransactionsFormedTotal.WithLabelValues(gateway).Inc()
	m.TransactionStatusGauge.WithLabelValues(gateway, "CREATED").Dec()
	m.TransactionStatusGauge.WithLabelValues(gateway, "FORMED").Inc()
}

// RecordVerified records a verification outcome.
func (m *LedgerMetrics) RecordVerified(gateway, currency, outcome string, amountFiat, durationSeconds float64) {
	m.TransactionsVerifiedTotal.WithLabelValues(gateway, currency, outcome).Inc()
	m.TransactionsVerifiedAmountTotal.WithLabelValues(gateway, currency, outcome).Add(amountFiat)
	m.TransactionStatusGauge.WithLabelValues(gateway, "FORMED").Dec()
	m.TransactionStatusGauge.WithLabelValues(gateway, outcome).Inc()
	m.VerifyDuration.WithLabelValues(gateway, outcome).Observe(durationSeconds)
}

// RecordRefunded records a refunded transaction.
func (m *LedgerMetrics) RecordRefunded(gateway, currency string, amountFiat float64) {
	m.TransactionsRefundedTotal.WithLabelValues(gateway, currency).Inc()
	m.TransactionsRefundedAmountTotal.WithLabelValues(gateway, currency).Add(amountFiat)
	m.TransactionStatusGauge.WithLabelValues(gateway, "PAID").Dec()
	m.TransactionStatusGauge.WithLabelValues(gateway, "REFUNDED").Inc()
}

// RecordTransitionError records a rejected transition.
func (m *LedgerMetrics) RecordTransitionError(gateway, from, to string) {
	m.TransitionErrorsTotal.WithLabelValues(gateway, from, to).Inc()
}

// RecordStorageRetry records a retried ledger write.
func (m *LedgerMetrics) RecordStorageRetry(operation string) {
	m.StorageRetriesTotal.WithLabelValues(operation).Inc()
}
