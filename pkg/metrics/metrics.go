package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for monitoring
var (
	IntentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cashlink_intents_created_total",
		Help: "The total number of intent records created",
	})

	IntentsClaimed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cashlink_intents_claimed_total",
		Help: "The total number of intents marked claimed",
	})

	IntentResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashlink_intent_resolutions_total",
		Help: "Intent resolutions by source and outcome",
	}, []string{"source", "outcome"})

	ReconciliationHeals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cashlink_reconciliation_heals_total",
		Help: "Off-chain records updated to claimed after the chain reported the claim",
	})

	TransactionSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashlink_transaction_steps_total",
		Help: "Orchestrated transaction steps by step name and outcome",
	}, []string{"step", "outcome"})

	TransactionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cashlink_transaction_seconds",
		Help:    "Time taken for orchestrated transaction flows",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10), // Start at 1s with 10 buckets doubling in size
	}, []string{"flow"})

	GasPrice = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cashlink_gas_price_gwei",
		Help: "Current gas price in gwei",
	})

	RPCErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashlink_rpc_errors_total",
		Help: "Total number of RPC errors by operation",
	}, []string{"operation"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashlink_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "code"})

	TokenBalance = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cashlink_token_balance",
		Help: "Signer token balance in whole token units",
	}, []string{"symbol"})
)
