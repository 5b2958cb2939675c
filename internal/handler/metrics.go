package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	exportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flowershop",
			Subsystem: "exports",
			Name:      "requests_total",
			Help:      "Total number of order export requests by format and outcome",
		},
		[]string{"format", "outcome"},
	)

	invoicesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flowershop",
			Subsystem: "invoices",
			Name:      "requests_total",
			Help:      "Total number of invoice requests by outcome",
		},
		[]string{"outcome"},
	)
)

const (
	outcomeOK          = "ok"
	outcomeNotFound    = "not_found"
	outcomeUnavailable = "store_unavailable"
	outcomeError       = "error"
)

func RegisterMetrics() {
	prometheus.MustRegister(
		exportsTotal,
		invoicesTotal,
	)
}
