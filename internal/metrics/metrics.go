package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CustomersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kkartei_customers_created_total",
			Help: "Customers created via API or CSV import",
		},
	)

	EntriesWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kkartei_entries_written_total",
			Help: "Ledger entries inserted by source",
		},
		[]string{"source"}, // api|import
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		CustomersCreated,
		EntriesWritten,
	)
}
