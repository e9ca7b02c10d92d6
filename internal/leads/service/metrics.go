package service

import "github.com/prometheus/client_golang/prometheus"

// Import row outcomes.
const (
	outcomeCreated  = "created"
	outcomeSkipped  = "skipped"
	outcomeRejected = "rejected"
)

// ImportMetrics counts bulk-import rows by outcome. A nil *ImportMetrics
// records nothing.
type ImportMetrics struct {
	rows *prometheus.CounterVec
}

// NewImportMetrics registers the import counters on reg.
func NewImportMetrics(reg prometheus.Registerer) *ImportMetrics {
	m := &ImportMetrics{
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadflow",
			Name:      "import_rows_total",
			Help:      "Bulk import rows by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.rows)
	return m
}

func (m *ImportMetrics) add(outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rows.WithLabelValues(outcome).Add(float64(n))
}
