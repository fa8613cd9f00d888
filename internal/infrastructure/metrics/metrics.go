package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the business-level Prometheus metrics. A nil *Metrics
// is safe to use, so use cases under test need no registry.
type Metrics struct {
	accountsCreated  prometheus.Counter
	accountsArchived prometheus.Counter

	entriesSubmitted prometheus.Counter
	entriesApproved  prometheus.Counter
	entriesRejected  prometheus.Counter
	postingFailures  *prometheus.CounterVec

	reportsGenerated *prometheus.CounterVec
}

// New creates and registers all business metrics.
func New() *Metrics {
	return &Metrics{
		accountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerlite_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		accountsArchived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerlite_accounts_archived_total",
			Help: "Total number of accounts archived",
		}),
		entriesSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerlite_journal_entries_submitted_total",
			Help: "Total number of journal entries submitted",
		}),
		entriesApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerlite_journal_entries_approved_total",
			Help: "Total number of journal entries approved",
		}),
		entriesRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerlite_journal_entries_rejected_total",
			Help: "Total number of journal entries rejected",
		}),
		postingFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerlite_posting_failures_total",
				Help: "Total number of posting failures by reason",
			},
			[]string{"reason"},
		),
		reportsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerlite_reports_generated_total",
				Help: "Total number of reports generated by kind",
			},
			[]string{"kind"},
		),
	}
}

func (m *Metrics) AccountCreated() {
	if m == nil {
		return
	}
	m.accountsCreated.Inc()
}

func (m *Metrics) AccountArchived() {
	if m == nil {
		return
	}
	m.accountsArchived.Inc()
}

func (m *Metrics) EntrySubmitted() {
	if m == nil {
		return
	}
	m.entriesSubmitted.Inc()
}

func (m *Metrics) EntryApproved() {
	if m == nil {
		return
	}
	m.entriesApproved.Inc()
}

func (m *Metrics) EntryRejected() {
	if m == nil {
		return
	}
	m.entriesRejected.Inc()
}

func (m *Metrics) PostingFailed(reason string) {
	if m == nil {
		return
	}
	m.postingFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) ReportGenerated(kind string) {
	if m == nil {
		return
	}
	m.reportsGenerated.WithLabelValues(kind).Inc()
}
