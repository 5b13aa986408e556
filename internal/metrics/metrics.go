package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"amplify/internal/models"
	"amplify/internal/repository"
)

var (
	influencersDesc = prometheus.NewDesc(
		"amplify_influencers",
		"Roster size by status",
		[]string{"status"},
		nil,
	)
	submissionsDesc = prometheus.NewDesc(
		"amplify_submissions",
		"Submissions by type and review state",
		[]string{"type", "state"},
		nil,
	)
	campaignsDesc = prometheus.NewDesc(
		"amplify_campaigns",
		"Number of stored campaigns",
		nil,
		nil,
	)
)

// Review outcomes.
const (
	OutcomeApproved = "approved"
	OutcomeRejected = "rejected"
)

var (
	reviewsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "amplify_reviews_total",
		Help: "Submissions reviewed by type and outcome",
	}, []string{"type", "outcome"})

	importedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "amplify_imported_records_total",
		Help: "Records created from CSV imports by collection",
	}, []string{"collection"})
)

// RosterCollector is a custom Prometheus collector that reads collection
// sizes from the repositories on each scrape.
type RosterCollector struct {
	repos *repository.Set
}

// NewRosterCollector creates a collector over repos.
func NewRosterCollector(repos *repository.Set) *RosterCollector {
	return &RosterCollector{repos: repos}
}

// Describe sends the metric descriptors to the channel.
func (c *RosterCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- influencersDesc
	ch <- submissionsDesc
	ch <- campaignsDesc
}

// Collect counts the current collections and emits them as gauges.
func (c *RosterCollector) Collect(ch chan<- prometheus.Metric) {
	byStatus := make(map[models.Status]int, len(models.Statuses))
	for _, inf := range c.repos.Influencers.List() {
		byStatus[inf.Status]++
	}
	for _, st := range models.Statuses {
		ch <- prometheus.MustNewConstMetric(influencersDesc, prometheus.GaugeValue, float64(byStatus[st]), string(st))
	}

	var creatorPending, creatorReviewed int
	for _, s := range c.repos.Creators.List() {
		if s.Reviewed {
			creatorReviewed++
		} else {
			creatorPending++
		}
	}
	var agencyPending, agencyReviewed int
	for _, s := range c.repos.Agencies.List() {
		if s.Reviewed {
			agencyReviewed++
		} else {
			agencyPending++
		}
	}
	creator, agency := string(models.SubmissionCreator), string(models.SubmissionAgency)
	ch <- prometheus.MustNewConstMetric(submissionsDesc, prometheus.GaugeValue, float64(creatorPending), creator, "pending")
	ch <- prometheus.MustNewConstMetric(submissionsDesc, prometheus.GaugeValue, float64(creatorReviewed), creator, "reviewed")
	ch <- prometheus.MustNewConstMetric(submissionsDesc, prometheus.GaugeValue, float64(agencyPending), agency, "pending")
	ch <- prometheus.MustNewConstMetric(submissionsDesc, prometheus.GaugeValue, float64(agencyReviewed), agency, "reviewed")

	ch <- prometheus.MustNewConstMetric(campaignsDesc, prometheus.GaugeValue, float64(c.repos.Campaigns.Len()))
}

var initOnce sync.Once

// Init registers the roster collector and the event counters.
// Must be called once at startup.
func Init(repos *repository.Set) {
	initOnce.Do(func() {
		prometheus.MustRegister(NewRosterCollector(repos), reviewsTotal, importedTotal)
	})
}

// RecordReview counts a reviewed submission.
func RecordReview(kind models.SubmissionType, outcome string) {
	reviewsTotal.WithLabelValues(string(kind), outcome).Inc()
}

// RecordImport counts records created by an import into collection.
func RecordImport(collection string, n int) {
	importedTotal.WithLabelValues(collection).Add(float64(n))
}
