package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workbridge_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workbridge_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SignupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workbridge_signups_total",
			Help: "Total number of account signups",
		},
		[]string{"role"},
	)

	CreditPurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workbridge_credit_purchases_total",
			Help: "Total number of credit package purchases",
		},
		[]string{"package"},
	)

	CreditsSpentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workbridge_credits_spent_total",
			Help: "Total credits spent, by reason",
		},
		[]string{"reason"},
	)

	JobsPostedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workbridge_jobs_posted_total",
			Help: "Total number of jobs posted",
		},
	)

	ContactUnlocksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workbridge_contact_unlocks_total",
			Help: "Total number of contact unlocks charged",
		},
	)

	ApplicationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workbridge_applications_total",
			Help: "Total number of job applications submitted",
		},
	)

	InsufficientCreditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workbridge_insufficient_credits_total",
			Help: "Total operations rejected for insufficient credits",
		},
		[]string{"operation"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workbridge_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "workbridge_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSignup(role string) {
	SignupsTotal.WithLabelValues(role).Inc()
}

func RecordCreditPurchase(packageID string) {
	CreditPurchasesTotal.WithLabelValues(packageID).Inc()
}

func RecordCreditsSpent(reason string, credits int) {
	CreditsSpentTotal.WithLabelValues(reason).Add(float64(credits))
}

func RecordJobPosted() {
	JobsPostedTotal.Inc()
}

func RecordContactUnlock() {
	ContactUnlocksTotal.Inc()
}

func RecordApplication() {
	ApplicationsTotal.Inc()
}

func RecordInsufficientCredits(operation string) {
	InsufficientCreditsTotal.WithLabelValues(operation).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
