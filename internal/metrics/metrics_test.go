package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	// Сбрасываем метрики перед тестом
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/jobs", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/jobs", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/auth/login", "200", 0.1)
	RecordHTTPRequest("POST", "/auth/login", "200", 0.2)
	RecordHTTPRequest("POST", "/auth/login", "401", 0.05)

	successCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "200"))
	failCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "401"))

	assert.Equal(t, float64(2), successCount)
	assert.Equal(t, float64(1), failCount)
}

func TestRecordCreditPurchase(t *testing.T) {
	CreditPurchasesTotal.Reset()

	RecordCreditPurchase("pro")
	RecordCreditPurchase("pro")
	RecordCreditPurchase("starter")

	proCount := testutil.ToFloat64(CreditPurchasesTotal.WithLabelValues("pro"))
	starterCount := testutil.ToFloat64(CreditPurchasesTotal.WithLabelValues("starter"))

	assert.Equal(t, float64(2), proCount)
	assert.Equal(t, float64(1), starterCount)
}

func TestRecordCreditsSpent(t *testing.T) {
	CreditsSpentTotal.Reset()

	RecordCreditsSpent("job_post", 30)
	RecordCreditsSpent("contact_unlock", 10)
	RecordCreditsSpent("contact_unlock", 10)

	jobPost := testutil.ToFloat64(CreditsSpentTotal.WithLabelValues("job_post"))
	unlocks := testutil.ToFloat64(CreditsSpentTotal.WithLabelValues("contact_unlock"))

	assert.Equal(t, float64(30), jobPost)
	assert.Equal(t, float64(20), unlocks)
}

func TestRecordJobPosted(t *testing.T) {
	// Подменяем глобальный счетчик на время теста
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "workbridge_jobs_posted_total_test",
			Help: "Total number of jobs posted",
		},
	)

	oldCounter := JobsPostedTotal
	JobsPostedTotal = testCounter
	defer func() { JobsPostedTotal = oldCounter }()

	RecordJobPosted()
	RecordJobPosted()

	count := testutil.ToFloat64(testCounter)
	assert.Equal(t, float64(2), count)
}

func TestRecordContactUnlock(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "workbridge_contact_unlocks_total_test",
			Help: "Total number of contact unlocks charged",
		},
	)

	oldCounter := ContactUnlocksTotal
	ContactUnlocksTotal = testCounter
	defer func() { ContactUnlocksTotal = oldCounter }()

	RecordContactUnlock()

	count := testutil.ToFloat64(testCounter)
	assert.Equal(t, float64(1), count)
}

func TestRecordInsufficientCredits(t *testing.T) {
	InsufficientCreditsTotal.Reset()

	RecordInsufficientCredits("contact_unlock")
	RecordInsufficientCredits("job_post")
	RecordInsufficientCredits("contact_unlock")

	unlockCount := testutil.ToFloat64(InsufficientCreditsTotal.WithLabelValues("contact_unlock"))
	postCount := testutil.ToFloat64(InsufficientCreditsTotal.WithLabelValues("job_post"))

	assert.Equal(t, float64(2), unlockCount)
	assert.Equal(t, float64(1), postCount)
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("application_received", "success")
	RecordEmail("application_received", "failed")

	success := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("application_received", "success"))
	failed := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("application_received", "failed"))

	assert.Equal(t, float64(1), success)
	assert.Equal(t, float64(1), failed)
}
