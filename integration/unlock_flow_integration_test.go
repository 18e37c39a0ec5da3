package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workbridge/internal/account"
	"workbridge/internal/application"
	"workbridge/internal/credit"
	"workbridge/internal/job"
	"workbridge/internal/unlock"
)

func TestUnlockAndApplyFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()
	cleanTables(t, db)

	ctx := context.Background()

	accountRepo := account.NewRepository(db)
	creditRepo := credit.NewRepository(db)
	jobRepo := job.NewRepository(db)
	unlockRepo := unlock.NewRepository(db)
	applicationRepo := application.NewRepository(db)

	jobService := job.NewService(jobRepo, creditRepo)
	unlockService := unlock.NewService(unlockRepo, jobRepo, accountRepo, creditRepo)
	applicationService := application.NewService(applicationRepo, jobRepo, unlockRepo, accountRepo, testEmailService())

	// Client posts a job for 30 credits
	clientID := createTestAccount(t, db, "client", "Lotte", "lotte@test.com")
	buyCredits(t, db, clientID, "standard") // 30 credits

	posted, record, err := jobService.PostJob(ctx, clientID, job.PostJobRequest{
		Title:    "Bathroom renovation",
		Category: "renovation",
		Budget:   "5000-8000 EUR",
		Country:  "Germany",
		City:     "Hamburg",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, record.BalanceAfter)
	assert.Equal(t, -30, record.CreditsDelta)
	assert.Equal(t, job.StatusActive, posted.Status)

	txs, err := creditRepo.GetTransactions(ctx, clientID, 10, 0)
	require.NoError(t, err)
	require.Len(t, txs, 2) // purchase + posting fee
	assert.Equal(t, -30, txs[0].CreditsDelta)

	// Contractor unlocks the contact for 10 credits
	contractorID := createTestAccount(t, db, "contractor", "Oksana", "oksana@test.com")
	buyCredits(t, db, contractorID, "starter") // 10 credits

	rec, balance, charged, err := unlockService.UnlockContact(ctx, posted.ID, contractorID)
	require.NoError(t, err)
	assert.True(t, charged)
	assert.Equal(t, 0, balance)
	assert.Equal(t, "PL", rec.CountryCode)

	// Unlocking the same job again is free
	_, balance, charged, err = unlockService.UnlockContact(ctx, posted.ID, contractorID)
	require.NoError(t, err)
	assert.False(t, charged)
	assert.Equal(t, 0, balance)

	// Contact details are now visible
	contact, err := unlockService.GetContact(ctx, posted.ID, contractorID)
	require.NoError(t, err)
	assert.Equal(t, "lotte@test.com", contact.Email)

	// Applying bumps the job's counter
	app, err := applicationService.Apply(ctx, posted.ID, contractorID, application.ApplyRequest{Message: "I can start Monday."})
	require.NoError(t, err)
	assert.Equal(t, posted.ID, app.JobID)

	reloaded, err := jobRepo.GetByID(ctx, posted.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Applications)

	// Second application from the same contractor is rejected
	_, err = applicationService.Apply(ctx, posted.ID, contractorID, application.ApplyRequest{})
	assert.ErrorIs(t, err, application.ErrAlreadyApplied)
	reloaded, _ = jobRepo.GetByID(ctx, posted.ID)
	assert.Equal(t, 1, reloaded.Applications)
}

func TestUnlockWithoutCredits(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()
	cleanTables(t, db)

	ctx := context.Background()

	accountRepo := account.NewRepository(db)
	creditRepo := credit.NewRepository(db)
	jobRepo := job.NewRepository(db)
	unlockRepo := unlock.NewRepository(db)

	jobService := job.NewService(jobRepo, creditRepo)
	unlockService := unlock.NewService(unlockRepo, jobRepo, accountRepo, creditRepo)

	clientID := createTestAccount(t, db, "client", "Jan", "jan@test.com")
	buyCredits(t, db, clientID, "standard")

	posted, _, err := jobService.PostJob(ctx, clientID, job.PostJobRequest{
		Title:    "Roof repair",
		Category: "roofing",
	})
	require.NoError(t, err)

	// Empty wallet cannot unlock, and no record is left behind
	contractorID := createTestAccount(t, db, "contractor", "Marek", "marek@test.com")

	_, _, _, err = unlockService.UnlockContact(ctx, posted.ID, contractorID)
	assert.ErrorIs(t, err, credit.ErrInsufficientCredits)

	unlocked, err := unlockRepo.HasUnlocked(ctx, posted.ID, contractorID)
	require.NoError(t, err)
	assert.False(t, unlocked)
}

func TestUnlockSecondJobWithPartialBalance(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()
	cleanTables(t, db)

	ctx := context.Background()

	accountRepo := account.NewRepository(db)
	creditRepo := credit.NewRepository(db)
	jobRepo := job.NewRepository(db)
	unlockRepo := unlock.NewRepository(db)

	jobService := job.NewService(jobRepo, creditRepo)
	unlockService := unlock.NewService(unlockRepo, jobRepo, accountRepo, creditRepo)

	clientID := createTestAccount(t, db, "client", "Nina", "nina@test.com")
	buyCredits(t, db, clientID, "pro") // enough for two postings

	first, _, err := jobService.PostJob(ctx, clientID, job.PostJobRequest{Title: "Tiling", Category: "tiling"})
	require.NoError(t, err)
	second, _, err := jobService.PostJob(ctx, clientID, job.PostJobRequest{Title: "Painting", Category: "painting"})
	require.NoError(t, err)

	// 15 credits covers one unlock but not two
	contractorID := createTestAccount(t, db, "contractor", "Igor", "igor@test.com")
	buyCredits(t, db, contractorID, "starter") // 10
	_, err = db.Exec(`UPDATE credit_wallets SET balance_credits = 15 WHERE account_id = $1`, contractorID)
	require.NoError(t, err)

	_, balance, charged, err := unlockService.UnlockContact(ctx, first.ID, contractorID)
	require.NoError(t, err)
	assert.True(t, charged)
	assert.Equal(t, 5, balance)

	_, _, _, err = unlockService.UnlockContact(ctx, second.ID, contractorID)
	assert.ErrorIs(t, err, credit.ErrInsufficientCredits)

	w, err := creditRepo.GetWallet(ctx, contractorID)
	require.NoError(t, err)
	assert.Equal(t, 5, w.BalanceCredits)
}

func TestApplyRequiresUnlock_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()
	cleanTables(t, db)

	ctx := context.Background()

	accountRepo := account.NewRepository(db)
	creditRepo := credit.NewRepository(db)
	jobRepo := job.NewRepository(db)
	unlockRepo := unlock.NewRepository(db)
	applicationRepo := application.NewRepository(db)

	jobService := job.NewService(jobRepo, creditRepo)
	applicationService := application.NewService(applicationRepo, jobRepo, unlockRepo, accountRepo, testEmailService())

	clientID := createTestAccount(t, db, "client", "Elke", "elke@test.com")
	buyCredits(t, db, clientID, "standard")

	posted, _, err := jobService.PostJob(ctx, clientID, job.PostJobRequest{
		Title:    "Kitchen fitting",
		Category: "carpentry",
	})
	require.NoError(t, err)

	contractorID := createTestAccount(t, db, "contractor", "Tomas", "tomas@test.com")
	buyCredits(t, db, contractorID, "starter")

	_, err = applicationService.Apply(ctx, posted.ID, contractorID, application.ApplyRequest{})
	assert.ErrorIs(t, err, application.ErrContactNotUnlocked)
}
