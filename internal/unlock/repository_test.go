package unlock

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, dbmock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), dbmock
}

func TestGet_ReturnsRecord(t *testing.T) {
	repo, dbmock := newMockRepo(t)
	unlockedAt := time.Now()

	dbmock.ExpectQuery(`SELECT .+ FROM job_unlocks WHERE job_id = \$1 AND contractor_id = \$2`).
		WithArgs("job-1", "contr-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "contractor_id", "contractor_name", "country_code", "unlocked_at"}).
			AddRow(1, "job-1", "contr-1", "Oksana", "UA", unlockedAt))

	rec, err := repo.Get(context.Background(), "job-1", "contr-1")

	require.NoError(t, err)
	assert.Equal(t, "UA", rec.CountryCode)
	assert.Equal(t, "Oksana", rec.ContractorName)
	assert.NoError(t, dbmock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, dbmock := newMockRepo(t)

	dbmock.ExpectQuery(`SELECT .+ FROM job_unlocks`).
		WithArgs("job-1", "contr-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), "job-1", "contr-1")

	assert.ErrorIs(t, err, ErrUnlockNotFound)
}

func TestHasUnlocked(t *testing.T) {
	repo, dbmock := newMockRepo(t)

	dbmock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("job-1", "contr-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.HasUnlocked(context.Background(), "job-1", "contr-1")

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInsertTx(t *testing.T) {
	repo, dbmock := newMockRepo(t)
	unlockedAt := time.Now()

	dbmock.ExpectBegin()
	dbmock.ExpectQuery(`INSERT INTO job_unlocks`).
		WithArgs("job-1", "contr-1", "Pavel", "RO").
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "contractor_id", "contractor_name", "country_code", "unlocked_at"}).
			AddRow(7, "job-1", "contr-1", "Pavel", "RO", unlockedAt))
	dbmock.ExpectCommit()

	tx, err := repo.Begin(context.Background())
	require.NoError(t, err)

	rec, err := repo.InsertTx(context.Background(), tx, Record{
		JobID:          "job-1",
		ContractorID:   "contr-1",
		ContractorName: "Pavel",
		CountryCode:    "RO",
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, "RO", rec.CountryCode)
	assert.NoError(t, dbmock.ExpectationsWereMet())
}

func TestListByJob_NewestFirst(t *testing.T) {
	repo, dbmock := newMockRepo(t)
	now := time.Now()

	dbmock.ExpectQuery(`SELECT .+ FROM job_unlocks WHERE job_id = \$1 ORDER BY unlocked_at DESC`).
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "contractor_id", "contractor_name", "country_code", "unlocked_at"}).
			AddRow(2, "job-1", "contr-2", "Marek", "PL", now).
			AddRow(1, "job-1", "contr-1", "Oksana", "UA", now.Add(-time.Hour)))

	records, err := repo.ListByJob(context.Background(), "job-1")

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Marek", records[0].ContractorName)
}
