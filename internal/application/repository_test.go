package application

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, dbmock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), dbmock
}

func TestInsertTx_BumpsJobCounter(t *testing.T) {
	repo, dbmock := newMockRepo(t)
	createdAt := time.Now()

	dbmock.ExpectBegin()
	dbmock.ExpectQuery(`INSERT INTO applications`).
		WithArgs(sqlmock.AnyArg(), "job-1", "contr-1", "I can start Monday.").
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "contractor_id", "message", "created_at"}).
			AddRow("app-1", "job-1", "contr-1", "I can start Monday.", createdAt))
	dbmock.ExpectExec(`UPDATE jobs SET applications = applications \+ 1`).
		WithArgs("job-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbmock.ExpectCommit()

	tx, err := repo.Begin(context.Background())
	require.NoError(t, err)

	app, err := repo.InsertTx(context.Background(), tx, "job-1", "contr-1", "I can start Monday.")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, "app-1", app.ID)
	assert.NoError(t, dbmock.ExpectationsWereMet())
}

func TestInsertTx_DuplicateApplication(t *testing.T) {
	repo, dbmock := newMockRepo(t)

	dbmock.ExpectBegin()
	dbmock.ExpectQuery(`INSERT INTO applications`).
		WithArgs(sqlmock.AnyArg(), "job-1", "contr-1", "").
		WillReturnError(&pq.Error{Code: "23505"})
	dbmock.ExpectRollback()

	tx, err := repo.Begin(context.Background())
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = repo.InsertTx(context.Background(), tx, "job-1", "contr-1", "")

	assert.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestHasApplied(t *testing.T) {
	repo, dbmock := newMockRepo(t)

	dbmock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("job-1", "contr-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.HasApplied(context.Background(), "job-1", "contr-1")

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListByJob_IncludesContractorName(t *testing.T) {
	repo, dbmock := newMockRepo(t)
	now := time.Now()

	dbmock.ExpectQuery(`SELECT .+ FROM applications a\s+JOIN accounts acc`).
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "contractor_id", "message", "created_at", "contractor_name"}).
			AddRow("app-2", "job-1", "contr-2", "Available next week", now, "Marek").
			AddRow("app-1", "job-1", "contr-1", "", now.Add(-time.Hour), "Oksana"))

	apps, err := repo.ListByJob(context.Background(), "job-1")

	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "Marek", apps[0].ContractorName)
}

func TestListByContractor_IncludesJobInfo(t *testing.T) {
	repo, dbmock := newMockRepo(t)
	now := time.Now()

	dbmock.ExpectQuery(`SELECT .+ FROM applications a\s+JOIN jobs j`).
		WithArgs("contr-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "contractor_id", "message", "created_at", "job_title", "job_status"}).
			AddRow("app-1", "job-1", "contr-1", "", now, "Roof repair", "active"))

	apps, err := repo.ListByContractor(context.Background(), "contr-1")

	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Roof repair", apps[0].JobTitle)
	assert.Equal(t, "active", apps[0].JobStatus)
}
