package job

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupJobMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func jobRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "client_id", "title", "category", "description", "budget", "country", "city",
		"start_date", "duration", "workload", "status", "views", "applications", "photos", "details", "created_at",
	})
}

func addJobRow(rows *sqlmock.Rows, id, clientID, title, status string) *sqlmock.Rows {
	return rows.AddRow(id, clientID, title, "renovation", "", "", "Germany", "Berlin",
		"", "", "", status, 0, 0, "{}", []byte("{}"), time.Now())
}

func TestCreateTx(t *testing.T) {
	repo, mock, close := setupJobMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO jobs").
		WillReturnRows(addJobRow(jobRows(), "job-1", "client-1", "Bathroom renovation", "active"))

	tx, err := repo.Begin(context.Background())
	require.NoError(t, err)

	job, err := repo.CreateTx(context.Background(), tx, "client-1", PostJobRequest{
		Title:    "Bathroom renovation",
		Category: "renovation",
	})
	require.NoError(t, err)
	require.Equal(t, "job-1", job.ID)
	require.Equal(t, StatusActive, job.Status)
	require.Equal(t, 0, job.Views)
	require.Equal(t, 0, job.Applications)
}

func TestListActive_WithCategory(t *testing.T) {
	repo, mock, close := setupJobMock(t)
	defer close()

	rows := jobRows()
	addJobRow(rows, "job-2", "client-1", "Kitchen tiling", "active")

	mock.ExpectQuery("SELECT .+ FROM jobs WHERE status = 'active' AND category").
		WithArgs("tiling", 50, 0).
		WillReturnRows(rows)

	jobs, err := repo.ListActive(context.Background(), "tiling", 0, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, mock, close := setupJobMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE jobs SET status = $1 WHERE id = $2")).
		WithArgs("closed", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", "closed")
	require.ErrorIs(t, err, ErrJobNotFound)
}

func TestIncrementViews(t *testing.T) {
	repo, mock, close := setupJobMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE jobs SET views = views + 1 WHERE id = $1")).
		WithArgs("job-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementViews(context.Background(), "job-1"))
}
