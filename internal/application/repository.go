package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrAlreadyApplied = errors.New("already applied to this job")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Begin(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}

func (r *repository) InsertTx(ctx context.Context, tx *sqlx.Tx, jobID, contractorID, message string) (*Application, error) {
	var app Application
	err := tx.QueryRowxContext(ctx,
		`INSERT INTO applications (id, job_id, contractor_id, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, job_id, contractor_id, message, created_at`,
		uuid.NewString(), jobID, contractorID, message,
	).StructScan(&app)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	// Счётчик откликов на вакансии обновляется в той же транзакции
	_, err = tx.ExecContext(ctx,
		`UPDATE jobs SET applications = applications + 1 WHERE id = $1`, jobID)
	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (r *repository) HasApplied(ctx context.Context, jobID, contractorID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND contractor_id = $2)`,
		jobID, contractorID)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	apps := []Application{}
	err := r.db.SelectContext(ctx, &apps,
		`SELECT a.id, a.job_id, a.contractor_id, a.message, a.created_at,
		        acc.name AS contractor_name
		 FROM applications a
		 JOIN accounts acc ON acc.id = a.contractor_id
		 WHERE a.job_id = $1
		 ORDER BY a.created_at DESC`,
		jobID)
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *repository) ListByContractor(ctx context.Context, contractorID string) ([]Application, error) {
	apps := []Application{}
	err := r.db.SelectContext(ctx, &apps,
		`SELECT a.id, a.job_id, a.contractor_id, a.message, a.created_at,
		        j.title AS job_title, j.status AS job_status
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.contractor_id = $1
		 ORDER BY a.created_at DESC`,
		contractorID)
	if err != nil {
		return nil, err
	}
	return apps, nil
}
