package application

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Begin(ctx context.Context) (*sqlx.Tx, error)
	// InsertTx writes the application and bumps the job's applications
	// counter inside the caller's transaction.
	InsertTx(ctx context.Context, tx *sqlx.Tx, jobID, contractorID, message string) (*Application, error)
	HasApplied(ctx context.Context, jobID, contractorID string) (bool, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
	ListByContractor(ctx context.Context, contractorID string) ([]Application, error)
}
