package unlock

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Begin(ctx context.Context) (*sqlx.Tx, error)
	Get(ctx context.Context, jobID, contractorID string) (*Record, error)
	HasUnlocked(ctx context.Context, jobID, contractorID string) (bool, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, rec Record) (*Record, error)
	ListByJob(ctx context.Context, jobID string) ([]Record, error)
}
