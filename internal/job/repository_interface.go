package job

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Begin(ctx context.Context) (*sqlx.Tx, error)
	CreateTx(ctx context.Context, tx *sqlx.Tx, clientID string, req PostJobRequest) (*Job, error)
	GetByID(ctx context.Context, id string) (*Job, error)
	ListActive(ctx context.Context, category string, limit, offset int) ([]Job, error)
	ListByClient(ctx context.Context, clientID string) ([]Job, error)
	IncrementViews(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
