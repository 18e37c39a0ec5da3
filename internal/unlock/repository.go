package unlock

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrUnlockNotFound = errors.New("unlock record not found")

const recordColumns = `id, job_id, contractor_id, contractor_name, country_code, unlocked_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Begin(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}

func (r *repository) Get(ctx context.Context, jobID, contractorID string) (*Record, error) {
	var rec Record
	err := r.db.GetContext(ctx, &rec,
		`SELECT `+recordColumns+` FROM job_unlocks WHERE job_id = $1 AND contractor_id = $2`,
		jobID, contractorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnlockNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repository) HasUnlocked(ctx context.Context, jobID, contractorID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM job_unlocks WHERE job_id = $1 AND contractor_id = $2)`,
		jobID, contractorID)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// InsertTx appends the unlock record inside the caller's transaction. The
// UNIQUE (job_id, contractor_id) constraint is the idempotency guard: a
// concurrent double-submit aborts the whole transaction, taking the debit
// down with it.
func (r *repository) InsertTx(ctx context.Context, tx *sqlx.Tx, rec Record) (*Record, error) {
	var inserted Record
	err := tx.QueryRowxContext(ctx,
		`INSERT INTO job_unlocks (job_id, contractor_id, contractor_name, country_code)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+recordColumns,
		rec.JobID, rec.ContractorID, rec.ContractorName, rec.CountryCode,
	).StructScan(&inserted)
	if err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (r *repository) ListByJob(ctx context.Context, jobID string) ([]Record, error) {
	records := []Record{}
	err := r.db.SelectContext(ctx, &records,
		`SELECT `+recordColumns+` FROM job_unlocks WHERE job_id = $1 ORDER BY unlocked_at DESC`,
		jobID)
	if err != nil {
		return nil, err
	}
	return records, nil
}
