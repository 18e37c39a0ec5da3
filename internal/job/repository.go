package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrJobNotFound = errors.New("job not found")

const jobColumns = `id, client_id, title, category, description, budget, country, city, start_date, duration, workload, status, views, applications, photos, details, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Begin(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}

func (r *repository) CreateTx(ctx context.Context, tx *sqlx.Tx, clientID string, req PostJobRequest) (*Job, error) {
	details := req.Details
	if len(details) == 0 {
		details = []byte("{}")
	}
	photos := req.Photos
	if photos == nil {
		photos = []string{}
	}

	var j Job
	err := tx.QueryRowxContext(ctx, `
		INSERT INTO jobs (id, client_id, title, category, description, budget, country, city, start_date, duration, workload, photos, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+jobColumns,
		uuid.NewString(), clientID, req.Title, req.Category, req.Description, req.Budget,
		req.Country, req.City, req.StartDate, req.Duration, req.Workload,
		pq.Array(photos), details,
	).StructScan(&j)
	if err != nil {
		return nil, err
	}

	return &j, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Job, error) {
	var j Job
	err := r.db.GetContext(ctx, &j,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *repository) ListActive(ctx context.Context, category string, limit, offset int) ([]Job, error) {
	if limit <= 0 {
		limit = 50
	}

	jobs := []Job{}
	var err error
	if category != "" {
		err = r.db.SelectContext(ctx, &jobs, `
			SELECT `+jobColumns+`
			FROM jobs
			WHERE status = 'active' AND category = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		`, category, limit, offset)
	} else {
		err = r.db.SelectContext(ctx, &jobs, `
			SELECT `+jobColumns+`
			FROM jobs
			WHERE status = 'active'
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2
		`, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *repository) ListByClient(ctx context.Context, clientID string) ([]Job, error) {
	jobs := []Job{}
	err := r.db.SelectContext(ctx, &jobs, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE client_id = $1
		ORDER BY created_at DESC
	`, clientID)
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *repository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}
