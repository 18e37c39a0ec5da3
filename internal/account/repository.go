package account

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrAccountNotFound = errors.New("account not found")

const accountColumns = `id, role, name, email, password_hash, avatar_url, phone, company_name, skills, rating, country, city, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts the account together with its empty credit wallet so that
// a provisioned account always has a balance row to lock on.
func (r *repository) Create(ctx context.Context, params CreateParams) (*Account, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var account Account
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO accounts (id, role, name, email, password_hash, phone, company_name, skills, country, city)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+accountColumns,
		params.ID, params.Role, params.Name, params.Email, params.PasswordHash,
		params.Phone, params.CompanyName, pq.Array(params.Skills), params.Country, params.City,
	).StructScan(&account)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO credit_wallets (account_id, balance_credits) VALUES ($1, 0)`,
		account.ID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var account Account
	err := r.db.GetContext(ctx, &account,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Account, error) {
	var account Account
	err := r.db.GetContext(ctx, &account,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`, email)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) UpdateClientProfile(ctx context.Context, id string, upd ClientProfileUpdate) (*Account, error) {
	var account Account
	err := r.db.QueryRowxContext(ctx, `
		UPDATE accounts
		SET name         = COALESCE($1, name),
		    company_name = COALESCE($2, company_name),
		    avatar_url   = COALESCE($3, avatar_url),
		    phone        = COALESCE($4, phone)
		WHERE id = $5 AND role = 'client'
		RETURNING `+accountColumns,
		upd.Name, upd.CompanyName, upd.AvatarURL, upd.Phone, id,
	).StructScan(&account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repository) UpdateContractorProfile(ctx context.Context, id string, upd ContractorProfileUpdate) (*Account, error) {
	var skills interface{}
	if upd.Skills != nil {
		skills = pq.Array(upd.Skills)
	}

	var account Account
	err := r.db.QueryRowxContext(ctx, `
		UPDATE accounts
		SET name       = COALESCE($1, name),
		    skills     = COALESCE($2, skills),
		    country    = COALESCE($3, country),
		    city       = COALESCE($4, city),
		    avatar_url = COALESCE($5, avatar_url),
		    phone      = COALESCE($6, phone)
		WHERE id = $7 AND role = 'contractor'
		RETURNING `+accountColumns,
		upd.Name, skills, upd.Country, upd.City, upd.AvatarURL, upd.Phone, id,
	).StructScan(&account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
