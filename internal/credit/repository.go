package credit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrPackageNotFound     = errors.New("credit package not found")
)

const walletColumns = `id, account_id, balance_credits, created_at, updated_at`

const transactionColumns = `id, account_id, description, amount, credits_delta, balance_after, status, invoice_url, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetWallet(ctx context.Context, accountID string) (*Wallet, error) {
	var w Wallet
	err := r.db.GetContext(ctx, &w,
		`SELECT `+walletColumns+` FROM credit_wallets WHERE account_id = $1`, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}

// Purchase credits the wallet and appends the purchase transaction in one
// db transaction. No payment gateway is involved: the purchase always
// succeeds and the transaction is recorded as completed with a stub invoice.
func (r *repository) Purchase(ctx context.Context, accountID string, pkg Package) (*Wallet, *Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	w, err := lockWallet(ctx, tx, accountID)
	if err != nil {
		return nil, nil, err
	}

	newBalance := w.BalanceCredits + pkg.Credits
	if err := updateBalance(ctx, tx, w.ID, newBalance); err != nil {
		return nil, nil, err
	}

	txID := uuid.NewString()
	invoiceURL := fmt.Sprintf("/invoices/%s.pdf", txID)
	record, err := appendTransaction(ctx, tx, txID, accountID,
		fmt.Sprintf("Purchase of %s package (%d credits)", pkg.Name, pkg.Credits),
		pkg.Price, pkg.Credits, newBalance, &invoiceURL)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	w.BalanceCredits = newBalance
	return w, record, nil
}

func (r *repository) SpendTx(ctx context.Context, tx *sqlx.Tx, accountID string, credits int, description string) (*Transaction, error) {
	w, err := lockWallet(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	newBalance := w.BalanceCredits - credits
	if newBalance < 0 {
		return nil, ErrInsufficientCredits
	}

	if err := updateBalance(ctx, tx, w.ID, newBalance); err != nil {
		return nil, err
	}

	return appendTransaction(ctx, tx, uuid.NewString(), accountID, description,
		decimal.NewFromInt(int64(-credits)), -credits, newBalance, nil)
}

func (r *repository) GetTransactions(ctx context.Context, accountID string, limit, offset int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 50
	}

	txs := []Transaction{}
	err := r.db.SelectContext(ctx, &txs, `
		SELECT `+transactionColumns+`
		FROM credit_transactions
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func lockWallet(ctx context.Context, tx *sqlx.Tx, accountID string) (*Wallet, error) {
	var w Wallet
	err := tx.QueryRowxContext(ctx,
		`SELECT `+walletColumns+`
		 FROM credit_wallets
		 WHERE account_id = $1
		 FOR UPDATE`,
		accountID,
	).StructScan(&w)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}

func updateBalance(ctx context.Context, tx *sqlx.Tx, walletID, newBalance int) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE credit_wallets
		 SET balance_credits = $1, updated_at = NOW()
		 WHERE id = $2`,
		newBalance, walletID,
	)
	return err
}

func appendTransaction(ctx context.Context, tx *sqlx.Tx, id, accountID, description string, amount decimal.Decimal, creditsDelta, balanceAfter int, invoiceURL *string) (*Transaction, error) {
	var record Transaction
	err := tx.QueryRowxContext(ctx,
		`INSERT INTO credit_transactions (id, account_id, description, amount, credits_delta, balance_after, status, invoice_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+transactionColumns,
		id, accountID, description, amount, creditsDelta, balanceAfter, StatusCompleted, invoiceURL,
	).StructScan(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
