package credit

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	GetWallet(ctx context.Context, accountID string) (*Wallet, error)
	Purchase(ctx context.Context, accountID string, pkg Package) (*Wallet, *Transaction, error)

	// SpendTx debits credits inside the caller's transaction so that the
	// balance mutation, the ledger append and the caller's own writes
	// commit or roll back as one unit.
	SpendTx(ctx context.Context, tx *sqlx.Tx, accountID string, credits int, description string) (*Transaction, error)

	GetTransactions(ctx context.Context, accountID string, limit, offset int) ([]Transaction, error)
}
