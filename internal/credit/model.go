package credit

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fixed credit prices for the two paid actions.
const (
	JobPostCost = 30
	UnlockCost  = 10
)

// StatusCompleted is the only transaction status the ledger writes today;
// purchases settle instantly because billing runs off-platform.
const StatusCompleted = "completed"

// Spend reasons recorded on transactions and metrics.
const (
	ReasonJobPost       = "job_post"
	ReasonContactUnlock = "contact_unlock"
)

// Wallet — кредитный баланс аккаунта.
type Wallet struct {
	ID             int       `db:"id" json:"id"`
	AccountID      string    `db:"account_id" json:"account_id"`
	BalanceCredits int       `db:"balance_credits" json:"balance_credits"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Transaction is an append-only ledger record. Amount keeps the storefront
// sign convention: positive amounts are purchase prices in EUR, negative
// amounts are credits spent.
type Transaction struct {
	ID           string          `db:"id" json:"id"`
	AccountID    string          `db:"account_id" json:"account_id"`
	Description  string          `db:"description" json:"description"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	CreditsDelta int             `db:"credits_delta" json:"credits_delta"`
	BalanceAfter int             `db:"balance_after" json:"balance_after"`
	Status       string          `db:"status" json:"status"`
	InvoiceURL   *string         `db:"invoice_url" json:"invoice_url,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// Package is a static catalog entry, not persisted.
type Package struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Credits        int             `json:"credits"`
	Price          decimal.Decimal `json:"price"`
	PricePerCredit decimal.Decimal `json:"price_per_credit"`
	Popular        bool            `json:"popular"`
	Economy        bool            `json:"economy,omitempty"`
}

func newPackage(id, name string, credits int, price string, popular, economy bool) Package {
	p := decimal.RequireFromString(price)
	return Package{
		ID:             id,
		Name:           name,
		Credits:        credits,
		Price:          p,
		PricePerCredit: p.Div(decimal.NewFromInt(int64(credits))).Round(2),
		Popular:        popular,
		Economy:        economy,
	}
}

var Packages = []Package{
	newPackage("starter", "Starter", 10, "10.00", false, false),
	newPackage("standard", "Standard", 30, "27.00", false, false),
	newPackage("pro", "Pro", 100, "80.00", true, false),
	newPackage("business", "Business", 250, "175.00", false, true),
}

func PackageByID(id string) (Package, error) {
	for _, p := range Packages {
		if p.ID == id {
			return p, nil
		}
	}
	return Package{}, ErrPackageNotFound
}

type PurchaseRequest struct {
	PackageID string `json:"package_id" binding:"required"`
}

type PurchaseResponse struct {
	Wallet      *Wallet      `json:"wallet"`
	Transaction *Transaction `json:"transaction"`
}
