package account

import "context"

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateClientProfile(ctx context.Context, id string, upd ClientProfileUpdate) (*Account, error)
	UpdateContractorProfile(ctx context.Context, id string, upd ContractorProfileUpdate) (*Account, error)
}
