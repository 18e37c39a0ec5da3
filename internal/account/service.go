package account

import (
	"context"
	"database/sql"
	"errors"

	"workbridge/internal/auth"
	"workbridge/internal/email"
	"workbridge/internal/metrics"

	"github.com/google/uuid"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleMismatch       = errors.New("operation not allowed for this account role")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Account, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*Account, string, string, error)
	GetByID(ctx context.Context, accountID string) (*Account, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *Account, error)
	UpdateClientProfile(ctx context.Context, accountID string, upd ClientProfileUpdate) (*Account, error)
	UpdateContractorProfile(ctx context.Context, accountID string, upd ContractorProfileUpdate) (*Account, error)
}

type service struct {
	repo         Repository
	emailService *email.Service
	jwtSecret    string
}

func NewService(repo Repository, emailService *email.Service, jwtSecret string) Service {
	return &service{
		repo:         repo,
		emailService: emailService,
		jwtSecret:    jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Account, string, string, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	params := CreateParams{
		ID:           uuid.NewString(),
		Role:         req.Role,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Skills:       req.Skills,
	}
	if req.Role == RoleClient && req.CompanyName != "" {
		params.CompanyName = &req.CompanyName
	}
	if req.Country != "" {
		params.Country = &req.Country
	}
	if req.City != "" {
		params.City = &req.City
	}
	if req.Phone != "" {
		params.Phone = &req.Phone
	}

	account, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		account.ID,
		account.Email,
		account.Role,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	metrics.RecordSignup(account.Role)

	// Welcome email is best effort
	s.emailService.SendWelcome(ctx, account.Email, account.Name, account.Role)

	return account, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Account, string, string, error) {
	account, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		account.ID,
		account.Email,
		account.Role,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	return account, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, accountID string) (*Account, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *Account, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	account, err := s.repo.FindByID(ctx, claims.AccountID)
	if err != nil {
		return "", nil, ErrAccountNotFound
	}

	newAccessToken, err := auth.GenerateAccessToken(account.ID, account.Email, account.Role, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, account, nil
}

func (s *service) UpdateClientProfile(ctx context.Context, accountID string, upd ClientProfileUpdate) (*Account, error) {
	account, err := s.repo.UpdateClientProfile(ctx, accountID, upd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoleMismatch
		}
		return nil, err
	}
	return account, nil
}

func (s *service) UpdateContractorProfile(ctx context.Context, accountID string, upd ContractorProfileUpdate) (*Account, error) {
	account, err := s.repo.UpdateContractorProfile(ctx, accountID, upd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoleMismatch
		}
		return nil, err
	}
	return account, nil
}
