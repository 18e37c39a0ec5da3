package unlock

import (
	"context"
	"database/sql"
	"errors"

	"workbridge/internal/account"
	"workbridge/internal/credit"
	"workbridge/internal/job"
	"workbridge/internal/metrics"
)

var ErrContactLocked = errors.New("contact not unlocked")

type Service interface {
	// UnlockContact charges the unlock fee exactly once per (job, contractor)
	// pair. Repeat calls return the existing record without touching the
	// wallet. The charged flag tells the caller whether this call paid.
	UnlockContact(ctx context.Context, jobID, contractorID string) (rec *Record, balanceCredits int, charged bool, err error)
	HasUnlocked(ctx context.Context, jobID, contractorID string) (bool, error)
	GetContact(ctx context.Context, jobID, contractorID string) (*Contact, error)
	ListByJob(ctx context.Context, clientID, jobID string) ([]Record, error)
}

type service struct {
	repo        Repository
	jobRepo     job.Repository
	accountRepo account.Repository
	creditRepo  credit.Repository
}

func NewService(repo Repository, jobRepo job.Repository, accountRepo account.Repository, creditRepo credit.Repository) Service {
	return &service{
		repo:        repo,
		jobRepo:     jobRepo,
		accountRepo: accountRepo,
		creditRepo:  creditRepo,
	}
}

func (s *service) UnlockContact(ctx context.Context, jobID, contractorID string) (*Record, int, bool, error) {
	j, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, false, job.ErrJobNotFound
		}
		return nil, 0, false, err
	}

	// Idempotent: an existing record means this pair already paid
	existing, err := s.repo.Get(ctx, jobID, contractorID)
	if err == nil {
		w, werr := s.creditRepo.GetWallet(ctx, contractorID)
		if werr != nil {
			return nil, 0, false, werr
		}
		return existing, w.BalanceCredits, false, nil
	}
	if !errors.Is(err, ErrUnlockNotFound) {
		return nil, 0, false, err
	}

	contractor, err := s.accountRepo.FindByID(ctx, contractorID)
	if err != nil {
		return nil, 0, false, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	defer tx.Rollback()

	record, err := s.creditRepo.SpendTx(ctx, tx, contractorID, credit.UnlockCost, "Contact unlock: "+j.Title)
	if err != nil {
		if errors.Is(err, credit.ErrInsufficientCredits) {
			metrics.RecordInsufficientCredits(credit.ReasonContactUnlock)
		}
		return nil, 0, false, err
	}

	rec, err := s.repo.InsertTx(ctx, tx, Record{
		JobID:          jobID,
		ContractorID:   contractorID,
		ContractorName: contractor.Name,
		CountryCode:    ResolveCountryCode(contractor.Country),
	})
	if err != nil {
		return nil, 0, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, false, err
	}

	metrics.RecordContactUnlock()
	metrics.RecordCreditsSpent(credit.ReasonContactUnlock, credit.UnlockCost)

	return rec, record.BalanceAfter, true, nil
}

func (s *service) HasUnlocked(ctx context.Context, jobID, contractorID string) (bool, error) {
	return s.repo.HasUnlocked(ctx, jobID, contractorID)
}

func (s *service) GetContact(ctx context.Context, jobID, contractorID string) (*Contact, error) {
	unlocked, err := s.repo.HasUnlocked(ctx, jobID, contractorID)
	if err != nil {
		return nil, err
	}
	if !unlocked {
		return nil, ErrContactLocked
	}

	j, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound
		}
		return nil, err
	}

	poster, err := s.accountRepo.FindByID(ctx, j.ClientID)
	if err != nil {
		return nil, err
	}

	contact := &Contact{
		Name:  poster.Name,
		Email: poster.Email,
	}
	if poster.Phone != nil {
		contact.Phone = *poster.Phone
	}
	if poster.CompanyName != nil {
		contact.CompanyName = *poster.CompanyName
	}

	return contact, nil
}

func (s *service) ListByJob(ctx context.Context, clientID, jobID string) ([]Record, error) {
	j, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound
		}
		return nil, err
	}

	if j.ClientID != clientID {
		return nil, job.ErrNotJobOwner
	}

	return s.repo.ListByJob(ctx, jobID)
}
