package application

import (
	"context"
	"database/sql"
	"errors"

	"workbridge/internal/account"
	"workbridge/internal/email"
	"workbridge/internal/job"
	"workbridge/internal/metrics"
	"workbridge/internal/unlock"
)

var ErrContactNotUnlocked = errors.New("contact not unlocked for this job")

type Service interface {
	Apply(ctx context.Context, jobID, contractorID string, req ApplyRequest) (*Application, error)
	ListByJob(ctx context.Context, clientID, jobID string) ([]Application, error)
	ListByContractor(ctx context.Context, contractorID string) ([]Application, error)
}

type service struct {
	repo         Repository
	jobRepo      job.Repository
	unlockRepo   unlock.Repository
	accountRepo  account.Repository
	emailService *email.Service
}

func NewService(
	repo Repository,
	jobRepo job.Repository,
	unlockRepo unlock.Repository,
	accountRepo account.Repository,
	emailService *email.Service,
) Service {
	return &service{
		repo:         repo,
		jobRepo:      jobRepo,
		unlockRepo:   unlockRepo,
		accountRepo:  accountRepo,
		emailService: emailService,
	}
}

func (s *service) Apply(ctx context.Context, jobID, contractorID string, req ApplyRequest) (*Application, error) {
	j, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound
		}
		return nil, err
	}

	// Applying requires a paid contact unlock first
	unlocked, err := s.unlockRepo.HasUnlocked(ctx, jobID, contractorID)
	if err != nil {
		return nil, err
	}
	if !unlocked {
		return nil, ErrContactNotUnlocked
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	app, err := s.repo.InsertTx(ctx, tx, jobID, contractorID, req.Message)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	metrics.RecordApplication()

	// Notify the poster, best effort
	client, cerr := s.accountRepo.FindByID(ctx, j.ClientID)
	contractor, kerr := s.accountRepo.FindByID(ctx, contractorID)
	if cerr == nil && kerr == nil {
		s.emailService.SendApplicationNotification(
			ctx,
			client.Email,
			client.Name,
			contractor.Name,
			j.Title,
			req.Message,
		)
	}

	return app, nil
}

func (s *service) ListByJob(ctx context.Context, clientID, jobID string) ([]Application, error) {
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

func (s *service) ListByContractor(ctx context.Context, contractorID string) ([]Application, error) {
	return s.repo.ListByContractor(ctx, contractorID)
}
