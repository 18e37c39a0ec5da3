package job

import (
	"context"
	"database/sql"
	"errors"

	"workbridge/internal/credit"
	"workbridge/internal/metrics"
)

var ErrNotJobOwner = errors.New("job belongs to another client")

type Service interface {
	PostJob(ctx context.Context, clientID string, req PostJobRequest) (*Job, *credit.Transaction, error)
	GetJob(ctx context.Context, jobID string, recordView bool) (*Job, error)
	ListActive(ctx context.Context, category string, limit, offset int) ([]Job, error)
	ListByClient(ctx context.Context, clientID string) ([]Job, error)
	CloseJob(ctx context.Context, clientID, jobID string) error
	CompleteJob(ctx context.Context, clientID, jobID string) error
	DeleteJob(ctx context.Context, clientID, jobID string) error
}

type service struct {
	repo       Repository
	creditRepo credit.Repository
}

func NewService(repo Repository, creditRepo credit.Repository) Service {
	return &service{
		repo:       repo,
		creditRepo: creditRepo,
	}
}

// PostJob debits the posting fee and inserts the job as one db transaction.
// A rejected debit leaves the jobs table untouched.
func (s *service) PostJob(ctx context.Context, clientID string, req PostJobRequest) (*Job, *credit.Transaction, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	record, err := s.creditRepo.SpendTx(ctx, tx, clientID, credit.JobPostCost, "Job posting: "+req.Title)
	if err != nil {
		if errors.Is(err, credit.ErrInsufficientCredits) {
			metrics.RecordInsufficientCredits(credit.ReasonJobPost)
		}
		return nil, nil, err
	}

	job, err := s.repo.CreateTx(ctx, tx, clientID, req)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	metrics.RecordJobPosted()
	metrics.RecordCreditsSpent(credit.ReasonJobPost, credit.JobPostCost)

	return job, record, nil
}

func (s *service) GetJob(ctx context.Context, jobID string, recordView bool) (*Job, error) {
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	if recordView {
		if err := s.repo.IncrementViews(ctx, jobID); err == nil {
			job.Views++
		}
	}

	return job, nil
}

func (s *service) ListActive(ctx context.Context, category string, limit, offset int) ([]Job, error) {
	return s.repo.ListActive(ctx, category, limit, offset)
}

func (s *service) ListByClient(ctx context.Context, clientID string) ([]Job, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *service) CloseJob(ctx context.Context, clientID, jobID string) error {
	return s.setStatus(ctx, clientID, jobID, StatusClosed)
}

func (s *service) CompleteJob(ctx context.Context, clientID, jobID string) error {
	return s.setStatus(ctx, clientID, jobID, StatusCompleted)
}

func (s *service) setStatus(ctx context.Context, clientID, jobID, status string) error {
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrJobNotFound
		}
		return err
	}

	if job.ClientID != clientID {
		return ErrNotJobOwner
	}

	return s.repo.UpdateStatus(ctx, jobID, status)
}

// DeleteJob removes the posting. The posting fee is not refunded.
func (s *service) DeleteJob(ctx context.Context, clientID, jobID string) error {
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrJobNotFound
		}
		return err
	}

	if job.ClientID != clientID {
		return ErrNotJobOwner
	}

	return s.repo.Delete(ctx, jobID)
}
