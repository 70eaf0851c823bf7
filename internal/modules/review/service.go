package review

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"boatwork/internal/domain"
	"boatwork/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Service is the review gate: at most one review per (job, owner), only
// after the job has been paid, against the provider of record. The review
// row is written at a deterministic key, so a concurrent resubmission hits
// the unique index instead of duplicating, and the provider's rating
// aggregate is bumped exactly once per new review.
type Service struct {
	reviews     ReviewRepository
	requests    RequestRepository
	users       UserRepository
	assignments AssignedJobRepository
}

func NewService(reviews ReviewRepository, requests RequestRepository, users UserRepository, assignments AssignedJobRepository) *Service {
	return &Service{
		reviews:     reviews,
		requests:    requests,
		users:       users,
		assignments: assignments,
	}
}

func (s *Service) SubmitReview(ctx context.Context, jobID, providerID, ownerID int64, rating int, comment string) (*domain.Review, error) {
	if jobID <= 0 || providerID <= 0 || ownerID <= 0 {
		return nil, ErrInvalidInput
	}

	job, err := s.requests.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if job.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}
	if !job.AssignedTo(providerID) {
		return nil, ErrNotReady
	}
	if job.ReviewGiven || job.Status == domain.JobReviewed {
		return nil, ErrAlreadyReviewed
	}
	if job.Status != domain.JobCompleted && job.Status != domain.JobPaid {
		return nil, ErrNotReady
	}
	// review unlocks once settlement has landed
	if !job.Paid {
		return nil, ErrNotReady
	}

	// ratings are clamped, not rejected
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}

	rv := &domain.Review{
		ReviewKey:  domain.ReviewKeyFor(jobID, ownerID),
		JobID:      jobID,
		OwnerID:    ownerID,
		ProviderID: providerID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			// lost a race against our own resubmission
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	// first insert only: the aggregate moves exactly once per review
	if err := s.users.IncrementProviderRating(ctx, providerID, rating); err != nil {
		return nil, err
	}

	job, err = s.requests.MarkReviewed(ctx, jobID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrNotReady
		}
		return nil, err
	}

	if merr := s.assignments.UpdateStatus(ctx, jobID, job.Status); merr != nil {
		log.Printf("level=error msg=projection status sync failed job_id=%d status=%s err=%v", jobID, job.Status, merr)
	}

	return rv, nil
}

func (s *Service) ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Review, error) {
	if providerID <= 0 {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.reviews.ListByProvider(ctx, providerID, limit, offset)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "23505")
}
