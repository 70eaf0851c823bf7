package review

import (
	"context"
	"time"

	"boatwork/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Review, error)
}

type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	MarkReviewed(ctx context.Context, jobID int64, at time.Time) (*domain.ServiceRequest, error)
}

type UserRepository interface {
	IncrementProviderRating(ctx context.Context, providerID int64, rating int) error
}

type AssignedJobRepository interface {
	UpdateStatus(ctx context.Context, jobID int64, status domain.JobStatus) error
}
