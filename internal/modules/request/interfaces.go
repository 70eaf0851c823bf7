package request

import (
	"context"

	"boatwork/internal/domain"
)

// RequestRepository is the slice of the persistence layer this module needs.
type RequestRepository interface {
	Create(ctx context.Context, req *domain.ServiceRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	ListOpen(ctx context.Context, limit, offset int) ([]domain.ServiceRequest, error)
	ListByStatus(ctx context.Context, status domain.JobStatus, limit, offset int) ([]domain.ServiceRequest, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.ServiceRequest, error)
}
