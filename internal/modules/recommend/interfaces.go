package recommend

import (
	"context"

	"boatwork/internal/domain"
)

type BidRepository interface {
	ListByJob(ctx context.Context, jobID int64) ([]domain.Bid, error)
}

type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
