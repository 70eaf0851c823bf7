package bid

import (
	"context"

	"boatwork/internal/domain"
	"boatwork/internal/modules/events"
)

type BidRepository interface {
	Create(ctx context.Context, b *domain.Bid) error
	ListByJob(ctx context.Context, jobID int64) ([]domain.Bid, error)
}

// RequestRepository covers the request reads plus the one multi-row
// transition this module drives: acceptance.
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	AcceptBid(ctx context.Context, jobID, bidID int64) (*domain.ServiceRequest, *domain.Bid, error)
}

// NotificationSender is the fire-and-forget port for new-bid and acceptance
// pushes. Failures are the dispatcher's problem, never the ledger's.
type NotificationSender interface {
	NotifyBidPlaced(ctx context.Context, ownerID, jobID, bidID, price int64) error
	NotifyBidAccepted(ctx context.Context, providerID, jobID int64) error
}

type EventPublisher interface {
	Publish(topic string, event *events.Event)
}
