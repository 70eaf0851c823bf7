package payment

import (
	"context"
	"time"

	"boatwork/internal/domain"
	"boatwork/internal/modules/events"
)

type PaymentRepository interface {
	UpsertByTxnID(ctx context.Context, p *domain.Payment) (bool, error)
	UpsertPayoutByTxnID(ctx context.Context, p *domain.Payout) error
	ListPayoutsByProvider(ctx context.Context, providerID int64) ([]domain.Payout, error)
}

type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	MarkPaid(ctx context.Context, jobID int64, txnID string, gross, net int64, paidAt time.Time) (bool, error)
}

type AssignedJobRepository interface {
	UpdateStatus(ctx context.Context, jobID int64, status domain.JobStatus) error
}

type EventPublisher interface {
	Publish(topic string, event *events.Event)
}
