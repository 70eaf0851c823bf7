package job

import (
	"context"

	"boatwork/internal/domain"
	"boatwork/internal/modules/events"
)

// RequestRepository exposes the lifecycle transitions this module drives.
// Each call re-validates the status precondition under a row lock.
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	Start(ctx context.Context, jobID int64) (*domain.ServiceRequest, error)
	Complete(ctx context.Context, jobID int64) (*domain.ServiceRequest, error)
	Cancel(ctx context.Context, jobID int64) (*domain.ServiceRequest, error)
}

type AssignedJobRepository interface {
	ListByProvider(ctx context.Context, providerID int64) ([]domain.AssignedJob, error)
	UpdateStatus(ctx context.Context, jobID int64, status domain.JobStatus) error
	DeleteByJob(ctx context.Context, jobID int64) error
}

type NotificationSender interface {
	NotifyJobStatusChanged(ctx context.Context, userID, jobID int64, status string) error
}

type EventPublisher interface {
	Publish(topic string, event *events.Event)
}
