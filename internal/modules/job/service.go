package job

import (
	"context"
	"errors"
	"log"

	"boatwork/internal/domain"
	"boatwork/internal/modules/events"
	"boatwork/internal/repository"

	"gorm.io/gorm"
)

// Service owns the provider-facing lifecycle transitions. Every operation
// re-fetches the job, checks the caller against the provider of record from
// that fresh read, and commits through a status-preconditioned repository
// call, so two concurrent writers cannot both pass a guard.
//
// The projection mirror after start/complete is best-effort: the
// authoritative job row is the source of truth and a failed mirror write is
// logged for reconciliation, not rolled back. ListAssigned repairs drifted
// rows on read.
type Service struct {
	requests    RequestRepository
	assignments AssignedJobRepository
	notifs      NotificationSender
	pub         EventPublisher
}

func NewService(requests RequestRepository, assignments AssignedJobRepository, notifs NotificationSender, pub EventPublisher) *Service {
	return &Service{
		requests:    requests,
		assignments: assignments,
		notifs:      notifs,
		pub:         pub,
	}
}

// Start moves an assigned job to in_progress. Only the accepted provider
// may call it.
func (s *Service) Start(ctx context.Context, jobID, callerID int64) (*domain.ServiceRequest, error) {
	job, err := s.authorize(ctx, jobID, callerID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobAssigned {
		return nil, ErrInvalidTransition
	}

	job, err = s.requests.Start(ctx, jobID)
	if err != nil {
		return nil, mapTransitionErr(err)
	}

	s.mirrorStatus(ctx, job)
	s.announce(ctx, job)
	return job, nil
}

// Complete moves an in_progress job to completed; the job stays explicitly
// unpaid until the settlement listener runs.
func (s *Service) Complete(ctx context.Context, jobID, callerID int64) (*domain.ServiceRequest, error) {
	job, err := s.authorize(ctx, jobID, callerID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobInProgress {
		return nil, ErrInvalidTransition
	}

	job, err = s.requests.Complete(ctx, jobID)
	if err != nil {
		return nil, mapTransitionErr(err)
	}

	s.mirrorStatus(ctx, job)
	s.announce(ctx, job)
	return job, nil
}

// Cancel returns an assigned or in_progress job to open. The accept fields
// are cleared and the projection removed in the same transaction, so the
// job is immediately bid-able again. Completed jobs cannot be cancelled.
func (s *Service) Cancel(ctx context.Context, jobID, callerID int64) (*domain.ServiceRequest, error) {
	job, err := s.authorize(ctx, jobID, callerID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobAssigned && job.Status != domain.JobInProgress {
		return nil, ErrInvalidTransition
	}
	ownerID := job.OwnerID

	job, err = s.requests.Cancel(ctx, jobID)
	if err != nil {
		return nil, mapTransitionErr(err)
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyJobStatusChanged(ctx, ownerID, jobID, string(job.Status))
	}
	if s.pub != nil {
		s.pub.Publish(events.JobTopic(jobID), &events.Event{
			Type:    events.EventJobStatusChanged,
			Payload: map[string]any{"job_id": jobID, "status": job.Status},
		})
	}
	return job, nil
}

// ListAssigned returns the provider's projection rows, read-repairing any
// that drifted from the authoritative job: stale statuses are rewritten and
// rows whose job went back to open (or to another provider) are dropped.
func (s *Service) ListAssigned(ctx context.Context, providerID int64) ([]domain.AssignedJob, error) {
	rows, err := s.assignments.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.AssignedJob, 0, len(rows))
	for _, row := range rows {
		job, err := s.requests.GetByID(ctx, row.JobID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				_ = s.assignments.DeleteByJob(ctx, row.JobID)
				continue
			}
			return nil, err
		}

		if !job.Status.Assigned() || !job.AssignedTo(providerID) {
			// projection outlived the assignment
			if derr := s.assignments.DeleteByJob(ctx, row.JobID); derr != nil {
				log.Printf("level=warn msg=projection cleanup failed job_id=%d err=%v", row.JobID, derr)
			}
			continue
		}

		if row.Status != job.Status {
			if uerr := s.assignments.UpdateStatus(ctx, row.JobID, job.Status); uerr != nil {
				log.Printf("level=warn msg=projection repair failed job_id=%d err=%v", row.JobID, uerr)
			}
			row.Status = job.Status
		}
		out = append(out, row)
	}
	return out, nil
}

// authorize re-fetches the job and verifies the caller is the provider of
// record on the just-read document.
func (s *Service) authorize(ctx context.Context, jobID, callerID int64) (*domain.ServiceRequest, error) {
	job, err := s.requests.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !job.AssignedTo(callerID) {
		return nil, ErrUnauthorized
	}
	return job, nil
}

// mirrorStatus syncs the projection with the authoritative status. Failure
// is a consistency warning, not an error: the next ListAssigned repairs it.
func (s *Service) mirrorStatus(ctx context.Context, job *domain.ServiceRequest) {
	if err := s.assignments.UpdateStatus(ctx, job.ID, job.Status); err != nil {
		log.Printf("level=error msg=projection status sync failed job_id=%d status=%s err=%v", job.ID, job.Status, err)
	}
}

func (s *Service) announce(ctx context.Context, job *domain.ServiceRequest) {
	if s.notifs != nil {
		_ = s.notifs.NotifyJobStatusChanged(ctx, job.OwnerID, job.ID, string(job.Status))
	}
	if s.pub != nil {
		s.pub.Publish(events.JobTopic(job.ID), &events.Event{
			Type:    events.EventJobStatusChanged,
			Payload: map[string]any{"job_id": job.ID, "status": job.Status},
		})
		s.pub.Publish(events.UserTopic(job.OwnerID), &events.Event{
			Type:    events.EventJobStatusChanged,
			Payload: map[string]any{"job_id": job.ID, "status": job.Status},
		})
	}
}

func mapTransitionErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrStatusConflict):
		return ErrInvalidTransition
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}
