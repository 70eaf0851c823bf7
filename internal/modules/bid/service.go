package bid

import (
	"context"
	"errors"

	"boatwork/internal/domain"
	"boatwork/internal/modules/events"
	"boatwork/internal/repository"

	"gorm.io/gorm"
)

// Service is the bid ledger: it appends price offers against a request and
// runs the exclusive acceptance protocol on top of them.
type Service struct {
	bids     BidRepository
	requests RequestRepository
	notifs   NotificationSender
	pub      EventPublisher
}

func NewService(bids BidRepository, requests RequestRepository, notifs NotificationSender, pub EventPublisher) *Service {
	return &Service{
		bids:     bids,
		requests: requests,
		notifs:   notifs,
		pub:      pub,
	}
}

// SubmitBid appends an offer. By design there is no open-status check here:
// staleness is resolved at acceptance time, where the guard is enforced
// under lock. Duplicate bids from the same provider are allowed (a new row
// works as a revision).
func (s *Service) SubmitBid(ctx context.Context, jobID, providerID, price int64, message string) (*domain.Bid, error) {
	if jobID <= 0 || providerID <= 0 || price <= 0 {
		return nil, ErrInvalidInput
	}

	job, err := s.requests.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b := &domain.Bid{
		JobID:      jobID,
		ProviderID: providerID,
		Price:      price,
		Message:    message,
	}
	if err := s.bids.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBidPlaced(ctx, job.OwnerID, jobID, b.ID, price)
	}
	if s.pub != nil {
		s.pub.Publish(events.JobTopic(jobID), &events.Event{
			Type:    events.EventBidCreated,
			Payload: b,
		})
		s.pub.Publish(events.UserTopic(job.OwnerID), &events.Event{
			Type:    events.EventBidCreated,
			Payload: b,
		})
	}
	return b, nil
}

// ListBids returns all offers for a job, newest first.
func (s *Service) ListBids(ctx context.Context, jobID int64) ([]domain.Bid, error) {
	if jobID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.bids.ListByJob(ctx, jobID)
}

// AcceptBid assigns the job to the bidding provider. The owner check happens
// against a fresh read, and the open/no-accepted-bid guard is re-validated
// inside the repository transaction, so a concurrent second acceptance fails
// with ErrAlreadyAssigned instead of overwriting the first.
func (s *Service) AcceptBid(ctx context.Context, jobID, bidID, callerID int64) (*domain.ServiceRequest, error) {
	if jobID <= 0 || bidID <= 0 {
		return nil, ErrInvalidInput
	}

	job, err := s.requests.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if job.OwnerID != callerID {
		return nil, ErrUnauthorized
	}
	if job.Status != domain.JobOpen {
		return nil, ErrAlreadyAssigned
	}

	job, winning, err := s.requests.AcceptBid(ctx, jobID, bidID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrJobNotOpen):
			return nil, ErrAlreadyAssigned
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBidAccepted(ctx, winning.ProviderID, jobID)
	}
	if s.pub != nil {
		s.pub.Publish(events.JobTopic(jobID), &events.Event{
			Type:    events.EventBidAccepted,
			Payload: map[string]any{"job_id": jobID, "bid_id": winning.ID, "status": job.Status},
		})
		s.pub.Publish(events.UserTopic(winning.ProviderID), &events.Event{
			Type:    events.EventBidAccepted,
			Payload: map[string]any{"job_id": jobID, "bid_id": winning.ID, "status": job.Status},
		})
	}
	return job, nil
}
