package recommend

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"
)

type Service struct {
	bids     BidRepository
	requests RequestRepository
	users    UserRepository
}

func NewService(bids BidRepository, requests RequestRepository, users UserRepository) *Service {
	return &Service{bids: bids, requests: requests, users: users}
}

// Recommend ranks the open bids on a job for its owner. Providers whose
// profile cannot be loaded are scored as unrated rather than failing the
// whole request.
func (s *Service) Recommend(ctx context.Context, jobID, callerID int64) (*Recommendation, error) {
	if jobID <= 0 {
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

	bids, err := s.bids.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if len(bids) == 0 {
		return nil, ErrNoBids
	}

	candidates := make([]Candidate, 0, len(bids))
	for _, b := range bids {
		c := Candidate{
			BidID:      b.ID,
			ProviderID: b.ProviderID,
			Price:      b.Price,
			CreatedAt:  b.CreatedAt,
		}
		if provider, uerr := s.users.GetByID(ctx, b.ProviderID); uerr == nil {
			c.Rating = provider.AverageRating()
			c.ReviewCount = provider.ReviewCount
		} else if !errors.Is(uerr, gorm.ErrRecordNotFound) {
			log.Printf("level=error msg=provider lookup failed provider_id=%d err=%v", b.ProviderID, uerr)
		}
		candidates = append(candidates, c)
	}

	rec := Best(candidates)
	if rec == nil {
		return nil, ErrNoBids
	}
	return rec, nil
}
