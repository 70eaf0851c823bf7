package repository

import (
	"context"
	"time"

	"boatwork/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.ServiceRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	var req domain.ServiceRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) ListOpen(ctx context.Context, limit, offset int) ([]domain.ServiceRequest, error) {
	var out []domain.ServiceRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.JobOpen).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *RequestRepository) ListByStatus(ctx context.Context, status domain.JobStatus, limit, offset int) ([]domain.ServiceRequest, error) {
	var out []domain.ServiceRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *RequestRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.ServiceRequest, error) {
	var out []domain.ServiceRequest
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// AcceptBid performs the open -> assigned transition as one locked
// transaction: the open guard and the no-accepted-bid guard are re-checked
// against the locked rows, the winning bid is flipped, the accept fields are
// stamped and the provider projection is created. A second acceptance attempt
// fails with ErrJobNotOpen instead of overwriting.
func (r *RequestRepository) AcceptBid(ctx context.Context, jobID, bidID int64) (*domain.ServiceRequest, *domain.Bid, error) {
	var job domain.ServiceRequest
	var bid domain.Bid

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&job, jobID).Error; err != nil {
			return err
		}
		if job.Status != domain.JobOpen {
			return ErrJobNotOpen
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND job_id = ?", bidID, jobID).First(&bid).Error; err != nil {
			return err
		}

		var accepted int64
		if err := tx.Model(&domain.Bid{}).
			Where("job_id = ? AND accepted = ?", jobID, true).
			Count(&accepted).Error; err != nil {
			return err
		}
		if accepted > 0 {
			return ErrJobNotOpen
		}

		now := time.Now().UTC()
		if err := tx.Model(&domain.Bid{}).Where("id = ?", bid.ID).
			Update("accepted", true).Error; err != nil {
			return err
		}
		bid.Accepted = true

		updates := map[string]interface{}{
			"status":               domain.JobAssigned,
			"accepted_bid_id":      bid.ID,
			"accepted_provider_id": bid.ProviderID,
			"accepted_price":       bid.Price,
			"accepted_at":          now,
			"updated_at":           now,
		}
		if err := tx.Model(&domain.ServiceRequest{}).Where("id = ?", jobID).
			Updates(updates).Error; err != nil {
			return err
		}

		proj := domain.AssignedJob{
			ProviderID: bid.ProviderID,
			JobID:      jobID,
			BidID:      bid.ID,
			Price:      bid.Price,
			Status:     domain.JobAssigned,
			AssignedAt: now,
		}
		if err := tx.Create(&proj).Error; err != nil {
			return err
		}

		job.Status = domain.JobAssigned
		job.AcceptedBidID = &bid.ID
		job.AcceptedProviderID = &bid.ProviderID
		job.AcceptedPrice = &bid.Price
		job.AcceptedAt = &now
		job.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &job, &bid, nil
}

// Start moves assigned -> in_progress under lock. startedAt is idempotent:
// a prior value is kept.
func (r *RequestRepository) Start(ctx context.Context, jobID int64) (*domain.ServiceRequest, error) {
	return r.transition(ctx, jobID, domain.JobInProgress, func(job *domain.ServiceRequest, updates map[string]interface{}, now time.Time) {
		if job.StartedAt == nil {
			updates["started_at"] = now
		}
	})
}

// Complete moves in_progress -> completed under lock and records that the
// job is explicitly unpaid until settlement.
func (r *RequestRepository) Complete(ctx context.Context, jobID int64) (*domain.ServiceRequest, error) {
	return r.transition(ctx, jobID, domain.JobCompleted, func(job *domain.ServiceRequest, updates map[string]interface{}, now time.Time) {
		updates["completed_at"] = now
		updates["paid"] = false
	})
}

// Cancel returns an assigned or in_progress job to open, clearing the accept
// fields and removing the provider projection in the same transaction so the
// job is immediately bid-able again.
func (r *RequestRepository) Cancel(ctx context.Context, jobID int64) (*domain.ServiceRequest, error) {
	return r.transition(ctx, jobID, domain.JobOpen, func(job *domain.ServiceRequest, updates map[string]interface{}, now time.Time) {
		updates["accepted_bid_id"] = nil
		updates["accepted_provider_id"] = nil
		updates["accepted_price"] = nil
		updates["accepted_at"] = nil
		updates["started_at"] = nil
	})
}

// MarkPaid drives completed -> paid from the settlement listener. Re-delivery
// is harmless: a job already at paid (or further) reports changed=false.
func (r *RequestRepository) MarkPaid(ctx context.Context, jobID int64, txnID string, gross, net int64, paidAt time.Time) (bool, error) {
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job domain.ServiceRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&job, jobID).Error; err != nil {
			return err
		}
		if job.Status == domain.JobPaid || job.Status == domain.JobReviewed {
			return nil
		}
		if !job.Status.CanTransitionTo(domain.JobPaid) {
			return ErrStatusConflict
		}

		updates := map[string]interface{}{
			"status":         domain.JobPaid,
			"paid":           true,
			"paid_at":        paidAt,
			"payment_txn_id": txnID,
			"gross_amount":   gross,
			"net_amount":     net,
			"updated_at":     time.Now().UTC(),
		}
		if err := tx.Model(&domain.ServiceRequest{}).Where("id = ?", jobID).
			Updates(updates).Error; err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

// MarkReviewed drives paid -> reviewed from the review gate.
func (r *RequestRepository) MarkReviewed(ctx context.Context, jobID int64, at time.Time) (*domain.ServiceRequest, error) {
	return r.transition(ctx, jobID, domain.JobReviewed, func(job *domain.ServiceRequest, updates map[string]interface{}, now time.Time) {
		updates["review_given"] = true
		updates["review_given_at"] = at
	})
}

// transition re-fetches the job under a row lock, re-validates the lifecycle
// table against the just-read status and applies the update, so a concurrent
// writer cannot slip between guard and commit.
func (r *RequestRepository) transition(ctx context.Context, jobID int64, to domain.JobStatus, mutate func(job *domain.ServiceRequest, updates map[string]interface{}, now time.Time)) (*domain.ServiceRequest, error) {
	var job domain.ServiceRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&job, jobID).Error; err != nil {
			return err
		}
		if !job.Status.CanTransitionTo(to) {
			return ErrStatusConflict
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":     to,
			"updated_at": now,
		}
		if mutate != nil {
			mutate(&job, updates, now)
		}
		if err := tx.Model(&domain.ServiceRequest{}).Where("id = ?", jobID).
			Updates(updates).Error; err != nil {
			return err
		}

		if to == domain.JobOpen {
			// release the winning bid so a fresh acceptance can pass the
			// accepted-bid guard
			if err := tx.Model(&domain.Bid{}).
				Where("job_id = ? AND accepted = ?", jobID, true).
				Update("accepted", false).Error; err != nil {
				return err
			}
			if err := tx.Where("job_id = ?", jobID).
				Delete(&domain.AssignedJob{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, jobID)
}
