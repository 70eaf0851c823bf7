package repository

import (
	"context"

	"boatwork/internal/domain"

	"gorm.io/gorm"
)

type BidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

func (r *BidRepository) Create(ctx context.Context, b *domain.Bid) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BidRepository) GetByID(ctx context.Context, id int64) (*domain.Bid, error) {
	var b domain.Bid
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByJob returns all bids for a job, newest first. No pagination at this
// layer; callers bound the result.
func (r *BidRepository) ListByJob(ctx context.Context, jobID int64) ([]domain.Bid, error) {
	var out []domain.Bid
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

func (r *BidRepository) HasAcceptedBid(ctx context.Context, jobID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Bid{}).
		Where("job_id = ? AND accepted = ?", jobID, true).
		Count(&cnt).Error
	return cnt > 0, err
}
