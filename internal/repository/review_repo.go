package repository

import (
	"context"

	"boatwork/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts the review. The unique index on review_key surfaces a
// duplicate-key error for concurrent resubmissions of the same (job, owner).
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByKey(ctx context.Context, key string) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).Where("review_key = ?", key).First(&rv).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}
