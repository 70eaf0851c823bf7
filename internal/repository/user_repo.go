package repository

import (
	"context"

	"boatwork/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// IncrementProviderRating bumps the running aggregate by one review. O(1),
// no recomputation over the reviews table.
func (r *UserRepository) IncrementProviderRating(ctx context.Context, providerID int64, rating int) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", providerID).
		Updates(map[string]interface{}{
			"rating_sum":   gorm.Expr("rating_sum + ?", rating),
			"review_count": gorm.Expr("review_count + 1"),
		}).Error
}
