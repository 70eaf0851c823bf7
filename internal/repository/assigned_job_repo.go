package repository

import (
	"context"

	"boatwork/internal/domain"

	"gorm.io/gorm"
)

type AssignedJobRepository struct {
	db *gorm.DB
}

func NewAssignedJobRepository(db *gorm.DB) *AssignedJobRepository {
	return &AssignedJobRepository{db: db}
}

func (r *AssignedJobRepository) ListByProvider(ctx context.Context, providerID int64) ([]domain.AssignedJob, error) {
	var out []domain.AssignedJob
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("assigned_at desc").
		Find(&out).Error
	return out, err
}

func (r *AssignedJobRepository) GetByJob(ctx context.Context, jobID int64) (*domain.AssignedJob, error) {
	var a domain.AssignedJob
	if err := r.db.WithContext(ctx).Where("job_id = ?", jobID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignedJobRepository) UpdateStatus(ctx context.Context, jobID int64, status domain.JobStatus) error {
	return r.db.WithContext(ctx).Model(&domain.AssignedJob{}).
		Where("job_id = ?", jobID).
		Update("status", status).Error
}

func (r *AssignedJobRepository) DeleteByJob(ctx context.Context, jobID int64) error {
	return r.db.WithContext(ctx).Where("job_id = ?", jobID).Delete(&domain.AssignedJob{}).Error
}
