package repository

import (
	"context"
	"testing"

	"boatwork/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        "file::memory:",
		}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.ServiceRequest{},
		&domain.Bid{},
		&domain.AssignedJob{},
	))
	return db
}

func seedOpenJobWithBids(t *testing.T, db *gorm.DB) (*domain.ServiceRequest, *domain.Bid, *domain.Bid) {
	t.Helper()

	job := &domain.ServiceRequest{
		OwnerID:          10,
		BoatID:           1,
		ServiceType:      "hull_cleaning",
		Budget:           500000,
		DeadlineFlexible: true,
		Status:           domain.JobOpen,
	}
	require.NoError(t, db.Create(job).Error)

	b1 := &domain.Bid{JobID: job.ID, ProviderID: 20, Price: 400000}
	b2 := &domain.Bid{JobID: job.ID, ProviderID: 21, Price: 450000}
	require.NoError(t, db.Create(b1).Error)
	require.NoError(t, db.Create(b2).Error)

	return job, b1, b2
}

func TestRequestRepository_AcceptBid_Exclusive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	job, b1, b2 := seedOpenJobWithBids(t, db)

	accepted, winning, err := repo.AcceptBid(ctx, job.ID, b1.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.JobAssigned, accepted.Status)
	assert.Equal(t, b1.ID, winning.ID)
	assert.True(t, winning.Accepted)

	_, _, err = repo.AcceptBid(ctx, job.ID, b2.ID)
	assert.ErrorIs(t, err, ErrJobNotOpen)
}

func TestRequestRepository_Cancel_JobIsAcceptableAgain(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	job, b1, b2 := seedOpenJobWithBids(t, db)

	_, _, err := repo.AcceptBid(ctx, job.ID, b1.ID)
	require.NoError(t, err)

	reopened, err := repo.Cancel(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobOpen, reopened.Status)
	assert.Nil(t, reopened.AcceptedProviderID)

	// the losing acceptance state is fully released: the old winning bid is
	// back to unaccepted and the projection row is gone
	var released domain.Bid
	require.NoError(t, db.First(&released, b1.ID).Error)
	assert.False(t, released.Accepted)

	var projections int64
	require.NoError(t, db.Model(&domain.AssignedJob{}).Where("job_id = ?", job.ID).Count(&projections).Error)
	assert.Zero(t, projections)

	// a different provider's bid can now win
	accepted, winning, err := repo.AcceptBid(ctx, job.ID, b2.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.JobAssigned, accepted.Status)
	assert.Equal(t, b2.ID, winning.ID)
	assert.Equal(t, b2.ProviderID, *accepted.AcceptedProviderID)
}
