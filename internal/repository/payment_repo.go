package repository

import (
	"context"

	"boatwork/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// UpsertByTxnID inserts the payment record keyed by the gateway transaction
// id. Webhook re-delivery hits the unique index and is dropped; the return
// value reports whether this call actually inserted the row.
func (r *PaymentRepository) UpsertByTxnID(ctx context.Context, p *domain.Payment) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "txn_id"}},
		DoNothing: true,
	}).Create(p)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PaymentRepository) GetByTxnID(ctx context.Context, txnID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("txn_id = ?", txnID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertPayoutByTxnID inserts the payout keyed by the same gateway
// transaction id as its payment, so it can be attempted on every delivery:
// a payout lost to a partial failure is recreated on redelivery, a payout
// already written is a no-op.
func (r *PaymentRepository) UpsertPayoutByTxnID(ctx context.Context, p *domain.Payout) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "txn_id"}},
		DoNothing: true,
	}).Create(p).Error
}

func (r *PaymentRepository) ListPayoutsByProvider(ctx context.Context, providerID int64) ([]domain.Payout, error) {
	var out []domain.Payout
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}
