package domain

import "time"

type PaymentStatus string

const (
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment records one payment-gateway transaction. TxnID is the gateway's
// transaction id, so webhook re-delivery dedupes on the unique index.
// Written exclusively by the settlement listener, append-only.
type Payment struct {
	ID          int64         `gorm:"primaryKey" json:"id"`
	TxnID       string        `gorm:"uniqueIndex;not null" json:"txn_id"`
	JobID       int64         `gorm:"index;not null" json:"job_id"`
	ProviderID  int64         `gorm:"index" json:"provider_id"`
	OwnerID     int64         `json:"owner_id"`
	GrossAmount int64         `json:"gross_amount"`
	NetAmount   int64         `json:"net_amount"`
	Currency    string        `json:"currency"`
	Status      PaymentStatus `gorm:"not null" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (Payment) TableName() string { return "payments" }

// Payout is the provider's net earnings for one job after the platform fee.
// At most one payout per gateway transaction; the unique index makes the
// settlement write safely retryable.
type Payout struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	ProviderID int64     `gorm:"index;not null" json:"provider_id"`
	JobID      int64     `gorm:"not null" json:"job_id"`
	TxnID      string    `gorm:"uniqueIndex" json:"txn_id"`
	Amount     int64     `gorm:"not null" json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Payout) TableName() string { return "payouts" }
