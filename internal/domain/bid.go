package domain

import "time"

// Bid is a provider's price offer against one service request. Bids are
// append-only: the only mutation is the accepted flag flipping once. A
// provider may submit more than one bid on the same request (revision via a
// new row); acceptance is exclusive per request.
type Bid struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	JobID      int64     `gorm:"index;not null" json:"job_id"`
	ProviderID int64     `gorm:"index;not null" json:"provider_id"`
	Price      int64     `gorm:"not null" json:"price"`
	Message    string    `gorm:"type:text" json:"message,omitempty"`
	Accepted   bool      `gorm:"default:false" json:"accepted"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Bid) TableName() string { return "bids" }
