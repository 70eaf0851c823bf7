package domain

import (
	"fmt"
	"time"
)

// Review is one rating+comment per (job, owner) pair. ReviewKey is derived
// deterministically from the pair so the write is naturally idempotent: a
// concurrent resubmission hits the unique index instead of duplicating.
type Review struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	ReviewKey  string    `gorm:"uniqueIndex;not null" json:"review_key"`
	JobID      int64     `gorm:"index;not null" json:"job_id"`
	OwnerID    int64     `gorm:"not null" json:"owner_id"`
	ProviderID int64     `gorm:"index;not null" json:"provider_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Review) TableName() string { return "reviews" }

func ReviewKeyFor(jobID, ownerID int64) string {
	return fmt.Sprintf("%d_%d", jobID, ownerID)
}
