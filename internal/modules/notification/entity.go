package notification

import (
	"database/sql"
	"time"
)

// Notification type constants
const (
	TypeBidPlaced   = "bid.placed"
	TypeBidAccepted = "bid.accepted"
	TypeJobStarted  = "job.started"
	TypeJobDone     = "job.completed"
	TypeJobCancel   = "job.cancelled"
	TypeJobPaid     = "job.paid"
	TypeReviewed    = "job.reviewed"
)

// Notification represents a user notification record
type Notification struct {
	ID        int64        `gorm:"primaryKey" json:"id"`
	UserID    int64        `gorm:"index" json:"user_id"`
	Type      string       `gorm:"index" json:"type"`
	Title     string       `json:"title"`
	Body      string       `json:"body"`
	JobID     int64        `json:"job_id,omitempty"`
	ReadAt    sql.NullTime `json:"read_at"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// IsRead returns true if the notification has been read
func (n *Notification) IsRead() bool {
	return n.ReadAt.Valid
}
