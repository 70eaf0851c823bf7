package domain

import "time"

// AssignedJob is the provider-scoped projection of an accepted job. It is a
// read-optimized cache of the authoritative ServiceRequest, not a second
// source of truth: it exists iff the request has this provider of record and
// status past open, and is removed when a cancellation returns the job to
// open. Status is mirrored on every lifecycle transition and repaired from
// the authoritative row on read if it drifted.
type AssignedJob struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	ProviderID int64     `gorm:"index;not null" json:"provider_id"`
	JobID      int64     `gorm:"uniqueIndex;not null" json:"job_id"`
	BidID      int64     `gorm:"not null" json:"bid_id"`
	Price      int64     `gorm:"not null" json:"price"`
	Status     JobStatus `gorm:"not null" json:"status"`
	AssignedAt time.Time `json:"assigned_at"`
}

func (AssignedJob) TableName() string { return "assigned_jobs" }
