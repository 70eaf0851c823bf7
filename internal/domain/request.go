package domain

import "time"

type DeadlineQualifier string

const (
	DeadlineOn     DeadlineQualifier = "on"
	DeadlineBefore DeadlineQualifier = "before"
)

type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
)

// ServiceRequest is one unit of requested work posted by a boat owner.
// Descriptive fields belong to the owner; lifecycle fields are mutated by the
// owner, the accepted provider and the payment settlement listener.
type ServiceRequest struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	OwnerID     int64  `gorm:"index;not null" json:"owner_id"`
	BoatID      int64  `gorm:"not null" json:"boat_id"`
	ServiceType string `gorm:"not null" json:"service_type"`
	Description string `gorm:"type:text" json:"description"`
	// Budget is in minor currency units, display-agnostic.
	Budget int64 `gorm:"not null" json:"budget"`

	DeadlineFlexible  bool              `json:"deadline_flexible"`
	DeadlineDate      *time.Time        `json:"deadline_date,omitempty"`
	DeadlineQualifier DeadlineQualifier `json:"deadline_qualifier,omitempty"`
	TimeOfDay         TimeOfDay         `json:"time_of_day,omitempty"`
	ImageURL          string            `json:"image_url,omitempty"`

	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	Geohash       string  `gorm:"index" json:"geohash"`
	LocationLabel string  `json:"location_label"`

	Status             JobStatus  `gorm:"index;default:open" json:"status"`
	AcceptedBidID      *int64     `json:"accepted_bid_id,omitempty"`
	AcceptedProviderID *int64     `gorm:"index" json:"accepted_provider_id,omitempty"`
	AcceptedPrice      *int64     `json:"accepted_price,omitempty"`
	AcceptedAt         *time.Time `json:"accepted_at,omitempty"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`

	Paid          bool       `json:"paid"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	PaymentTxnID  string     `json:"payment_txn_id,omitempty"`
	GrossAmount   int64      `json:"gross_amount,omitempty"`
	NetAmount     int64      `json:"net_amount,omitempty"`
	ReviewGiven   bool       `json:"review_given"`
	ReviewGivenAt *time.Time `json:"review_given_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ServiceRequest) TableName() string { return "service_requests" }

// AssignedTo reports whether providerID is the provider of record.
func (r *ServiceRequest) AssignedTo(providerID int64) bool {
	return r.AcceptedProviderID != nil && *r.AcceptedProviderID == providerID
}
