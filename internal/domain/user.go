package domain

import "time"

type Role string

const (
	RoleOwner    Role = "owner"
	RoleProvider Role = "provider"
)

type User struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Role         Role   `gorm:"not null" json:"role"`

	// Provider rating aggregate, incremented once per new review so reads
	// never scan the reviews table.
	RatingSum   int64 `json:"rating_sum"`
	ReviewCount int64 `json:"review_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// AverageRating returns 0 for providers with no reviews yet.
func (u *User) AverageRating() float64 {
	if u.ReviewCount == 0 {
		return 0
	}
	return float64(u.RatingSum) / float64(u.ReviewCount)
}
