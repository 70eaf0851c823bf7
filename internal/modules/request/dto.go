package request

import "time"

type CreateRequestDTO struct {
	BoatID      int64  `json:"boat_id" validate:"required,gt=0"`
	ServiceType string `json:"service_type" validate:"required"`
	Description string `json:"description"`
	// Budget in minor currency units.
	Budget int64 `json:"budget" validate:"required,gt=0"`

	DeadlineFlexible  bool       `json:"deadline_flexible"`
	DeadlineDate      *time.Time `json:"deadline_date,omitempty"`
	DeadlineQualifier string     `json:"deadline_qualifier,omitempty" validate:"omitempty,oneof=on before"`
	TimeOfDay         string     `json:"time_of_day,omitempty" validate:"omitempty,oneof=morning afternoon evening"`
	ImageURL          string     `json:"image_url,omitempty" validate:"omitempty,url"`

	Lat           float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng           float64 `json:"lng" validate:"gte=-180,lte=180"`
	Geohash       string  `json:"geohash"`
	LocationLabel string  `json:"location_label"`
}
