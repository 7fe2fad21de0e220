package domain

import "time"

// Zone represents the zoning classification of a land parcel
type Zone string

const (
	ZoneCommercial  Zone = "Commercial"
	ZoneResidential Zone = "Residential"
	ZoneIndustrial  Zone = "Industrial"
	ZoneMixedUse    Zone = "Mixed Use"
)

// LandParcel is a tracked plot of land.
type LandParcel struct {
	ID             string     `json:"id"`
	ParcelName     string     `json:"land_parcel_name" validate:"required"`
	Location       string     `json:"location" validate:"required"`
	City           string     `json:"city" validate:"required"`
	GoogleLocation string     `json:"google_location,omitempty"`
	AreaInSqm      int64      `json:"area_in_sqm" validate:"required,gt=0"`
	Zone           Zone       `json:"zone" validate:"required,oneof=Commercial Residential Industrial 'Mixed Use'"`
	Title          string     `json:"title" validate:"required"`
	RoadWidth      string     `json:"road_width,omitempty"`
	Connectivity   string     `json:"connectivity,omitempty"`
	Advantages     string     `json:"advantages,omitempty"`
	Documents      Fields     `json:"documents,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
