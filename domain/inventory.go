package domain

import "time"

// InventoryStatus represents the occupancy status of an inventory item
type InventoryStatus string

const (
	InventoryAvailable        InventoryStatus = "Available"
	InventoryOccupied         InventoryStatus = "Occupied"
	InventoryUnderMaintenance InventoryStatus = "Under Maintenance"
)

// InventoryItem is a rentable unit inside a project.
type InventoryItem struct {
	ID                 string          `json:"id"`
	Type               ProjectType     `json:"type" validate:"required,oneof=corporate_building coworking_space warehouse retail_mall"`
	Name               string          `json:"name" validate:"required"`
	Grade              Grade           `json:"grade" validate:"required,oneof=A B C"`
	DeveloperOwnerName string          `json:"developer_owner_name" validate:"required"`
	ContactNo          string          `json:"contact_no" validate:"required"`
	AlternateContactNo string          `json:"alternate_contact_no,omitempty"`
	EmailID            string          `json:"email_id" validate:"required,email"`
	City               string          `json:"city" validate:"required"`
	Location           string          `json:"location" validate:"required"`
	GoogleLocation     string          `json:"google_location,omitempty"`

	SaleableArea      string `json:"saleable_area,omitempty"`
	CarpetArea        string `json:"carpet_area,omitempty"`
	NoOfSaleableSeats int    `json:"no_of_saleable_seats,omitempty"`
	Floor             string `json:"floor" validate:"required"`
	Height            string `json:"height,omitempty"`

	// Warehouse
	TypeOfFlooring string `json:"type_of_flooring,omitempty"`
	FlooringSize   string `json:"flooring_size,omitempty"`
	SideHeight     string `json:"side_height,omitempty"`
	CentreHeight   string `json:"centre_height,omitempty"`
	Canopy         string `json:"canopy,omitempty"`
	FireSprinklers string `json:"fire_sprinklers,omitempty"`

	// Retail / mall
	Frontage string `json:"frontage,omitempty"`

	Terrace         string          `json:"terrace,omitempty"`
	Specification   string          `json:"specification" validate:"required"`
	Status          InventoryStatus `json:"status,omitempty" validate:"omitempty,oneof=Available Occupied 'Under Maintenance'"`
	RentPerSqft     float64         `json:"rent_per_sqft,omitempty"`
	CostPerSeat     float64         `json:"cost_per_seat,omitempty"`
	CamPerSqft      float64         `json:"cam_per_sqft,omitempty"`
	SetupFees       float64         `json:"setup_fees_inventory,omitempty"`
	AgreementPeriod string          `json:"agreement_period" validate:"required"`
	LockInPeriod    string          `json:"lock_in_period" validate:"required"`
	NoOfCarParks    int             `json:"no_of_car_parks,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
