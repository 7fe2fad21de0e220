package domain

import "time"

// ProjectType represents the project category
type ProjectType string

const (
	ProjectCorporateBuilding ProjectType = "corporate_building"
	ProjectCoworkingSpace    ProjectType = "coworking_space"
	ProjectWarehouse         ProjectType = "warehouse"
	ProjectRetailMall        ProjectType = "retail_mall"
)

// ProjectStatus represents the operational status of a project
type ProjectStatus string

const (
	ProjectActive            ProjectStatus = "Active"
	ProjectInactive          ProjectStatus = "Inactive"
	ProjectUnderConstruction ProjectStatus = "Under Construction"
)

// Project is a property master record. Type-specific sections are sparse:
// only the fields matching the project type are populated.
type Project struct {
	ID             string        `json:"id"`
	Type           ProjectType   `json:"type" validate:"required,oneof=corporate_building coworking_space warehouse retail_mall"`
	Name           string        `json:"name" validate:"required"`
	Grade          Grade         `json:"grade" validate:"required,oneof=A B C"`
	DeveloperOwner string        `json:"developer_owner" validate:"required"`
	ContactNo      string        `json:"contact_no" validate:"required"`
	AlternateNo    string        `json:"alternate_no,omitempty"`
	Email          string        `json:"email" validate:"required,email"`
	City           string        `json:"city" validate:"required"`
	Location       string        `json:"location" validate:"required"`
	Landmark       string        `json:"landmark,omitempty"`
	GoogleLocation string        `json:"google_location,omitempty"`

	// Corporate building
	NoOfFloors int    `json:"no_of_floors,omitempty"`
	FloorPlate string `json:"floor_plate,omitempty"`

	// Coworking
	NoOfSeats            int     `json:"no_of_seats,omitempty"`
	AvailabilityOfSeats  int     `json:"availability_of_seats,omitempty"`
	PerOpenDeskCost      float64 `json:"per_open_desk_cost,omitempty"`
	PerDedicatedDeskCost float64 `json:"per_dedicated_desk_cost,omitempty"`
	SetupFees            float64 `json:"setup_fees,omitempty"`

	// Warehouse
	NoOfWarehouses int    `json:"no_of_warehouses,omitempty"`
	WarehouseSize  string `json:"warehouse_size,omitempty"`

	// Retail / mall
	TotalArea      string `json:"total_area,omitempty"`
	Efficiency     string `json:"efficiency,omitempty"`
	FloorPlateArea string `json:"floor_plate_area,omitempty"`

	RentPerSqft float64       `json:"rent_per_sqft,omitempty"`
	CamPerSqft  float64       `json:"cam_per_sqft,omitempty"`
	Amenities   string        `json:"amenities,omitempty"`
	Remark      string        `json:"remark,omitempty"`
	Status      ProjectStatus `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive 'Under Construction'"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
