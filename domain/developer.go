package domain

import "time"

// DeveloperType represents the developer category
type DeveloperType string

const (
	DeveloperCorporate DeveloperType = "corporate"
	DeveloperCoworking DeveloperType = "coworking"
	DeveloperWarehouse DeveloperType = "warehouse"
	DeveloperMall      DeveloperType = "mall"
)

// Grade is the quality grade shared by developers, projects and inventory.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
)

// Developer is a property developer master record.
type Developer struct {
	ID              string        `json:"id"`
	Type            DeveloperType `json:"type" validate:"required,oneof=corporate coworking warehouse mall"`
	Name            string        `json:"name" validate:"required"`
	Grade           Grade         `json:"grade" validate:"required,oneof=A B C"`
	ContactNo       string        `json:"contact_no" validate:"required"`
	EmailID         string        `json:"email_id" validate:"required,email"`
	WebsiteLink     string        `json:"website_link" validate:"required"`
	LinkedinLink    string        `json:"linkedin_link,omitempty"`
	HOCity          string        `json:"ho_city" validate:"required"`
	PresenceCities  string        `json:"presence_cities,omitempty"`
	NoOfBuildings   int           `json:"no_of_buildings,omitempty"`
	NoOfCoworking   int           `json:"no_of_coworking,omitempty"`
	NoOfWarehouses  int           `json:"no_of_warehouses,omitempty"`
	NoOfMalls       int           `json:"no_of_malls,omitempty"`
	BuildingListURL string        `json:"building_list_link,omitempty"`
	ContactListURL  string        `json:"contact_list_link,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
