package domain

import "time"

// ContactType represents the relationship of a contact to the business
type ContactType string

const (
	ContactClient         ContactType = "Client"
	ContactDeveloper      ContactType = "Developer"
	ContactIndividual     ContactType = "Individual Owner"
	ContactLandAcquirer   ContactType = "Land Acquisition"
	ContactOther          ContactType = "Others"
)

// Contact is an address-book entry tied to a client, developer or owner.
type Contact struct {
	ID                    string      `json:"id"`
	Type                  ContactType `json:"type" validate:"required,oneof=Client Developer 'Individual Owner' 'Land Acquisition' Others"`
	CompanyName           string      `json:"company_name,omitempty"`
	Industry              string      `json:"industry,omitempty"`
	Department            string      `json:"department,omitempty"`
	DeveloperName         string      `json:"developer_name,omitempty"`
	IndividualOwnerName   string      `json:"individual_owner_name,omitempty"`
	OwnerType             string      `json:"owner_type,omitempty"`
	DepartmentDesignation string      `json:"department_designation,omitempty"`
	FirstName             string      `json:"first_name" validate:"required"`
	LastName              string      `json:"last_name" validate:"required"`
	Designation           string      `json:"designation,omitempty"`
	ContactNo             string      `json:"contact_no" validate:"required"`
	AlternateNo           string      `json:"alternate_no,omitempty"`
	EmailID               string      `json:"email_id" validate:"required,email"`
	LinkedinLink          string      `json:"linkedin_link,omitempty"`
	City                  string      `json:"city,omitempty"`
	Location              string      `json:"location,omitempty"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}
