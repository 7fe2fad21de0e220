package domain

import "time"

// LeadStatus represents the pipeline status of a lead
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "New"
	LeadStatusInProgress LeadStatus = "In Progress"
	LeadStatusQualified  LeadStatus = "Qualified"
	LeadStatusClosedWon  LeadStatus = "Closed Won"
	LeadStatusClosedLost LeadStatus = "Closed Lost"
	LeadStatusFollowUp   LeadStatus = "Follow Up"
)

// TypeOfPlace represents the kind of space a lead is looking for
type TypeOfPlace string

const (
	PlaceOffice     TypeOfPlace = "Office"
	PlaceRetail     TypeOfPlace = "Retail"
	PlaceWarehouse  TypeOfPlace = "Warehouse"
	PlaceCoworking  TypeOfPlace = "Coworking"
	PlaceIndustrial TypeOfPlace = "Industrial"
	PlaceLand       TypeOfPlace = "Land"
	PlaceOther      TypeOfPlace = "Other"
)

// TransactionType represents lease vs sale intent
type TransactionType string

const (
	TransactionLease TransactionType = "Lease"
	TransactionSale  TransactionType = "Sale"
	TransactionBoth  TransactionType = "Both"
)

// Lead is a client inquiry. Leads are the only module with per-user
// ownership: LeadManagedBy points at the managing user and drives the
// visibility filter for employees.
type Lead struct {
	ID                 string          `json:"id"`
	InquiryNo          string          `json:"inquiry_no"`
	InquiryDate        *time.Time      `json:"inquiry_date,omitempty" validate:"omitempty"`
	ClientCompany      string          `json:"client_company" validate:"required"`
	ContactPerson      string          `json:"contact_person" validate:"required"`
	ContactNo          string          `json:"contact_no" validate:"required"`
	Email              string          `json:"email" validate:"required,email"`
	Designation        string          `json:"designation,omitempty"`
	Department         string          `json:"department,omitempty"`
	Description        string          `json:"description,omitempty"`
	TypeOfPlace        TypeOfPlace     `json:"type_of_place" validate:"required,oneof=Office Retail Warehouse Coworking Industrial Land Other"`
	SpaceRequirement   string          `json:"space_requirement,omitempty"`
	TransactionType    TransactionType `json:"transaction_type" validate:"required,oneof=Lease Sale Both"`
	Budget             int64           `json:"budget,omitempty"`
	City               string          `json:"city,omitempty"`
	LocationPreference string          `json:"location_preference,omitempty"`
	FirstContactDate   *time.Time      `json:"first_contact_date,omitempty"`
	LeadManagedBy      string          `json:"lead_managed_by,omitempty"`
	Status             LeadStatus      `json:"status,omitempty" validate:"omitempty,oneof=New 'In Progress' Qualified 'Closed Won' 'Closed Lost' 'Follow Up'"`
	OptionShared       string          `json:"option_shared,omitempty" validate:"omitempty,oneof=Yes No"`
	LastContactDate    *time.Time      `json:"last_contact_date,omitempty"`
	NextActionPlan     string          `json:"next_action_plan,omitempty"`
	ActionDate         *time.Time      `json:"action_date,omitempty"`
	Remark             string          `json:"remark,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

const inquiryNoPrefix = "LEAD"

// GenerateInquiryNo builds a human-readable inquiry number from the fixed
// prefix plus a timestamp-derived suffix, e.g. LEAD-20260115093042.
func GenerateInquiryNo(now time.Time) string {
	return inquiryNoPrefix + "-" + now.Format("20060102150405")
}
