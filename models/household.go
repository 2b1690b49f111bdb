package models

import "time"

// Household represents one registered household. It belongs to exactly one
// apartment; the one-active-head-per-apartment rule is enforced by the
// registration service, not the schema.
type Household struct {
	BaseModel
	ApartmentID      uint            `gorm:"not null;index" json:"apartment_id"`
	HouseholdCode    string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"household_code"`
	OwnerName        string          `gorm:"type:varchar(100)" json:"owner_name"` // denormalized head-of-household contact cache
	OwnerPhone       string          `gorm:"type:varchar(20)" json:"owner_phone"`
	OwnerEmail       string          `gorm:"type:varchar(100)" json:"owner_email"`
	RegistrationDate *time.Time      `json:"registration_date"`
	Status           HouseholdStatus `gorm:"type:varchar(20);default:'active'" json:"status"`

	// Relations
	Apartment      *Apartment      `gorm:"foreignKey:ApartmentID" json:"apartment,omitempty"`
	Residents      []Resident      `gorm:"foreignKey:HouseholdID" json:"residents,omitempty"`
	FeeCollections []FeeCollection `gorm:"foreignKey:HouseholdID" json:"fee_collections,omitempty"`
}
