package models

import "time"

// Resident represents one person registered under a household. A resident may
// be linked to at most one user account via UserID; residents created by an
// administrator have no account link.
type Resident struct {
	BaseModel
	HouseholdID uint   `gorm:"not null;index" json:"household_id"`
	UserID      *uint  `gorm:"uniqueIndex" json:"user_id"`
	FullName    string `gorm:"type:varchar(100);not null" json:"full_name"`
	IDCard      string `gorm:"type:varchar(20);not null" json:"id_card"`

	DateOfBirth  *time.Time      `json:"date_of_birth"`
	Gender       string          `gorm:"type:varchar(10)" json:"gender"` // male, female
	Relationship Relationship    `gorm:"type:varchar(30);not null" json:"relationship"`
	Phone        string          `gorm:"type:varchar(20)" json:"phone"`
	Email        string          `gorm:"type:varchar(100)" json:"email"`
	Occupation   string          `gorm:"type:varchar(100)" json:"occupation"`
	PermanentAddress string      `gorm:"type:varchar(200)" json:"permanent_address"`
	TemporaryAddress string      `gorm:"type:varchar(200)" json:"temporary_address"`
	Status       ResidencyStatus `gorm:"type:varchar(30);default:'active'" json:"status"`
	Notes        string          `gorm:"type:varchar(500)" json:"notes"`

	// Temporary residence / absence window, exclusive of each other
	TemporaryResidentFrom *time.Time `json:"temporary_resident_from"`
	TemporaryResidentTo   *time.Time `json:"temporary_resident_to"`
	TemporaryAbsentFrom   *time.Time `json:"temporary_absent_from"`
	TemporaryAbsentTo     *time.Time `json:"temporary_absent_to"`
	TemporaryReason       string     `gorm:"type:varchar(200)" json:"temporary_reason"`

	// Relations
	Household *Household `gorm:"foreignKey:HouseholdID" json:"household,omitempty"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// IsActiveHead reports whether this resident counts against the
// one-head-per-apartment occupancy rule.
func (r *Resident) IsActiveHead() bool {
	return r.Relationship == RelationHead && r.Status == ResidencyActive
}
