package models

// FeeType is a named category of recurring or ad-hoc charge with a default
// amount, managed by administrators and referenced by fee collections.
type FeeType struct {
	BaseModel
	Name          string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description   string  `gorm:"type:varchar(500)" json:"description"`
	DefaultAmount float64 `gorm:"type:decimal(15,2);not null;default:0" json:"default_amount"`
	IsActive      bool    `gorm:"default:true" json:"is_active"`

	// Relations
	FeeCollections []FeeCollection `gorm:"foreignKey:FeeTypeID" json:"fee_collections,omitempty"`
}
