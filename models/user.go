package models

// User is the account a resident may be linked to. Authentication, sessions
// and credentials live in a separate service; this engine only needs the
// contact fields it syncs into resident and household rows.
type User struct {
	BaseModel
	Username string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	FullName string `gorm:"type:varchar(100)" json:"full_name"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	Email    string `gorm:"type:varchar(100)" json:"email"`

	// Relations
	Resident *Resident `gorm:"foreignKey:UserID" json:"resident,omitempty"`
}
