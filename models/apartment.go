package models

// Apartment represents a physical unit in the complex. Apartments are created
// lazily the first time a household references their code and are never
// deleted by the billing engine.
type Apartment struct {
	BaseModel
	ApartmentCode  string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"apartment_code"` // e.g. "A101"
	BuildingNumber string          `gorm:"type:varchar(20)" json:"building_number"`
	FloorNumber    int             `json:"floor_number"`
	RoomNumber     string          `gorm:"type:varchar(20)" json:"room_number"`
	Area           float64         `gorm:"type:decimal(10,2)" json:"area"` // m2
	NumberOfRooms  int             `json:"number_of_rooms"`
	Status         ApartmentStatus `gorm:"type:varchar(20);default:'occupied'" json:"status"`

	// Relations
	Households []Household `gorm:"foreignKey:ApartmentID" json:"households,omitempty"`
}

// Physical defaults applied when an apartment is synthesized from a bare code.
const (
	DefaultBuildingNumber = "A"
	DefaultFloorNumber    = 1
	DefaultRoomNumber     = "01"
	DefaultArea           = 60.00
	DefaultNumberOfRooms  = 2
)

// NewDefaultApartment builds an apartment row for a code that has never been
// registered before.
func NewDefaultApartment(code string) *Apartment {
	return &Apartment{
		ApartmentCode:  code,
		BuildingNumber: DefaultBuildingNumber,
		FloorNumber:    DefaultFloorNumber,
		RoomNumber:     DefaultRoomNumber,
		Area:           DefaultArea,
		NumberOfRooms:  DefaultNumberOfRooms,
		Status:         ApartmentOccupied,
	}
}
