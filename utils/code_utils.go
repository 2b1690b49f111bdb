package utils

import (
	"fmt"
	"strings"
	"time"
)

// PlaceholderPrefix marks apartment codes that were synthesized because a
// registration arrived without one. Placeholder apartments are hidden from
// listings and their household codes are rewritten once a real apartment
// code shows up.
const PlaceholderPrefix = "DEFAULT-"

// PlaceholderApartmentCode synthesizes a unique apartment code for a
// registration that supplied none.
func PlaceholderApartmentCode() string {
	return fmt.Sprintf("%s%d", PlaceholderPrefix, time.Now().UnixMilli())
}

// SynthesizedHouseholdCode builds a unique household code for a user who
// registered without one.
func SynthesizedHouseholdCode(userID uint) string {
	return fmt.Sprintf("USER-%d-%d", userID, time.Now().UnixMilli())
}

// HouseholdCodeFromApartment derives a household code from an apartment code
// when replacing a placeholder.
func HouseholdCodeFromApartment(apartmentCode string) string {
	return apartmentCode + "-HH"
}

// IsPlaceholderCode reports whether a code carries the auto-generated marker.
func IsPlaceholderCode(code string) bool {
	return strings.HasPrefix(code, PlaceholderPrefix)
}
