package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// The status and relationship columns are stored as the legacy string values
// the original schema used. Each enum below carries a single mapping table
// to and from those strings; the rest of the code only ever sees the typed
// constants.

// Relationship is a resident's relationship to the head of household.
type Relationship int

const (
	RelationUnknown Relationship = iota
	RelationHead
	RelationSpouse
	RelationChild
	RelationMember
	RelationOther
)

var relationshipStrings = map[Relationship]string{
	RelationHead:   "head of household",
	RelationSpouse: "spouse",
	RelationChild:  "child",
	RelationMember: "member",
	RelationOther:  "other",
}

func (r Relationship) String() string {
	if s, ok := relationshipStrings[r]; ok {
		return s
	}
	return "other"
}

func (r Relationship) Value() (driver.Value, error) {
	return r.String(), nil
}

// Scan maps a stored string back to the enum. The legacy column was
// free text, so anything outside the mapping collapses to RelationOther.
func (r *Relationship) Scan(value interface{}) error {
	s, err := scanString(value)
	if err != nil {
		return err
	}
	for k, v := range relationshipStrings {
		if v == s {
			*r = k
			return nil
		}
	}
	*r = RelationOther
	return nil
}

// ResidencyStatus is a resident's registration status.
type ResidencyStatus int

const (
	ResidencyUnknown ResidencyStatus = iota
	ResidencyActive
	ResidencyTemporaryResident
	ResidencyTemporaryAbsent
	ResidencyMovedOut
	ResidencyDeceased
)

var residencyStatusStrings = map[ResidencyStatus]string{
	ResidencyActive:            "active",
	ResidencyTemporaryResident: "temporary_resident",
	ResidencyTemporaryAbsent:   "temporary_absent",
	ResidencyMovedOut:          "moved_out",
	ResidencyDeceased:          "deceased",
}

func (s ResidencyStatus) String() string {
	if v, ok := residencyStatusStrings[s]; ok {
		return v
	}
	return "active"
}

func (s ResidencyStatus) Value() (driver.Value, error) {
	return s.String(), nil
}

func (s *ResidencyStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	for k, v := range residencyStatusStrings {
		if v == str {
			*s = k
			return nil
		}
	}
	*s = ResidencyActive
	return nil
}

// ParseResidencyStatus maps a request string to the enum; empty input
// falls back to the given default.
func ParseResidencyStatus(s string, fallback ResidencyStatus) ResidencyStatus {
	for k, v := range residencyStatusStrings {
		if v == s {
			return k
		}
	}
	return fallback
}

// PaymentStatus is a fee collection's payment state, always derived from
// (amount, paid amount).
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentUnpaid
	PaymentPartialPaid
	PaymentPaid
	PaymentOverpaid
)

var paymentStatusStrings = map[PaymentStatus]string{
	PaymentUnpaid:      "unpaid",
	PaymentPartialPaid: "partial_paid",
	PaymentPaid:        "paid",
	PaymentOverpaid:    "overpaid",
}

func (s PaymentStatus) String() string {
	if v, ok := paymentStatusStrings[s]; ok {
		return v
	}
	return "unpaid"
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return s.String(), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	for k, v := range paymentStatusStrings {
		if v == str {
			*s = k
			return nil
		}
	}
	*s = PaymentUnpaid
	return nil
}

// ApartmentStatus is an apartment's occupancy state.
type ApartmentStatus int

const (
	ApartmentUnknown ApartmentStatus = iota
	ApartmentOccupied
	ApartmentVacant
)

var apartmentStatusStrings = map[ApartmentStatus]string{
	ApartmentOccupied: "occupied",
	ApartmentVacant:   "vacant",
}

func (s ApartmentStatus) String() string {
	if v, ok := apartmentStatusStrings[s]; ok {
		return v
	}
	return "vacant"
}

func (s ApartmentStatus) Value() (driver.Value, error) {
	return s.String(), nil
}

func (s *ApartmentStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	for k, v := range apartmentStatusStrings {
		if v == str {
			*s = k
			return nil
		}
	}
	*s = ApartmentVacant
	return nil
}

// HouseholdStatus is a household's registration state.
type HouseholdStatus int

const (
	HouseholdUnknown HouseholdStatus = iota
	HouseholdActive
	HouseholdInactive
)

var householdStatusStrings = map[HouseholdStatus]string{
	HouseholdActive:   "active",
	HouseholdInactive: "inactive",
}

func (s HouseholdStatus) String() string {
	if v, ok := householdStatusStrings[s]; ok {
		return v
	}
	return "active"
}

func (s HouseholdStatus) Value() (driver.Value, error) {
	return s.String(), nil
}

func (s *HouseholdStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	for k, v := range householdStatusStrings {
		if v == str {
			*s = k
			return nil
		}
	}
	*s = HouseholdActive
	return nil
}

// FeeKind distinguishes periodic (monthly) fees from one-off collections.
type FeeKind int

const (
	FeeKindUnknown FeeKind = iota
	FeeKindPeriodic
	FeeKindNonPeriodic
)

var feeKindStrings = map[FeeKind]string{
	FeeKindPeriodic:    "periodic",
	FeeKindNonPeriodic: "non_periodic",
}

func (k FeeKind) String() string {
	if v, ok := feeKindStrings[k]; ok {
		return v
	}
	return "periodic"
}

func (k FeeKind) Value() (driver.Value, error) {
	return k.String(), nil
}

func (k *FeeKind) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	for key, v := range feeKindStrings {
		if v == str {
			*k = key
			return nil
		}
	}
	*k = FeeKindPeriodic
	return nil
}

// JSON round-trips use the same legacy strings as storage.

func (r Relationship) MarshalJSON() ([]byte, error) { return json.Marshal(r.String()) }
func (r *Relationship) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return r.Scan(s)
}

func (s ResidencyStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }
func (s *ResidencyStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	return s.Scan(str)
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }
func (s *PaymentStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	return s.Scan(str)
}

func (s ApartmentStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }
func (s *ApartmentStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	return s.Scan(str)
}

func (s HouseholdStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }
func (s *HouseholdStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	return s.Scan(str)
}

func (k FeeKind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }
func (k *FeeKind) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	return k.Scan(str)
}

func scanString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("cannot scan %T into enum", value)
	}
}
