package models

import "time"

// FeeCollection is one billing record for one household and one period (or a
// one-off reason). Once created for a given (household, month, year, fee type)
// key it is only ever mutated in place by payments, never re-created.
//
// The composite unique index is the authoritative duplicate guard. Rows with
// a NULL fee type id fall outside it: that is the legacy carve-out, layered
// fees without a type are allowed to repeat within a period.
type FeeCollection struct {
	BaseModel
	HouseholdID uint  `gorm:"not null;index;uniqueIndex:idx_household_period_type" json:"household_id"`
	Month       *int  `gorm:"uniqueIndex:idx_household_period_type" json:"month"` // 1-12, nil for non-periodic fees
	Year        *int  `gorm:"uniqueIndex:idx_household_period_type" json:"year"`
	FeeTypeID   *uint `gorm:"uniqueIndex:idx_household_period_type" json:"fee_type_id"`

	Amount     float64       `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaidAmount float64       `gorm:"type:decimal(15,2);not null;default:0" json:"paid_amount"`
	Status     PaymentStatus `gorm:"type:varchar(20);not null;default:'unpaid'" json:"status"`
	Kind       FeeKind       `gorm:"type:varchar(20);default:'periodic'" json:"fee_kind"`
	Reason     string        `gorm:"type:varchar(200)" json:"reason"` // only for non-periodic fees

	PaymentDate     *time.Time `json:"payment_date"`
	PaymentDeadline *time.Time `json:"payment_deadline"`
	PaymentMethod   string     `gorm:"type:varchar(50)" json:"payment_method"`
	Notes           string     `gorm:"type:varchar(500)" json:"notes"`

	// Relations
	Household *Household `gorm:"foreignKey:HouseholdID" json:"household,omitempty"`
	FeeType   *FeeType   `gorm:"foreignKey:FeeTypeID" json:"fee_type,omitempty"`
}

// RemainingAmount is amount minus paid amount; negative means overpaid.
func (f *FeeCollection) RemainingAmount() float64 {
	return f.Amount - f.PaidAmount
}

// StatusFor derives the payment status from an amount/paid pair.
func StatusFor(amount, paid float64) PaymentStatus {
	remaining := amount - paid
	switch {
	case remaining == 0:
		return PaymentPaid
	case remaining < 0:
		return PaymentOverpaid
	case paid > 0:
		return PaymentPartialPaid
	default:
		return PaymentUnpaid
	}
}

// DeriveStatus recomputes Status from the current amounts.
func (f *FeeCollection) DeriveStatus() {
	f.Status = StatusFor(f.Amount, f.PaidAmount)
}
