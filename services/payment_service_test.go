package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/internal/errs"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/models"
)

func TestProcessPaymentAccumulates(t *testing.T) {
	db := setupTestDB(t)
	resident := createRegisteredHousehold(t, db, "alice", "A-101")
	feeSvc := NewFeeCollectionService(db)
	svc := NewPaymentService(db)

	fee, err := feeSvc.CreateNonPeriodicFee(resident.HouseholdID, 100000, "repair", nil)
	require.NoError(t, err)

	// Partial payment.
	updated, err := svc.ProcessPayment(fee.ID, 40000, "cash")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPartialPaid, updated.Status)
	assert.Equal(t, 40000.0, updated.PaidAmount)
	require.NotNil(t, updated.PaymentDate)

	// Second payment settles the balance exactly.
	updated, err = svc.ProcessPayment(fee.ID, 60000, "cash")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, updated.Status)
	assert.Equal(t, 0.0, updated.RemainingAmount())

	// A third payment overpays.
	updated, err = svc.ProcessPayment(fee.ID, 5000, "cash")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentOverpaid, updated.Status)
}

func TestProcessPaymentNegativeCorrection(t *testing.T) {
	db := setupTestDB(t)
	resident := createRegisteredHousehold(t, db, "bob", "B-202")
	feeSvc := NewFeeCollectionService(db)
	svc := NewPaymentService(db)

	fee, err := feeSvc.CreateNonPeriodicFee(resident.HouseholdID, 50000, "penalty", nil)
	require.NoError(t, err)

	_, err = svc.ProcessPayment(fee.ID, 50000, "transfer")
	require.NoError(t, err)

	// A negative amount rolls the payment back.
	updated, err := svc.ProcessPayment(fee.ID, -50000, "transfer")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentUnpaid, updated.Status)
	assert.Equal(t, 0.0, updated.PaidAmount)
}

func TestProcessPaymentKeepsMethodWhenOmitted(t *testing.T) {
	db := setupTestDB(t)
	resident := createRegisteredHousehold(t, db, "carol", "C-303")
	feeSvc := NewFeeCollectionService(db)
	svc := NewPaymentService(db)

	fee, err := feeSvc.CreateNonPeriodicFee(resident.HouseholdID, 20000, "cleaning", nil)
	require.NoError(t, err)

	_, err = svc.ProcessPayment(fee.ID, 10000, "cash")
	require.NoError(t, err)
	updated, err := svc.ProcessPayment(fee.ID, 5000, "")
	require.NoError(t, err)
	assert.Equal(t, "cash", updated.PaymentMethod)
}

func TestProcessPaymentNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)

	_, err := svc.ProcessPayment(9999, 1000, "cash")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestGetUnpaidFeesForUser(t *testing.T) {
	db := setupTestDB(t)
	resident := createRegisteredHousehold(t, db, "dave", "D-404")
	feeSvc := NewFeeCollectionService(db)
	svc := NewPaymentService(db)

	extra, err := feeSvc.CreateNonPeriodicFee(resident.HouseholdID, 70000, "repair", nil)
	require.NoError(t, err)

	// Registration seeded one unpaid monthly fee; plus the one above.
	fees, err := svc.GetUnpaidFeesForUser(*resident.UserID)
	require.NoError(t, err)
	assert.Len(t, fees, 2)

	total, err := svc.GetTotalRemainingAmount(*resident.UserID)
	require.NoError(t, err)
	assert.Equal(t, 570000.0, total)

	// Settling one fee removes it from the unpaid list.
	_, err = svc.ProcessPayment(extra.ID, 70000, "cash")
	require.NoError(t, err)
	fees, err = svc.GetUnpaidFeesForUser(*resident.UserID)
	require.NoError(t, err)
	assert.Len(t, fees, 1)

	_, err = svc.GetUnpaidFeesForUser(9999)
	assert.True(t, errs.IsNotFound(err))
}
