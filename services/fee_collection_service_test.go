package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/internal/errs"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/models"
)

func createTestFeeType(t *testing.T, db *gorm.DB, name string, amount float64, active bool) *models.FeeType {
	t.Helper()
	feeType := &models.FeeType{Name: name, DefaultAmount: amount, IsActive: active}
	require.NoError(t, db.Create(feeType).Error)
	return feeType
}

func TestCreateFeeCollectionDuplicateGuard(t *testing.T) {
	db := setupTestDB(t)
	resident := createRegisteredHousehold(t, db, "alice", "A-101")
	feeType := createTestFeeType(t, db, "management", 100000, true)
	svc := NewFeeCollectionService(db)

	fee, err := svc.CreateFeeCollection(resident.HouseholdID, 1, 2026, 100000, &feeType.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentUnpaid, fee.Status)
	assert.Equal(t, models.FeeKindPeriodic, fee.Kind)

	// Same household, period and type is rejected.
	_, err = svc.CreateFeeCollection(resident.HouseholdID, 1, 2026, 100000, &feeType.ID, nil)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	// A different type in the same period is fine.
	other := createTestFeeType(t, db, "parking", 50000, true)
	_, err = svc.CreateFeeCollection(resident.HouseholdID, 1, 2026, 50000, &other.ID, nil)
	require.NoError(t, err)
}

func TestFeeCollectionExistsNilTypeCarveOut(t *testing.T) {
	db := setupTestDB(t)
	resident := createRegisteredHousehold(t, db, "bob", "B-202")
	svc := NewFeeCollectionService(db)

	// Untyped rows carry no duplicate protection: exists always reports
	// false and repeated creates succeed.
	exists, err := svc.FeeCollectionExists(resident.HouseholdID, 2, 2026, nil)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.CreateFeeCollection(resident.HouseholdID, 2, 2026, 10000, nil, nil)
	require.NoError(t, err)
	_, err = svc.CreateFeeCollection(resident.HouseholdID, 2, 2026, 20000, nil, nil)
	require.NoError(t, err)

	exists, err = svc.FeeCollectionExists(resident.HouseholdID, 2, 2026, nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateFeeCollectionValidation(t *testing.T) {
	db := setupTestDB(t)
	resident := createRegisteredHousehold(t, db, "carol", "C-303")
	svc := NewFeeCollectionService(db)

	_, err := svc.CreateFeeCollection(resident.HouseholdID, 0, 2026, 100, nil, nil)
	assert.True(t, errs.IsValidation(err))
	_, err = svc.CreateFeeCollection(resident.HouseholdID, 13, 2026, 100, nil, nil)
	assert.True(t, errs.IsValidation(err))
	_, err = svc.CreateFeeCollection(resident.HouseholdID, 1, 1999, 100, nil, nil)
	assert.True(t, errs.IsValidation(err))
	_, err = svc.CreateFeeCollection(resident.HouseholdID, 1, 2026, -1, nil, nil)
	assert.True(t, errs.IsValidation(err))
	_, err = svc.CreateFeeCollection(9999, 1, 2026, 100, nil, nil)
	assert.True(t, errs.IsNotFound(err))
}

func TestCreateNonPeriodicFee(t *testing.T) {
	db := setupTestDB(t)
	resident := createRegisteredHousehold(t, db, "dave", "D-404")
	svc := NewFeeCollectionService(db)

	fee, err := svc.CreateNonPeriodicFee(resident.HouseholdID, 250000, "elevator repair", nil)
	require.NoError(t, err)
	assert.Equal(t, models.FeeKindNonPeriodic, fee.Kind)
	assert.Nil(t, fee.Month)
	assert.Nil(t, fee.Year)
	assert.Equal(t, "elevator repair", fee.Reason)

	// A reason is mandatory for one-off fees.
	_, err = svc.CreateNonPeriodicFee(resident.HouseholdID, 1000, "", nil)
	assert.True(t, errs.IsValidation(err))

	// One-off fees never trip the periodic duplicate guard.
	_, err = svc.CreateNonPeriodicFee(resident.HouseholdID, 250000, "elevator repair", nil)
	require.NoError(t, err)
}

func TestMarkAsPaid(t *testing.T) {
	db := setupTestDB(t)
	resident := createRegisteredHousehold(t, db, "erin", "E-505")
	svc := NewFeeCollectionService(db)

	fee, err := svc.CreateNonPeriodicFee(resident.HouseholdID, 300000, "window repair", nil)
	require.NoError(t, err)

	paid, err := svc.MarkAsPaid(fee.ID, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), "cash")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, paid.Status)
	assert.Equal(t, 300000.0, paid.PaidAmount)
	assert.Equal(t, "cash", paid.PaymentMethod)
	require.NotNil(t, paid.PaymentDate)
}

func TestUpdateFeeCollectionRederivesStatus(t *testing.T) {
	db := setupTestDB(t)
	resident := createRegisteredHousehold(t, db, "frank", "F-606")
	svc := NewFeeCollectionService(db)

	fee, err := svc.CreateNonPeriodicFee(resident.HouseholdID, 100000, "cleaning", nil)
	require.NoError(t, err)

	paid, err := svc.MarkAsPaid(fee.ID, time.Now(), "transfer")
	require.NoError(t, err)
	require.Equal(t, models.PaymentPaid, paid.Status)

	// Raising the amount reopens the balance.
	updated, err := svc.UpdateFeeCollection(fee.ID, map[string]interface{}{"amount": 150000.0})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPartialPaid, updated.Status)
	assert.Equal(t, 50000.0, updated.RemainingAmount())

	// Lowering it below what was paid marks it overpaid.
	updated, err = svc.UpdateFeeCollection(fee.ID, map[string]interface{}{"amount": 80000.0})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentOverpaid, updated.Status)
}

func TestSearchFeeCollections(t *testing.T) {
	db := setupTestDB(t)
	alice := createRegisteredHousehold(t, db, "alice", "A-101")
	bob := createRegisteredHousehold(t, db, "bob", "B-202")
	feeType := createTestFeeType(t, db, "management", 100000, true)
	svc := NewFeeCollectionService(db)

	_, err := svc.CreateFeeCollection(alice.HouseholdID, 1, 2026, 100000, &feeType.ID, nil)
	require.NoError(t, err)
	_, err = svc.CreateFeeCollection(bob.HouseholdID, 1, 2026, 100000, &feeType.ID, nil)
	require.NoError(t, err)

	month := 1
	year := 2026
	fees, pagination, err := svc.SearchFeeCollections(FeeSearchParams{
		ApartmentCode: "A-101",
		Month:         &month,
		Year:          &year,
	}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Total)
	require.Len(t, fees, 1)
	assert.Equal(t, alice.HouseholdID, fees[0].HouseholdID)

	// Status filter uses the serialized enum value.
	fees, _, err = svc.SearchFeeCollections(FeeSearchParams{Status: "unpaid"}, 1, 10)
	require.NoError(t, err)
	// Registration seeded one monthly fee per household on top of the two
	// created here.
	assert.Len(t, fees, 4)
}

func TestGetFeesByHouseholdAndPeriod(t *testing.T) {
	db := setupTestDB(t)
	resident := createRegisteredHousehold(t, db, "grace", "G-707")
	feeType := createTestFeeType(t, db, "water", 30000, true)
	svc := NewFeeCollectionService(db)

	_, err := svc.CreateFeeCollection(resident.HouseholdID, 4, 2026, 30000, &feeType.ID, nil)
	require.NoError(t, err)

	byHousehold, err := svc.GetFeesByHousehold(resident.HouseholdID)
	require.NoError(t, err)
	assert.Len(t, byHousehold, 2) // seeded monthly fee + the one above

	byPeriod, err := svc.GetFeesByMonthYear(4, 2026)
	require.NoError(t, err)
	assert.Len(t, byPeriod, 1)
}

func TestDeleteFeeCollection(t *testing.T) {
	db := setupTestDB(t)
	resident := createRegisteredHousehold(t, db, "henry", "H-808")
	svc := NewFeeCollectionService(db)

	fee, err := svc.CreateNonPeriodicFee(resident.HouseholdID, 1000, "test", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFeeCollection(fee.ID))
	assert.True(t, errs.IsNotFound(svc.DeleteFeeCollection(fee.ID)))
}
