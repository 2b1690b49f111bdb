package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/internal/errs"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/models"
)

func newFeeTypeService(db *gorm.DB) InterfaceFeeTypeService {
	return NewFeeTypeService(db, NewFeeCollectionService(db))
}

func TestCreateFeeTypeUniqueness(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeeTypeService(db)

	created, err := svc.CreateFeeType("management", "monthly management fee", 100000, true)
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	_, err = svc.CreateFeeType("management", "", 200000, true)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	// Exact match only; a different name passes.
	_, err = svc.CreateFeeType("management 2", "", 200000, true)
	require.NoError(t, err)

	_, err = svc.CreateFeeType("", "", 100, true)
	assert.True(t, errs.IsValidation(err))
	_, err = svc.CreateFeeType("negative", "", -1, true)
	assert.True(t, errs.IsValidation(err))
}

func TestUpdateFeeType(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeeTypeService(db)

	a, err := svc.CreateFeeType("water", "", 30000, true)
	require.NoError(t, err)
	_, err = svc.CreateFeeType("electricity", "", 50000, true)
	require.NoError(t, err)

	// Renaming onto a taken name is rejected.
	_, err = svc.UpdateFeeType(a.ID, map[string]interface{}{"name": "electricity"})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	updated, err := svc.UpdateFeeType(a.ID, map[string]interface{}{"default_amount": 35000.0, "is_active": false})
	require.NoError(t, err)
	assert.Equal(t, 35000.0, updated.DefaultAmount)
	assert.False(t, updated.IsActive)
}

func TestGetActiveFeeTypes(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeeTypeService(db)

	_, err := svc.CreateFeeType("active one", "", 1000, true)
	require.NoError(t, err)
	_, err = svc.CreateFeeType("retired", "", 1000, false)
	require.NoError(t, err)

	active, err := svc.GetActiveFeeTypes()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "active one", active[0].Name)

	all, err := svc.GetAllFeeTypes()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteFeeType(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeeTypeService(db)

	feeType, err := svc.CreateFeeType("doomed", "", 1000, true)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteFeeType(feeType.ID))
	assert.True(t, errs.IsNotFound(svc.DeleteFeeType(feeType.ID)))
}

func TestCollectFeeForAllHouseholds(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeeTypeService(db)

	// Two fully-registered households plus one placeholder household that
	// must be skipped.
	createRegisteredHousehold(t, db, "alice", "A-101")
	createRegisteredHousehold(t, db, "bob", "B-202")
	createRegisteredHousehold(t, db, "ghost", "")

	feeType, err := svc.CreateFeeType("management", "", 150000, true)
	require.NoError(t, err)

	created, err := svc.CollectFeeForAllHouseholds(feeType.ID, 1, 2026, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	var fees []models.FeeCollection
	require.NoError(t, db.Where("fee_type_id = ?", feeType.ID).Find(&fees).Error)
	require.Len(t, fees, 2)
	for _, fee := range fees {
		assert.Equal(t, 150000.0, fee.Amount)
		assert.Equal(t, models.PaymentUnpaid, fee.Status)
	}

	// Billing a second time finds everyone already billed.
	_, err = svc.CollectFeeForAllHouseholds(feeType.ID, 1, 2026, nil)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	// A household added later picks up only the missing fee.
	carol := createRegisteredHousehold(t, db, "carol", "C-303")
	created, err = svc.CollectFeeForAllHouseholds(feeType.ID, 1, 2026, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	var carolFees int64
	db.Model(&models.FeeCollection{}).
		Where("household_id = ? AND fee_type_id = ?", carol.HouseholdID, feeType.ID).
		Count(&carolFees)
	assert.EqualValues(t, 1, carolFees)
}

func TestCollectFeeForAllHouseholdsRejections(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeeTypeService(db)

	inactive, err := svc.CreateFeeType("retired", "", 1000, false)
	require.NoError(t, err)
	_, err = svc.CollectFeeForAllHouseholds(inactive.ID, 1, 2026, nil)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	_, err = svc.CollectFeeForAllHouseholds(9999, 1, 2026, nil)
	assert.True(t, errs.IsNotFound(err))

	// No registered households at all.
	active, err := svc.CreateFeeType("management", "", 1000, true)
	require.NoError(t, err)
	_, err = svc.CollectFeeForAllHouseholds(active.ID, 1, 2026, nil)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	createRegisteredHousehold(t, db, "alice", "A-101")
	_, err = svc.CollectFeeForAllHouseholds(active.ID, 0, 2026, nil)
	assert.True(t, errs.IsValidation(err))
	_, err = svc.CollectFeeForAllHouseholds(active.ID, 1, 3000, nil)
	assert.True(t, errs.IsValidation(err))
}
