package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/internal/errs"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/models"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/utils"
)

func TestRegisterCreatesApartmentHouseholdAndFee(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	svc := NewRegistrationService(db, testConfig())

	resident, err := svc.RegisterHeadOfHousehold(user.ID, &RegistrationRequest{
		FullName:      "Alice Nguyen",
		IDCard:        "012345678",
		ApartmentCode: "A-101",
		HouseholdCode: "HH-101",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RelationHead, resident.Relationship)
	assert.Equal(t, models.ResidencyActive, resident.Status)

	var household models.Household
	require.NoError(t, db.Preload("Apartment").First(&household, resident.HouseholdID).Error)
	assert.Equal(t, "HH-101", household.HouseholdCode)
	assert.Equal(t, "A-101", household.Apartment.ApartmentCode)
	assert.Equal(t, models.HouseholdActive, household.Status)

	// The first monthly bill is seeded at the default amount.
	var fees []models.FeeCollection
	require.NoError(t, db.Where("household_id = ?", household.ID).Find(&fees).Error)
	require.Len(t, fees, 1)
	assert.Equal(t, 500000.0, fees[0].Amount)
	assert.Equal(t, models.PaymentUnpaid, fees[0].Status)
	assert.Equal(t, int(time.Now().Month()), *fees[0].Month)
	assert.Equal(t, time.Now().Year(), *fees[0].Year)
}

func TestRegisterWithoutCodesSynthesizesPlaceholders(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob")
	svc := NewRegistrationService(db, testConfig())

	resident, err := svc.RegisterHeadOfHousehold(user.ID, &RegistrationRequest{
		FullName: "Bob Tran",
		IDCard:   "987654321",
	})
	require.NoError(t, err)

	var household models.Household
	require.NoError(t, db.Preload("Apartment").First(&household, resident.HouseholdID).Error)
	assert.True(t, utils.IsPlaceholderCode(household.Apartment.ApartmentCode))
	assert.True(t, strings.HasPrefix(household.HouseholdCode, "USER-"))
}

func TestRegisterTwiceIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "carol")
	svc := NewRegistrationService(db, testConfig())

	req := &RegistrationRequest{
		FullName:      "Carol Le",
		IDCard:        "111222333",
		ApartmentCode: "B-202",
	}
	first, err := svc.RegisterHeadOfHousehold(user.ID, req)
	require.NoError(t, err)

	req.Phone = "0900000001"
	second, err := svc.RegisterHeadOfHousehold(user.ID, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.HouseholdID, second.HouseholdID)
	assert.Equal(t, "0900000001", second.Phone)

	// No duplicate resident, household or monthly fee.
	var residentCount, householdCount, feeCount int64
	db.Model(&models.Resident{}).Count(&residentCount)
	db.Model(&models.Household{}).Count(&householdCount)
	db.Model(&models.FeeCollection{}).Where("household_id = ?", first.HouseholdID).Count(&feeCount)
	assert.EqualValues(t, 1, residentCount)
	assert.EqualValues(t, 1, householdCount)
	assert.EqualValues(t, 1, feeCount)
}

func TestRegisterRejectsOccupiedApartment(t *testing.T) {
	db := setupTestDB(t)
	createRegisteredHousehold(t, db, "dave", "C-303")

	user := createTestUser(t, db, "erin")
	svc := NewRegistrationService(db, testConfig())
	_, err := svc.RegisterHeadOfHousehold(user.ID, &RegistrationRequest{
		FullName:      "Erin Pham",
		IDCard:        "444555666",
		ApartmentCode: "C-303",
	})
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

func TestRegisterJoinsExistingHouseholdByApartmentCode(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "frank")
	svc := NewRegistrationService(db, testConfig())

	// Seed an active household with no head.
	apartment := models.NewDefaultApartment("D-404")
	require.NoError(t, db.Create(apartment).Error)
	household := &models.Household{
		ApartmentID:   apartment.ID,
		HouseholdCode: "HH-D-404",
		Status:        models.HouseholdActive,
	}
	require.NoError(t, db.Create(household).Error)

	resident, err := svc.RegisterHeadOfHousehold(user.ID, &RegistrationRequest{
		FullName:      "Frank Vo",
		IDCard:        "777888999",
		ApartmentCode: "D-404",
	})
	require.NoError(t, err)
	assert.Equal(t, household.ID, resident.HouseholdID)

	// The stored household code survives: no requested code, no placeholder.
	code, err := householdCodeByID(db, household.ID)
	require.NoError(t, err)
	assert.Equal(t, "HH-D-404", code)
}

func TestRegisterUpgradesPlaceholderHouseholdCode(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "grace")
	svc := NewRegistrationService(db, testConfig())

	apartment := models.NewDefaultApartment("E-505")
	require.NoError(t, db.Create(apartment).Error)
	household := &models.Household{
		ApartmentID:   apartment.ID,
		HouseholdCode: utils.PlaceholderPrefix + "1700000000000",
		Status:        models.HouseholdActive,
	}
	require.NoError(t, db.Create(household).Error)

	_, err := svc.RegisterHeadOfHousehold(user.ID, &RegistrationRequest{
		FullName:      "Grace Dinh",
		IDCard:        "121212121",
		ApartmentCode: "E-505",
	})
	require.NoError(t, err)

	code, err := householdCodeByID(db, household.ID)
	require.NoError(t, err)
	assert.Equal(t, "E-505-HH", code)
}

func TestRegisterRenamesHouseholdToRequestedCode(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "henry")
	svc := NewRegistrationService(db, testConfig())

	apartment := models.NewDefaultApartment("F-606")
	require.NoError(t, db.Create(apartment).Error)
	household := &models.Household{
		ApartmentID:   apartment.ID,
		HouseholdCode: "OLD-CODE",
		Status:        models.HouseholdActive,
	}
	require.NoError(t, db.Create(household).Error)

	_, err := svc.RegisterHeadOfHousehold(user.ID, &RegistrationRequest{
		FullName:      "Henry Bui",
		IDCard:        "343434343",
		ApartmentCode: "F-606",
		HouseholdCode: "NEW-CODE",
	})
	require.NoError(t, err)

	code, err := householdCodeByID(db, household.ID)
	require.NoError(t, err)
	assert.Equal(t, "NEW-CODE", code)
}

func TestRegisterRenameCollisionConflicts(t *testing.T) {
	db := setupTestDB(t)
	createRegisteredHousehold(t, db, "ivan", "G-707")

	// The existing household on G-707 registered through the flow, so its
	// head blocks this apartment. Use a fresh apartment whose household we
	// try to rename onto a taken code.
	apartment := models.NewDefaultApartment("G-708")
	require.NoError(t, db.Create(apartment).Error)
	var takenCode string
	var taken models.Household
	require.NoError(t, db.Order("id").First(&taken).Error)
	takenCode = taken.HouseholdCode

	household := &models.Household{
		ApartmentID:   apartment.ID,
		HouseholdCode: "G-708-HH",
		Status:        models.HouseholdActive,
	}
	require.NoError(t, db.Create(household).Error)

	user := createTestUser(t, db, "judy")
	svc := NewRegistrationService(db, testConfig())
	_, err := svc.RegisterHeadOfHousehold(user.ID, &RegistrationRequest{
		FullName:      "Judy Ngo",
		IDCard:        "565656565",
		ApartmentCode: "G-708",
		HouseholdCode: takenCode,
	})
	// The requested code belongs to another household, so the resolver
	// matches it directly instead of renaming. That household already has
	// its own active head, so the takeover is rejected.
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

func TestRegisterMovesHouseholdToNewApartment(t *testing.T) {
	db := setupTestDB(t)
	resident := createRegisteredHousehold(t, db, "kim", "H-808")

	var user models.User
	require.NoError(t, db.First(&user, *resident.UserID).Error)

	svc := NewRegistrationService(db, testConfig())
	household, err := func() (*models.Household, error) {
		updated, err := svc.RegisterHeadOfHousehold(user.ID, &RegistrationRequest{
			FullName:      resident.FullName,
			IDCard:        resident.IDCard,
			HouseholdCode: householdCode(t, db, resident.HouseholdID),
			ApartmentCode: "H-809",
		})
		if err != nil {
			return nil, err
		}
		var h models.Household
		err = db.Preload("Apartment").First(&h, updated.HouseholdID).Error
		return &h, err
	}()
	require.NoError(t, err)
	assert.Equal(t, "H-809", household.Apartment.ApartmentCode)
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "leo")
	svc := NewRegistrationService(db, testConfig())

	_, err := svc.RegisterHeadOfHousehold(user.ID, &RegistrationRequest{IDCard: "1"})
	assert.True(t, errs.IsValidation(err))

	_, err = svc.RegisterHeadOfHousehold(user.ID, &RegistrationRequest{FullName: "Leo"})
	assert.True(t, errs.IsValidation(err))

	_, err = svc.RegisterHeadOfHousehold(9999, &RegistrationRequest{FullName: "Leo", IDCard: "1"})
	assert.True(t, errs.IsNotFound(err))
}

func TestCreateHouseholdAdminPath(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistrationService(db, testConfig())

	household, err := svc.CreateHousehold("I-909", "HH-I-909", "Owner", "0900", "o@example.com")
	require.NoError(t, err)
	assert.Equal(t, "HH-I-909", household.HouseholdCode)

	// Duplicate code is a validation error, not a conflict.
	_, err = svc.CreateHousehold("I-910", "HH-I-909", "", "", "")
	assert.True(t, errs.IsValidation(err))

	// Missing codes are rejected.
	_, err = svc.CreateHousehold("", "X", "", "", "")
	assert.True(t, errs.IsValidation(err))
	_, err = svc.CreateHousehold("X", "", "", "", "")
	assert.True(t, errs.IsValidation(err))
}

func TestCreateHouseholdRejectsOccupiedApartment(t *testing.T) {
	db := setupTestDB(t)
	createRegisteredHousehold(t, db, "mia", "J-111")

	svc := NewRegistrationService(db, testConfig())
	_, err := svc.CreateHousehold("J-111", "HH-J-111-B", "", "", "")
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

func TestGetProfile(t *testing.T) {
	db := setupTestDB(t)
	resident := createRegisteredHousehold(t, db, "nina", "K-222")
	svc := NewRegistrationService(db, testConfig())

	profile, err := svc.GetProfile(*resident.UserID)
	require.NoError(t, err)
	assert.Equal(t, resident.ID, profile.ID)
	require.NotNil(t, profile.Household)
	require.NotNil(t, profile.Household.Apartment)
	assert.Equal(t, "K-222", profile.Household.Apartment.ApartmentCode)

	_, err = svc.GetProfile(9999)
	assert.True(t, errs.IsNotFound(err))
}

func householdCode(t *testing.T, db *gorm.DB, householdID uint) string {
	t.Helper()
	code, err := householdCodeByID(db, householdID)
	require.NoError(t, err)
	return code
}
