package services

import (
	"errors"
	"strings"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/internal/errs"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/models"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/utils"

	"gorm.io/gorm"
)

// Shared lookup helpers for the apartment/household/resident tables. All code
// matches are case-sensitive exact matches.

// isDuplicateKey reports whether err is a unique-constraint violation. The
// translated sentinel covers drivers opened with TranslateError; the message
// probes cover raw MySQL and SQLite errors.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key")
}

// findHouseholdIDByCode returns the household id for an exact code match, or
// 0 when no household carries the code.
func findHouseholdIDByCode(db *gorm.DB, code string) (uint, error) {
	var household models.Household
	err := db.Select("id").Where("household_code = ?", code).First(&household).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, errs.Store("failed to look up household by code", err)
	}
	return household.ID, nil
}

// findActiveHouseholdIDByApartmentCode returns the first active household
// mapped to the apartment code, or 0 when none exists.
func findActiveHouseholdIDByApartmentCode(db *gorm.DB, apartmentCode string) (uint, error) {
	var household models.Household
	err := db.
		Select("households.*").
		Joins("JOIN apartments ON apartments.id = households.apartment_id").
		Where("apartments.apartment_code = ? AND households.status = ?", apartmentCode, models.HouseholdActive).
		Order("households.id").
		First(&household).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, errs.Store("failed to look up household by apartment code", err)
	}
	return household.ID, nil
}

// householdCodeByID returns the stored code of a household.
func householdCodeByID(db *gorm.DB, householdID uint) (string, error) {
	var household models.Household
	if err := db.Select("household_code").First(&household, householdID).Error; err != nil {
		return "", errs.Store("failed to read household code", err)
	}
	return household.HouseholdCode, nil
}

// apartmentCodeByHouseholdID returns the code of the apartment a household is
// currently mapped to.
func apartmentCodeByHouseholdID(db *gorm.DB, householdID uint) (string, error) {
	var apartment models.Apartment
	err := db.
		Select("apartments.*").
		Joins("JOIN households ON households.apartment_id = apartments.id").
		Where("households.id = ?", householdID).
		First(&apartment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errs.Store("failed to read apartment code for household", err)
	}
	return apartment.ApartmentCode, nil
}

// hasActiveHeadInApartment reports whether any household mapped to the
// apartment code already has an active head-of-household resident,
// excluding residents linked to excludeUserID (nil excludes nobody).
func hasActiveHeadInApartment(db *gorm.DB, apartmentCode string, excludeUserID *uint) (bool, error) {
	query := db.Model(&models.Resident{}).
		Joins("JOIN households ON households.id = residents.household_id").
		Joins("JOIN apartments ON apartments.id = households.apartment_id").
		Where("apartments.apartment_code = ?", apartmentCode).
		Where("residents.relationship = ?", models.RelationHead).
		Where("residents.status = ?", models.ResidencyActive)
	if excludeUserID != nil {
		query = query.Where("residents.user_id IS NULL OR residents.user_id != ?", *excludeUserID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, errs.Store("failed to check apartment occupancy", err)
	}
	return count > 0, nil
}

// findOrCreateApartment resolves an apartment code to an id, creating the
// apartment with default physical attributes when it does not exist yet.
// An empty code synthesizes a placeholder apartment. A duplicate-key failure
// during create is treated as "already exists" and retried once as a lookup.
func findOrCreateApartment(db *gorm.DB, apartmentCode string) (uint, error) {
	if apartmentCode == "" {
		apartmentCode = utils.PlaceholderApartmentCode()
	}

	var apartment models.Apartment
	err := db.Where("apartment_code = ?", apartmentCode).First(&apartment).Error
	if err == nil {
		return apartment.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, errs.Store("failed to look up apartment", err)
	}

	created := models.NewDefaultApartment(apartmentCode)
	if err := db.Create(created).Error; err != nil {
		if isDuplicateKey(err) {
			var existing models.Apartment
			if lookupErr := db.Where("apartment_code = ?", apartmentCode).First(&existing).Error; lookupErr == nil {
				return existing.ID, nil
			}
			return 0, errs.Conflict("apartment code %q was created concurrently and could not be re-read", apartmentCode)
		}
		return 0, errs.Store("failed to create apartment", err)
	}
	return created.ID, nil
}
