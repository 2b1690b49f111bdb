package services

import (
	"errors"
	"strings"
	"time"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/config"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/internal/errs"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/models"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/utils"

	"gorm.io/gorm"
)

type InterfaceFeeTypeService interface {
	GetAllFeeTypes() ([]models.FeeType, error)
	GetActiveFeeTypes() ([]models.FeeType, error)
	GetFeeTypeByID(id uint) (*models.FeeType, error)
	CreateFeeType(name, description string, defaultAmount float64, isActive bool) (*models.FeeType, error)
	UpdateFeeType(id uint, updates map[string]interface{}) (*models.FeeType, error)
	DeleteFeeType(id uint) error
	CollectFeeForAllHouseholds(feeTypeID uint, month, year int, deadline *time.Time) (int, error)
}

type FeeTypeService struct {
	DB             *gorm.DB
	FeeCollections InterfaceFeeCollectionService
}

func NewFeeTypeService(db *gorm.DB, feeCollections InterfaceFeeCollectionService) InterfaceFeeTypeService {
	return &FeeTypeService{DB: db, FeeCollections: feeCollections}
}

func (s *FeeTypeService) GetAllFeeTypes() ([]models.FeeType, error) {
	var feeTypes []models.FeeType
	if err := s.DB.Order("name").Find(&feeTypes).Error; err != nil {
		return nil, errs.Store("failed to list fee types", err)
	}
	return feeTypes, nil
}

func (s *FeeTypeService) GetActiveFeeTypes() ([]models.FeeType, error) {
	var feeTypes []models.FeeType
	if err := s.DB.Where("is_active = ?", true).Order("name").Find(&feeTypes).Error; err != nil {
		return nil, errs.Store("failed to list active fee types", err)
	}
	return feeTypes, nil
}

func (s *FeeTypeService) GetFeeTypeByID(id uint) (*models.FeeType, error) {
	var feeType models.FeeType
	err := s.DB.First(&feeType, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("fee type %d not found", id)
	}
	if err != nil {
		return nil, errs.Store("failed to load fee type", err)
	}
	return &feeType, nil
}

// CreateFeeType enforces exact-match name uniqueness.
func (s *FeeTypeService) CreateFeeType(name, description string, defaultAmount float64, isActive bool) (*models.FeeType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.Validation("fee type name is required")
	}
	if defaultAmount < 0 {
		return nil, errs.Validation("default amount must not be negative")
	}

	var count int64
	if err := s.DB.Model(&models.FeeType{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, errs.Store("failed to check fee type name", err)
	}
	if count > 0 {
		return nil, errs.Validation("fee type %s already exists", name)
	}

	feeType := &models.FeeType{
		Name:          name,
		Description:   description,
		DefaultAmount: defaultAmount,
		IsActive:      isActive,
	}
	if err := s.DB.Create(feeType).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, errs.Validation("fee type %s already exists", name)
		}
		return nil, errs.Store("failed to create fee type", err)
	}
	return feeType, nil
}

func (s *FeeTypeService) UpdateFeeType(id uint, updates map[string]interface{}) (*models.FeeType, error) {
	feeType, err := s.GetFeeTypeByID(id)
	if err != nil {
		return nil, err
	}

	if name, ok := updates["name"]; ok {
		n, ok := name.(string)
		n = strings.TrimSpace(n)
		if !ok || n == "" {
			return nil, errs.Validation("fee type name is required")
		}
		if n != feeType.Name {
			var count int64
			if err := s.DB.Model(&models.FeeType{}).Where("name = ? AND id != ?", n, id).Count(&count).Error; err != nil {
				return nil, errs.Store("failed to check fee type name", err)
			}
			if count > 0 {
				return nil, errs.Validation("fee type %s already exists", n)
			}
		}
		updates["name"] = n
	}
	if amount, ok := updates["default_amount"]; ok {
		f, ok := amount.(float64)
		if !ok || f < 0 {
			return nil, errs.Validation("default amount must be a non-negative number")
		}
	}

	if err := s.DB.Model(feeType).Updates(updates).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, errs.Validation("fee type name is already in use")
		}
		return nil, errs.Store("failed to update fee type", err)
	}
	return s.GetFeeTypeByID(id)
}

// DeleteFeeType removes the fee type row. Existing fee collections keep their
// fee_type_id and simply lose the joined record.
func (s *FeeTypeService) DeleteFeeType(id uint) error {
	result := s.DB.Delete(&models.FeeType{}, id)
	if result.Error != nil {
		return errs.Store("failed to delete fee type", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("fee type %d not found", id)
	}
	return nil
}

// CollectFeeForAllHouseholds bills every eligible household for one period
// with the fee type's default amount. Eligible means the household has an
// active head of household and does not live in a synthesized placeholder
// apartment. Households already billed for the period and type are skipped;
// the returned count is the number of fees actually created.
func (s *FeeTypeService) CollectFeeForAllHouseholds(feeTypeID uint, month, year int, deadline *time.Time) (int, error) {
	feeType, err := s.GetFeeTypeByID(feeTypeID)
	if err != nil {
		return 0, err
	}
	if !feeType.IsActive {
		return 0, errs.Validation("fee type %s is inactive and cannot be billed", feeType.Name)
	}
	if month < 1 || month > 12 {
		return 0, errs.Validation("month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return 0, errs.Validation("year %d is out of range", year)
	}

	var households []models.Household
	err = s.DB.Model(&models.Household{}).
		Select("DISTINCT households.*").
		Joins("JOIN apartments ON apartments.id = households.apartment_id").
		Joins("JOIN residents ON residents.household_id = households.id").
		Where("apartments.apartment_code NOT LIKE ?", utils.PlaceholderPrefix+"%").
		Where("residents.relationship = ?", models.RelationHead).
		Where("residents.status = ?", models.ResidencyActive).
		Find(&households).Error
	if err != nil {
		return 0, errs.Store("failed to list billable households", err)
	}
	if len(households) == 0 {
		return 0, errs.Validation("no households to bill")
	}

	created := 0
	skipped := 0
	for _, household := range households {
		exists, err := s.FeeCollections.FeeCollectionExists(household.ID, month, year, &feeTypeID)
		if err != nil {
			return created, err
		}
		if exists {
			skipped++
			continue
		}
		_, err = s.FeeCollections.CreateFeeCollection(household.ID, month, year, feeType.DefaultAmount, &feeTypeID, deadline)
		if err != nil {
			if errs.IsValidation(err) {
				// Raced with another biller for this household; treat as skipped.
				skipped++
				continue
			}
			return created, err
		}
		created++
	}

	if created == 0 && skipped > 0 {
		return 0, errs.Validation("all households are already billed for %d/%d", month, year)
	}

	config.Info("bulk billing: fee_type=%d period=%d/%d created=%d skipped=%d", feeTypeID, month, year, created, skipped)
	return created, nil
}
