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

type InterfaceResidentService interface {
	GetAllResidents(page, pageSize int) ([]models.Resident, models.PaginationResult, error)
	SearchResidents(name, apartmentCode, householdCode string, page, pageSize int) ([]models.Resident, models.PaginationResult, error)
	GetResidentByID(id uint) (*models.Resident, error)
	GetResidentsByHousehold(householdID uint) ([]models.Resident, error)
	CreateResident(resident *models.Resident) error
	UpdateResident(id uint, updates map[string]interface{}) (*models.Resident, error)
	DeleteResident(id uint) error
	RegisterTemporaryResident(id uint, from, to *time.Time, reason string) (*models.Resident, error)
	RegisterTemporaryAbsent(id uint, from, to *time.Time, reason string) (*models.Resident, error)
	CancelTemporaryStatus(id uint) (*models.Resident, error)
}

type ResidentService struct {
	DB *gorm.DB
}

func NewResidentService(db *gorm.DB) InterfaceResidentService {
	return &ResidentService{DB: db}
}

// GetAllResidents pages through heads of household only, hiding residents
// whose households still sit in synthesized placeholder apartments.
func (s *ResidentService) GetAllResidents(page, pageSize int) ([]models.Resident, models.PaginationResult, error) {
	base := s.DB.Model(&models.Resident{}).
		Joins("JOIN households ON households.id = residents.household_id").
		Joins("JOIN apartments ON apartments.id = households.apartment_id").
		Where("residents.relationship = ?", models.RelationHead).
		Where("apartments.apartment_code NOT LIKE ?", utils.PlaceholderPrefix+"%")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, models.PaginationResult{}, errs.Store("failed to count residents", err)
	}

	var residents []models.Resident
	err := base.Select("residents.*").
		Preload("Household.Apartment").
		Order("residents.id").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&residents).Error
	if err != nil {
		return nil, models.PaginationResult{}, errs.Store("failed to list residents", err)
	}
	return residents, models.NewPaginationResult(int(total), page, pageSize), nil
}

func (s *ResidentService) SearchResidents(name, apartmentCode, householdCode string, page, pageSize int) ([]models.Resident, models.PaginationResult, error) {
	query := s.DB.Model(&models.Resident{}).
		Joins("JOIN households ON households.id = residents.household_id").
		Joins("JOIN apartments ON apartments.id = households.apartment_id")

	if name != "" {
		query = query.Where("residents.full_name LIKE ?", "%"+name+"%")
	}
	if apartmentCode != "" {
		query = query.Where("apartments.apartment_code LIKE ?", "%"+apartmentCode+"%")
	}
	if householdCode != "" {
		query = query.Where("households.household_code LIKE ?", "%"+householdCode+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, models.PaginationResult{}, errs.Store("failed to count matching residents", err)
	}

	var residents []models.Resident
	err := query.Select("residents.*").
		Preload("Household.Apartment").
		Order("residents.id").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&residents).Error
	if err != nil {
		return nil, models.PaginationResult{}, errs.Store("failed to search residents", err)
	}
	return residents, models.NewPaginationResult(int(total), page, pageSize), nil
}

func (s *ResidentService) GetResidentByID(id uint) (*models.Resident, error) {
	var resident models.Resident
	err := s.DB.Preload("Household.Apartment").First(&resident, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("resident %d not found", id)
	}
	if err != nil {
		return nil, errs.Store("failed to load resident", err)
	}
	return &resident, nil
}

func (s *ResidentService) GetResidentsByHousehold(householdID uint) ([]models.Resident, error) {
	var residents []models.Resident
	err := s.DB.Where("household_id = ?", householdID).Order("id").Find(&residents).Error
	if err != nil {
		return nil, errs.Store("failed to list household members", err)
	}
	return residents, nil
}

// CreateResident adds a household member. Relationship defaults to member
// and status to active; administrators adding a second head must do so
// explicitly and the apartment occupancy rule still applies.
func (s *ResidentService) CreateResident(resident *models.Resident) error {
	if resident == nil {
		return errs.Validation("resident payload is required")
	}
	resident.FullName = strings.TrimSpace(resident.FullName)
	if resident.FullName == "" {
		return errs.Validation("full name is required")
	}
	if resident.HouseholdID == 0 {
		return errs.Validation("household id is required")
	}

	var household models.Household
	if err := s.DB.Preload("Apartment").First(&household, resident.HouseholdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("household %d not found", resident.HouseholdID)
		}
		return errs.Store("failed to load household", err)
	}

	if resident.Relationship == models.RelationUnknown {
		resident.Relationship = models.RelationMember
	}
	if resident.Status == models.ResidencyUnknown {
		resident.Status = models.ResidencyActive
	}

	if resident.IsActiveHead() && household.Apartment != nil {
		occupied, err := hasActiveHeadInApartment(s.DB, household.Apartment.ApartmentCode, resident.UserID)
		if err != nil {
			return err
		}
		if occupied {
			return errs.Conflict("apartment %s already has an active head of household", household.Apartment.ApartmentCode)
		}
	}

	if err := s.DB.Create(resident).Error; err != nil {
		if isDuplicateKey(err) {
			return errs.Conflict("user is already linked to a resident profile")
		}
		return errs.Store("failed to create resident", err)
	}
	return nil
}

func (s *ResidentService) UpdateResident(id uint, updates map[string]interface{}) (*models.Resident, error) {
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return nil, err
	}

	if name, ok := updates["full_name"]; ok {
		n, isString := name.(string)
		if !isString || strings.TrimSpace(n) == "" {
			return nil, errs.Validation("full name is required")
		}
		updates["full_name"] = strings.TrimSpace(n)
	}

	if err := s.DB.Model(resident).Updates(updates).Error; err != nil {
		return nil, errs.Store("failed to update resident", err)
	}
	return s.GetResidentByID(id)
}

// DeleteResident removes a resident. Deleting a head of household also
// removes the household's fee records; deleting the last member removes the
// household itself. The cascade runs in one transaction.
func (s *ResidentService) DeleteResident(id uint) error {
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if resident.Relationship == models.RelationHead {
			if err := tx.Where("household_id = ?", resident.HouseholdID).
				Delete(&models.FeeCollection{}).Error; err != nil {
				return errs.Store("failed to delete household fees", err)
			}
		}

		if err := tx.Delete(&models.Resident{}, id).Error; err != nil {
			return errs.Store("failed to delete resident", err)
		}

		var remaining int64
		if err := tx.Model(&models.Resident{}).
			Where("household_id = ?", resident.HouseholdID).
			Count(&remaining).Error; err != nil {
			return errs.Store("failed to count remaining members", err)
		}
		if remaining == 0 {
			if err := tx.Where("household_id = ?", resident.HouseholdID).
				Delete(&models.FeeCollection{}).Error; err != nil {
				return errs.Store("failed to delete household fees", err)
			}
			if err := tx.Delete(&models.Household{}, resident.HouseholdID).Error; err != nil {
				return errs.Store("failed to delete empty household", err)
			}
		}

		config.Info("deleted resident %d (household %d, %d members remaining)", id, resident.HouseholdID, remaining)
		return nil
	})
}

// RegisterTemporaryResident opens a temporary residence window. Any open
// temporary absence window is cleared, the two states are exclusive.
func (s *ResidentService) RegisterTemporaryResident(id uint, from, to *time.Time, reason string) (*models.Resident, error) {
	if err := validateTemporaryWindow(from, to); err != nil {
		return nil, err
	}
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":                  models.ResidencyTemporaryResident,
		"temporary_resident_from": from,
		"temporary_resident_to":   to,
		"temporary_absent_from":   nil,
		"temporary_absent_to":     nil,
		"temporary_reason":        reason,
	}
	if err := s.DB.Model(resident).Updates(updates).Error; err != nil {
		return nil, errs.Store("failed to register temporary residence", err)
	}
	return s.GetResidentByID(id)
}

// RegisterTemporaryAbsent opens a temporary absence window, clearing any open
// temporary residence window.
func (s *ResidentService) RegisterTemporaryAbsent(id uint, from, to *time.Time, reason string) (*models.Resident, error) {
	if err := validateTemporaryWindow(from, to); err != nil {
		return nil, err
	}
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":                  models.ResidencyTemporaryAbsent,
		"temporary_absent_from":   from,
		"temporary_absent_to":     to,
		"temporary_resident_from": nil,
		"temporary_resident_to":   nil,
		"temporary_reason":        reason,
	}
	if err := s.DB.Model(resident).Updates(updates).Error; err != nil {
		return nil, errs.Store("failed to register temporary absence", err)
	}
	return s.GetResidentByID(id)
}

// CancelTemporaryStatus returns the resident to active and clears both
// windows.
func (s *ResidentService) CancelTemporaryStatus(id uint) (*models.Resident, error) {
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return nil, err
	}
	if resident.Status != models.ResidencyTemporaryResident && resident.Status != models.ResidencyTemporaryAbsent {
		return nil, errs.Validation("resident %d has no temporary status to cancel", id)
	}

	updates := map[string]interface{}{
		"status":                  models.ResidencyActive,
		"temporary_resident_from": nil,
		"temporary_resident_to":   nil,
		"temporary_absent_from":   nil,
		"temporary_absent_to":     nil,
		"temporary_reason":        "",
	}
	if err := s.DB.Model(resident).Updates(updates).Error; err != nil {
		return nil, errs.Store("failed to cancel temporary status", err)
	}
	return s.GetResidentByID(id)
}

func validateTemporaryWindow(from, to *time.Time) error {
	if from == nil {
		return errs.Validation("start date is required")
	}
	if to != nil && !to.After(*from) {
		return errs.Validation("end date must be after the start date")
	}
	return nil
}
