package services

import (
	"errors"
	"time"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/internal/errs"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/models"

	"gorm.io/gorm"
)

// FeeSearchParams filters the fee ledger. Nil/empty fields are ignored.
type FeeSearchParams struct {
	ApartmentCode string
	HouseholdCode string
	OwnerName     string
	Month         *int
	Year          *int
	Status        string
}

type InterfaceFeeCollectionService interface {
	FeeCollectionExists(householdID uint, month, year int, feeTypeID *uint) (bool, error)
	CreateFeeCollection(householdID uint, month, year int, amount float64, feeTypeID *uint, deadline *time.Time) (*models.FeeCollection, error)
	CreateNonPeriodicFee(householdID uint, amount float64, reason string, deadline *time.Time) (*models.FeeCollection, error)
	GetAllFeeCollections(page, pageSize int) ([]models.FeeCollection, models.PaginationResult, error)
	SearchFeeCollections(params FeeSearchParams, page, pageSize int) ([]models.FeeCollection, models.PaginationResult, error)
	GetFeesByHousehold(householdID uint) ([]models.FeeCollection, error)
	GetFeesByMonthYear(month, year int) ([]models.FeeCollection, error)
	GetFeeCollectionByID(id uint) (*models.FeeCollection, error)
	UpdateFeeCollection(id uint, updates map[string]interface{}) (*models.FeeCollection, error)
	MarkAsPaid(id uint, paymentDate time.Time, paymentMethod string) (*models.FeeCollection, error)
	DeleteFeeCollection(id uint) error
}

type FeeCollectionService struct {
	DB *gorm.DB
}

func NewFeeCollectionService(db *gorm.DB) InterfaceFeeCollectionService {
	return &FeeCollectionService{DB: db}
}

// FeeCollectionExists reports whether a fee row already covers the given
// household, billing period and fee type. A nil feeTypeID always reports
// false: untyped rows carry no duplicate protection, matching how legacy
// rows without a fee type behaved.
func (s *FeeCollectionService) FeeCollectionExists(householdID uint, month, year int, feeTypeID *uint) (bool, error) {
	if feeTypeID == nil {
		return false, nil
	}
	var count int64
	err := s.DB.Model(&models.FeeCollection{}).
		Where("household_id = ? AND month = ? AND year = ? AND fee_type_id = ?",
			householdID, month, year, *feeTypeID).
		Count(&count).Error
	if err != nil {
		return false, errs.Store("failed to check for existing fee", err)
	}
	return count > 0, nil
}

// CreateFeeCollection bills a household for one period. The duplicate guard
// runs application-side first for a clean message, and the composite unique
// index backstops races.
func (s *FeeCollectionService) CreateFeeCollection(householdID uint, month, year int, amount float64, feeTypeID *uint, deadline *time.Time) (*models.FeeCollection, error) {
	if householdID == 0 {
		return nil, errs.Validation("household id is required")
	}
	if month < 1 || month > 12 {
		return nil, errs.Validation("month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, errs.Validation("year %d is out of range", year)
	}
	if amount < 0 {
		return nil, errs.Validation("amount must not be negative")
	}

	var household models.Household
	if err := s.DB.First(&household, householdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("household %d not found", householdID)
		}
		return nil, errs.Store("failed to load household", err)
	}

	exists, err := s.FeeCollectionExists(householdID, month, year, feeTypeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Validation("duplicate fee: household %d is already billed for %d/%d with this fee type", householdID, month, year)
	}

	fee := &models.FeeCollection{
		HouseholdID:     householdID,
		Month:           &month,
		Year:            &year,
		FeeTypeID:       feeTypeID,
		Amount:          amount,
		PaidAmount:      0,
		Status:          models.PaymentUnpaid,
		Kind:            models.FeeKindPeriodic,
		PaymentDeadline: deadline,
	}
	if err := s.DB.Create(fee).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, errs.Validation("duplicate fee: household %d is already billed for %d/%d with this fee type", householdID, month, year)
		}
		return nil, errs.Store("failed to create fee collection", err)
	}
	return fee, nil
}

// CreateNonPeriodicFee records a one-off charge (repairs, penalties). It has
// no billing period and therefore never trips the periodic duplicate guard.
func (s *FeeCollectionService) CreateNonPeriodicFee(householdID uint, amount float64, reason string, deadline *time.Time) (*models.FeeCollection, error) {
	if householdID == 0 {
		return nil, errs.Validation("household id is required")
	}
	if reason == "" {
		return nil, errs.Validation("a reason is required for one-off fees")
	}
	if amount < 0 {
		return nil, errs.Validation("amount must not be negative")
	}

	var household models.Household
	if err := s.DB.First(&household, householdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("household %d not found", householdID)
		}
		return nil, errs.Store("failed to load household", err)
	}

	fee := &models.FeeCollection{
		HouseholdID:     householdID,
		Amount:          amount,
		PaidAmount:      0,
		Status:          models.PaymentUnpaid,
		Kind:            models.FeeKindNonPeriodic,
		Reason:          reason,
		PaymentDeadline: deadline,
	}
	if err := s.DB.Create(fee).Error; err != nil {
		return nil, errs.Store("failed to create one-off fee", err)
	}
	return fee, nil
}

func (s *FeeCollectionService) GetAllFeeCollections(page, pageSize int) ([]models.FeeCollection, models.PaginationResult, error) {
	var total int64
	if err := s.DB.Model(&models.FeeCollection{}).Count(&total).Error; err != nil {
		return nil, models.PaginationResult{}, errs.Store("failed to count fee collections", err)
	}

	var fees []models.FeeCollection
	err := s.DB.Preload("Household.Apartment").Preload("FeeType").
		Order("year DESC, month DESC, id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&fees).Error
	if err != nil {
		return nil, models.PaginationResult{}, errs.Store("failed to list fee collections", err)
	}
	return fees, models.NewPaginationResult(int(total), page, pageSize), nil
}

func (s *FeeCollectionService) SearchFeeCollections(params FeeSearchParams, page, pageSize int) ([]models.FeeCollection, models.PaginationResult, error) {
	query := s.DB.Model(&models.FeeCollection{}).
		Joins("JOIN households ON households.id = fee_collections.household_id").
		Joins("JOIN apartments ON apartments.id = households.apartment_id")

	if params.ApartmentCode != "" {
		query = query.Where("apartments.apartment_code LIKE ?", "%"+params.ApartmentCode+"%")
	}
	if params.HouseholdCode != "" {
		query = query.Where("households.household_code LIKE ?", "%"+params.HouseholdCode+"%")
	}
	if params.OwnerName != "" {
		query = query.Where("households.owner_name LIKE ?", "%"+params.OwnerName+"%")
	}
	if params.Month != nil {
		query = query.Where("fee_collections.month = ?", *params.Month)
	}
	if params.Year != nil {
		query = query.Where("fee_collections.year = ?", *params.Year)
	}
	if params.Status != "" {
		query = query.Where("fee_collections.status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, models.PaginationResult{}, errs.Store("failed to count matching fees", err)
	}

	var fees []models.FeeCollection
	err := query.Select("fee_collections.*").
		Preload("Household.Apartment").Preload("FeeType").
		Order("fee_collections.year DESC, fee_collections.month DESC, fee_collections.id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&fees).Error
	if err != nil {
		return nil, models.PaginationResult{}, errs.Store("failed to search fee collections", err)
	}
	return fees, models.NewPaginationResult(int(total), page, pageSize), nil
}

func (s *FeeCollectionService) GetFeesByHousehold(householdID uint) ([]models.FeeCollection, error) {
	var fees []models.FeeCollection
	err := s.DB.Preload("FeeType").
		Where("household_id = ?", householdID).
		Order("year DESC, month DESC, id DESC").
		Find(&fees).Error
	if err != nil {
		return nil, errs.Store("failed to list household fees", err)
	}
	return fees, nil
}

func (s *FeeCollectionService) GetFeesByMonthYear(month, year int) ([]models.FeeCollection, error) {
	var fees []models.FeeCollection
	err := s.DB.Preload("Household.Apartment").Preload("FeeType").
		Where("month = ? AND year = ?", month, year).
		Order("id").
		Find(&fees).Error
	if err != nil {
		return nil, errs.Store("failed to list fees by period", err)
	}
	return fees, nil
}

func (s *FeeCollectionService) GetFeeCollectionByID(id uint) (*models.FeeCollection, error) {
	var fee models.FeeCollection
	err := s.DB.Preload("Household.Apartment").Preload("FeeType").First(&fee, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("fee record %d not found", id)
	}
	if err != nil {
		return nil, errs.Store("failed to load fee record", err)
	}
	return &fee, nil
}

// UpdateFeeCollection applies partial updates. Amount changes re-derive the
// payment status against the already-paid total.
func (s *FeeCollectionService) UpdateFeeCollection(id uint, updates map[string]interface{}) (*models.FeeCollection, error) {
	fee, err := s.GetFeeCollectionByID(id)
	if err != nil {
		return nil, err
	}

	if amount, ok := updates["amount"]; ok {
		f, ok := amount.(float64)
		if !ok || f < 0 {
			return nil, errs.Validation("amount must be a non-negative number")
		}
		updates["status"] = models.StatusFor(f, fee.PaidAmount)
	}

	if err := s.DB.Model(fee).Updates(updates).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, errs.Validation("duplicate fee: the updated period and fee type are already billed")
		}
		return nil, errs.Store("failed to update fee record", err)
	}
	return s.GetFeeCollectionByID(id)
}

// MarkAsPaid settles the full amount in one step.
func (s *FeeCollectionService) MarkAsPaid(id uint, paymentDate time.Time, paymentMethod string) (*models.FeeCollection, error) {
	fee, err := s.GetFeeCollectionByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"paid_amount":    fee.Amount,
		"status":         models.PaymentPaid,
		"payment_date":   paymentDate,
		"payment_method": paymentMethod,
	}
	if err := s.DB.Model(fee).Updates(updates).Error; err != nil {
		return nil, errs.Store("failed to mark fee as paid", err)
	}
	return s.GetFeeCollectionByID(id)
}

func (s *FeeCollectionService) DeleteFeeCollection(id uint) error {
	result := s.DB.Delete(&models.FeeCollection{}, id)
	if result.Error != nil {
		return errs.Store("failed to delete fee record", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("fee record %d not found", id)
	}
	return nil
}
