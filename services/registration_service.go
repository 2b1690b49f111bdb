package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/config"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/internal/errs"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/models"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/utils"

	"gorm.io/gorm"
)

// RegistrationRequest carries the self-service head-of-household profile
// submitted by a user. HouseholdCode and ApartmentCode are both optional;
// the resolver synthesizes placeholders for whatever is missing.
type RegistrationRequest struct {
	FullName         string     `json:"full_name" binding:"required"`
	IDCard           string     `json:"id_card" binding:"required"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Gender           string     `json:"gender"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email"`
	Occupation       string     `json:"occupation"`
	PermanentAddress string     `json:"permanent_address"`
	HouseholdCode    string     `json:"household_code"`
	ApartmentCode    string     `json:"apartment_code"`
}

type InterfaceRegistrationService interface {
	RegisterHeadOfHousehold(userID uint, req *RegistrationRequest) (*models.Resident, error)
	CreateHousehold(apartmentCode, householdCode, ownerName, ownerPhone, ownerEmail string) (*models.Household, error)
	GetProfile(userID uint) (*models.Resident, error)
}

type RegistrationService struct {
	DB     *gorm.DB
	Config *config.Config
	locks  *keyedMutex
}

func NewRegistrationService(db *gorm.DB, cfg *config.Config) InterfaceRegistrationService {
	return &RegistrationService{
		DB:     db,
		Config: cfg,
		locks:  newKeyedMutex(),
	}
}

// RegisterHeadOfHousehold records or updates the head-of-household profile
// for a user, resolving the household it belongs to from the submitted codes.
// Repeating the call with the same payload is a no-op apart from field
// updates. The whole sequence runs under an advisory lock on the apartment
// code and inside one transaction, so two users racing for the same
// apartment serialize and the loser gets a conflict instead of a second head.
func (s *RegistrationService) RegisterHeadOfHousehold(userID uint, req *RegistrationRequest) (*models.Resident, error) {
	if req == nil {
		return nil, errs.Validation("registration payload is required")
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.IDCard = strings.TrimSpace(req.IDCard)
	req.HouseholdCode = strings.TrimSpace(req.HouseholdCode)
	req.ApartmentCode = strings.TrimSpace(req.ApartmentCode)
	if req.FullName == "" {
		return nil, errs.Validation("full name is required")
	}
	if req.IDCard == "" {
		return nil, errs.Validation("id card number is required")
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user %d not found", userID)
		}
		return nil, errs.Store("failed to load user", err)
	}

	var existing *models.Resident
	var resident models.Resident
	err := s.DB.Preload("Household.Apartment").Where("user_id = ?", userID).First(&resident).Error
	if err == nil {
		existing = &resident
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Store("failed to load resident profile", err)
	}

	currentApartmentCode := ""
	if existing != nil && existing.Household != nil && existing.Household.Apartment != nil {
		currentApartmentCode = existing.Household.Apartment.ApartmentCode
	}

	unlock := s.locks.Lock(s.lockKey(userID, req.ApartmentCode, currentApartmentCode))
	defer unlock()

	var result *models.Resident
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		householdID, err := s.resolveHousehold(tx, userID, req)
		if err != nil {
			return err
		}

		saved, err := s.upsertHeadResident(tx, userID, householdID, req, existing)
		if err != nil {
			return err
		}

		if err := s.ensureCurrentMonthFee(tx, householdID); err != nil {
			return err
		}

		if err := s.syncUserContact(tx, &user, req); err != nil {
			return err
		}

		result = saved
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	config.Info("registered head of household: user=%d resident=%d household=%d", userID, result.ID, result.HouseholdID)
	return result, nil
}

func (s *RegistrationService) lockKey(userID uint, requestCode, currentCode string) string {
	if requestCode != "" {
		return "apartment:" + requestCode
	}
	if currentCode != "" {
		return "apartment:" + currentCode
	}
	return fmt.Sprintf("user:%d", userID)
}

// resolveHousehold maps the submitted codes to a household id, creating
// apartments and households as needed. Precedence: an existing household
// code wins, then an active household on the apartment code, then creation.
func (s *RegistrationService) resolveHousehold(tx *gorm.DB, userID uint, req *RegistrationRequest) (uint, error) {
	// 1. Exact household-code match.
	if req.HouseholdCode != "" {
		householdID, err := findHouseholdIDByCode(tx, req.HouseholdCode)
		if err != nil {
			return 0, err
		}
		if householdID != 0 {
			if err := s.adoptHousehold(tx, userID, householdID, req.ApartmentCode); err != nil {
				return 0, err
			}
			return householdID, nil
		}
	}

	// 2. Active household already mapped to the apartment code.
	if req.ApartmentCode != "" {
		householdID, err := findActiveHouseholdIDByApartmentCode(tx, req.ApartmentCode)
		if err != nil {
			return 0, err
		}
		if householdID != 0 {
			occupied, err := hasActiveHeadInApartment(tx, req.ApartmentCode, &userID)
			if err != nil {
				return 0, err
			}
			if occupied {
				return 0, errs.Conflict("apartment %s already has an active head of household", req.ApartmentCode)
			}
			if err := s.reconcileHouseholdCode(tx, householdID, req.HouseholdCode, req.ApartmentCode); err != nil {
				return 0, err
			}
			return householdID, nil
		}
	}

	// 3. Create a household, and the apartment too when necessary.
	if req.ApartmentCode != "" {
		occupied, err := hasActiveHeadInApartment(tx, req.ApartmentCode, &userID)
		if err != nil {
			return 0, err
		}
		if occupied {
			return 0, errs.Conflict("apartment %s already has an active head of household", req.ApartmentCode)
		}
	}

	apartmentID, err := findOrCreateApartment(tx, req.ApartmentCode)
	if err != nil {
		return 0, err
	}

	code := req.HouseholdCode
	if code == "" {
		code = utils.SynthesizedHouseholdCode(userID)
	}

	household := &models.Household{
		ApartmentID:   apartmentID,
		HouseholdCode: code,
		OwnerName:     req.FullName,
		OwnerPhone:    req.Phone,
		OwnerEmail:    req.Email,
		Status:        models.HouseholdActive,
	}
	now := time.Now()
	household.RegistrationDate = &now

	if err := tx.Create(household).Error; err != nil {
		if isDuplicateKey(err) {
			// Lost a create race; the code exists now, adopt it.
			householdID, lookupErr := findHouseholdIDByCode(tx, code)
			if lookupErr != nil {
				return 0, lookupErr
			}
			if householdID != 0 {
				return householdID, nil
			}
			return 0, errs.Conflict("household code %q was created concurrently and could not be re-read", code)
		}
		return 0, errs.Store("failed to create household", err)
	}
	return household.ID, nil
}

// adoptHousehold joins the user to a household matched by code, moving the
// household onto a different apartment when the submitted apartment code
// disagrees with the stored mapping. The one-active-head rule is checked at
// wherever the household ends up.
func (s *RegistrationService) adoptHousehold(tx *gorm.DB, userID, householdID uint, apartmentCode string) error {
	currentCode, err := apartmentCodeByHouseholdID(tx, householdID)
	if err != nil {
		return err
	}

	moving := apartmentCode != "" && apartmentCode != currentCode
	targetCode := currentCode
	if moving {
		targetCode = apartmentCode
	}

	if targetCode != "" {
		occupied, err := hasActiveHeadInApartment(tx, targetCode, &userID)
		if err != nil {
			return err
		}
		if occupied {
			return errs.Conflict("apartment %s already has an active head of household", targetCode)
		}
	}

	if !moving {
		return nil
	}

	// The household's own residents move with it, so a head belonging to
	// someone else blocks the move even though the target looks empty.
	var heads int64
	err = tx.Model(&models.Resident{}).
		Where("household_id = ?", householdID).
		Where("relationship = ?", models.RelationHead).
		Where("status = ?", models.ResidencyActive).
		Where("user_id IS NULL OR user_id != ?", userID).
		Count(&heads).Error
	if err != nil {
		return errs.Store("failed to check household heads", err)
	}
	if heads > 0 {
		return errs.Conflict("household already has an active head of household")
	}

	apartmentID, err := findOrCreateApartment(tx, apartmentCode)
	if err != nil {
		return err
	}
	if err := tx.Model(&models.Household{}).Where("id = ?", householdID).
		Update("apartment_id", apartmentID).Error; err != nil {
		return errs.Store("failed to move household to apartment", err)
	}
	return nil
}

// reconcileHouseholdCode renames a matched household to the submitted code,
// or swaps a synthesized placeholder code for one derived from the apartment.
func (s *RegistrationService) reconcileHouseholdCode(tx *gorm.DB, householdID uint, requestedCode, apartmentCode string) error {
	currentCode, err := householdCodeByID(tx, householdID)
	if err != nil {
		return err
	}

	newCode := ""
	switch {
	case requestedCode != "" && requestedCode != currentCode:
		newCode = requestedCode
	case requestedCode == "" && utils.IsPlaceholderCode(currentCode):
		newCode = utils.HouseholdCodeFromApartment(apartmentCode)
	default:
		return nil
	}

	err = tx.Model(&models.Household{}).Where("id = ?", householdID).
		Update("household_code", newCode).Error
	if err != nil {
		if isDuplicateKey(err) {
			if requestedCode != "" {
				return errs.Conflict("household code %s is already in use", newCode)
			}
			// Placeholder upgrade collided; keep the placeholder.
			return nil
		}
		return errs.Store("failed to update household code", err)
	}
	return nil
}

func (s *RegistrationService) upsertHeadResident(tx *gorm.DB, userID, householdID uint, req *RegistrationRequest, existing *models.Resident) (*models.Resident, error) {
	if existing != nil {
		existing.HouseholdID = householdID
		existing.FullName = req.FullName
		existing.IDCard = req.IDCard
		existing.DateOfBirth = req.DateOfBirth
		existing.Gender = req.Gender
		existing.Phone = req.Phone
		existing.Email = req.Email
		existing.Occupation = req.Occupation
		existing.PermanentAddress = req.PermanentAddress
		existing.Relationship = models.RelationHead
		existing.Status = models.ResidencyActive
		existing.Household = nil
		if err := tx.Save(existing).Error; err != nil {
			return nil, errs.Store("failed to update resident profile", err)
		}
		return existing, nil
	}

	resident := &models.Resident{
		HouseholdID:      householdID,
		UserID:           &userID,
		FullName:         req.FullName,
		IDCard:           req.IDCard,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		Phone:            req.Phone,
		Email:            req.Email,
		Occupation:       req.Occupation,
		PermanentAddress: req.PermanentAddress,
		Relationship:     models.RelationHead,
		Status:           models.ResidencyActive,
	}
	if err := tx.Create(resident).Error; err != nil {
		return nil, errs.Store("failed to create resident profile", err)
	}
	return resident, nil
}

// ensureCurrentMonthFee seeds the household's first monthly bill so a fresh
// registration immediately shows an amount due. Any existing row for the
// current period, regardless of fee type, suppresses the seed.
func (s *RegistrationService) ensureCurrentMonthFee(tx *gorm.DB, householdID uint) error {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	var count int64
	err := tx.Model(&models.FeeCollection{}).
		Where("household_id = ? AND month = ? AND year = ?", householdID, month, year).
		Count(&count).Error
	if err != nil {
		return errs.Store("failed to check current month fees", err)
	}
	if count > 0 {
		return nil
	}

	fee := &models.FeeCollection{
		HouseholdID: householdID,
		Month:       &month,
		Year:        &year,
		Amount:      s.Config.DefaultMonthlyFee,
		PaidAmount:  0,
		Status:      models.PaymentUnpaid,
		Kind:        models.FeeKindPeriodic,
	}
	if err := tx.Create(fee).Error; err != nil {
		if isDuplicateKey(err) {
			return nil
		}
		return errs.Store("failed to create monthly fee", err)
	}
	return nil
}

func (s *RegistrationService) syncUserContact(tx *gorm.DB, user *models.User, req *RegistrationRequest) error {
	updates := map[string]interface{}{}
	if req.FullName != "" && req.FullName != user.FullName {
		updates["full_name"] = req.FullName
	}
	if req.Phone != "" && req.Phone != user.Phone {
		updates["phone"] = req.Phone
	}
	if req.Email != "" && req.Email != user.Email {
		updates["email"] = req.Email
	}
	if len(updates) == 0 {
		return nil
	}
	if err := tx.Model(user).Updates(updates).Error; err != nil {
		return errs.Store("failed to sync user contact info", err)
	}
	return nil
}

// CreateHousehold is the administrative path: both codes are required, the
// household code must be free, and the apartment must not already have an
// active head of household.
func (s *RegistrationService) CreateHousehold(apartmentCode, householdCode, ownerName, ownerPhone, ownerEmail string) (*models.Household, error) {
	apartmentCode = strings.TrimSpace(apartmentCode)
	householdCode = strings.TrimSpace(householdCode)
	if apartmentCode == "" {
		return nil, errs.Validation("apartment code is required")
	}
	if householdCode == "" {
		return nil, errs.Validation("household code is required")
	}

	unlock := s.locks.Lock("apartment:" + apartmentCode)
	defer unlock()

	var household *models.Household
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		existingID, err := findHouseholdIDByCode(tx, householdCode)
		if err != nil {
			return err
		}
		if existingID != 0 {
			return errs.Validation("household code %s is already in use", householdCode)
		}

		occupied, err := hasActiveHeadInApartment(tx, apartmentCode, nil)
		if err != nil {
			return err
		}
		if occupied {
			return errs.Conflict("apartment %s already has an active head of household", apartmentCode)
		}

		apartmentID, err := findOrCreateApartment(tx, apartmentCode)
		if err != nil {
			return err
		}

		now := time.Now()
		household = &models.Household{
			ApartmentID:      apartmentID,
			HouseholdCode:    householdCode,
			OwnerName:        ownerName,
			OwnerPhone:       ownerPhone,
			OwnerEmail:       ownerEmail,
			RegistrationDate: &now,
			Status:           models.HouseholdActive,
		}
		if err := tx.Create(household).Error; err != nil {
			if isDuplicateKey(err) {
				return errs.Validation("household code %s is already in use", householdCode)
			}
			return errs.Store("failed to create household", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return household, nil
}

// GetProfile returns the resident profile linked to a user account, with
// its household and apartment preloaded.
func (s *RegistrationService) GetProfile(userID uint) (*models.Resident, error) {
	var resident models.Resident
	err := s.DB.Preload("Household.Apartment").Where("user_id = ?", userID).First(&resident).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("no resident profile for user %d", userID)
	}
	if err != nil {
		return nil, errs.Store("failed to load resident profile", err)
	}
	return &resident, nil
}
