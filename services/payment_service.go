package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/config"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/internal/errs"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/models"

	"gorm.io/gorm"
)

type InterfacePaymentService interface {
	ProcessPayment(feeID uint, paymentAmount float64, paymentMethod string) (*models.FeeCollection, error)
	GetUnpaidFeesForUser(userID uint) ([]models.FeeCollection, error)
	GetTotalRemainingAmount(userID uint) (float64, error)
}

type PaymentService struct {
	DB    *gorm.DB
	locks *keyedMutex
}

func NewPaymentService(db *gorm.DB) InterfacePaymentService {
	return &PaymentService{
		DB:    db,
		locks: newKeyedMutex(),
	}
}

// ProcessPayment applies a payment against a fee record. Payments accumulate:
// each call adds to the paid total and re-derives the status from the new
// balance. Negative amounts are accepted and act as corrections or refunds.
// Concurrent payments against the same fee serialize on a per-fee lock.
func (s *PaymentService) ProcessPayment(feeID uint, paymentAmount float64, paymentMethod string) (*models.FeeCollection, error) {
	unlock := s.locks.Lock(fmt.Sprintf("fee:%d", feeID))
	defer unlock()

	var fee models.FeeCollection
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&fee, feeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("fee record %d not found", feeID)
			}
			return errs.Store("failed to load fee record", err)
		}

		now := time.Now()
		fee.PaidAmount += paymentAmount
		fee.PaymentDate = &now
		if paymentMethod != "" {
			fee.PaymentMethod = paymentMethod
		}
		fee.DeriveStatus()

		if err := tx.Save(&fee).Error; err != nil {
			return errs.Store("failed to record payment", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	config.Info("payment recorded: fee=%d amount=%.2f status=%s", feeID, paymentAmount, fee.Status)
	return &fee, nil
}

// GetUnpaidFeesForUser lists every fee of the user's household that still has
// an outstanding balance, newest period first.
func (s *PaymentService) GetUnpaidFeesForUser(userID uint) ([]models.FeeCollection, error) {
	householdID, err := s.householdIDForUser(userID)
	if err != nil {
		return nil, err
	}

	var fees []models.FeeCollection
	err = s.DB.Preload("FeeType").
		Where("household_id = ?", householdID).
		Where("status IN ?", []models.PaymentStatus{models.PaymentUnpaid, models.PaymentPartialPaid}).
		Order("year DESC, month DESC, id DESC").
		Find(&fees).Error
	if err != nil {
		return nil, errs.Store("failed to list unpaid fees", err)
	}
	return fees, nil
}

// GetTotalRemainingAmount sums the outstanding balance across the user's
// household.
func (s *PaymentService) GetTotalRemainingAmount(userID uint) (float64, error) {
	fees, err := s.GetUnpaidFeesForUser(userID)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for i := range fees {
		total += fees[i].RemainingAmount()
	}
	return total, nil
}

func (s *PaymentService) householdIDForUser(userID uint) (uint, error) {
	var resident models.Resident
	err := s.DB.Select("household_id").Where("user_id = ?", userID).First(&resident).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, errs.NotFound("no resident profile for user %d", userID)
	}
	if err != nil {
		return 0, errs.Store("failed to load resident profile", err)
	}
	return resident.HouseholdID, nil
}
