package services

import (
	"time"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/config"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/internal/errs"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/models"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/utils"

	"gorm.io/gorm"
)

// DashboardStats is the aggregate snapshot served to the admin dashboard.
type DashboardStats struct {
	TotalApartments   int64                  `json:"total_apartments"`
	TotalHouseholds   int64                  `json:"total_households"`
	TotalResidents    int64                  `json:"total_residents"`
	TotalFees         int64                  `json:"total_fees"`
	PaidFees          int64                  `json:"paid_fees"`
	UnpaidFees        int64                  `json:"unpaid_fees"`
	TotalAmount       float64                `json:"total_amount"`
	PaidAmount        float64                `json:"paid_amount"`
	RemainingAmount   float64                `json:"remaining_amount"`
	RecentCollections []models.FeeCollection `json:"recent_collections"`
	GeneratedAt       time.Time              `json:"generated_at"`
}

type InterfaceStatisticsService interface {
	GetDashboardStats() (*DashboardStats, error)
}

type StatisticsService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

func NewStatisticsService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService) InterfaceStatisticsService {
	return &StatisticsService{DB: db, Config: cfg, Redis: redis}
}

// GetDashboardStats serves the cached snapshot when redis has one, otherwise
// recomputes and caches it. Redis being down degrades to a direct compute.
func (s *StatisticsService) GetDashboardStats() (*DashboardStats, error) {
	if s.Redis != nil {
		var cached DashboardStats
		if err := s.Redis.GetCachedDashboardStats(&cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.computeStats()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		ttl := time.Duration(s.Config.StatsCacheSeconds) * time.Second
		if err := s.Redis.CacheDashboardStats(stats, ttl); err != nil {
			config.Warning("failed to cache dashboard stats: %v", err)
		}
	}
	return stats, nil
}

func (s *StatisticsService) computeStats() (*DashboardStats, error) {
	stats := &DashboardStats{GeneratedAt: time.Now()}

	if err := s.DB.Model(&models.Apartment{}).
		Where("apartment_code NOT LIKE ?", utils.PlaceholderPrefix+"%").
		Count(&stats.TotalApartments).Error; err != nil {
		return nil, errs.Store("failed to count apartments", err)
	}

	// Households and residents count only fully-registered ones: an active
	// head in a real apartment.
	headFilter := func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN households ON households.id = residents.household_id").
			Joins("JOIN apartments ON apartments.id = households.apartment_id").
			Where("apartments.apartment_code NOT LIKE ?", utils.PlaceholderPrefix+"%").
			Where("residents.relationship = ?", models.RelationHead).
			Where("residents.status = ?", models.ResidencyActive)
	}

	if err := headFilter(s.DB.Model(&models.Resident{})).
		Distinct("residents.household_id").
		Count(&stats.TotalHouseholds).Error; err != nil {
		return nil, errs.Store("failed to count households", err)
	}
	if err := headFilter(s.DB.Model(&models.Resident{})).
		Count(&stats.TotalResidents).Error; err != nil {
		return nil, errs.Store("failed to count residents", err)
	}

	if err := s.DB.Model(&models.FeeCollection{}).Count(&stats.TotalFees).Error; err != nil {
		return nil, errs.Store("failed to count fees", err)
	}
	if err := s.DB.Model(&models.FeeCollection{}).
		Where("status = ?", models.PaymentPaid).
		Count(&stats.PaidFees).Error; err != nil {
		return nil, errs.Store("failed to count paid fees", err)
	}
	if err := s.DB.Model(&models.FeeCollection{}).
		Where("status IN ?", []models.PaymentStatus{models.PaymentUnpaid, models.PaymentPartialPaid}).
		Count(&stats.UnpaidFees).Error; err != nil {
		return nil, errs.Store("failed to count unpaid fees", err)
	}

	type sums struct {
		TotalAmount float64
		PaidAmount  float64
	}
	var totals sums
	err := s.DB.Model(&models.FeeCollection{}).
		Select("COALESCE(SUM(amount), 0) AS total_amount, COALESCE(SUM(paid_amount), 0) AS paid_amount").
		Scan(&totals).Error
	if err != nil {
		return nil, errs.Store("failed to sum fee amounts", err)
	}
	stats.TotalAmount = totals.TotalAmount
	stats.PaidAmount = totals.PaidAmount
	stats.RemainingAmount = totals.TotalAmount - totals.PaidAmount

	err = s.DB.Preload("Household.Apartment").Preload("FeeType").
		Order("updated_at DESC").Limit(3).
		Find(&stats.RecentCollections).Error
	if err != nil {
		return nil, errs.Store("failed to load recent collections", err)
	}

	return stats, nil
}
