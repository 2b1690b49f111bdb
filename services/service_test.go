package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/config"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Apartment{},
		&models.Household{},
		&models.Resident{},
		&models.FeeType{},
		&models.FeeCollection{},
	)
	require.NoError(t, err)
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		DefaultMonthlyFee: 500000,
		StatsCacheSeconds: 60,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, FullName: "Test " + username}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createRegisteredHousehold registers a head of household through the real
// registration flow and returns the created resident.
func createRegisteredHousehold(t *testing.T, db *gorm.DB, username, apartmentCode string) *models.Resident {
	t.Helper()
	user := createTestUser(t, db, username)
	svc := NewRegistrationService(db, testConfig())
	resident, err := svc.RegisterHeadOfHousehold(user.ID, &RegistrationRequest{
		FullName:      "Head " + username,
		IDCard:        "ID-" + username,
		ApartmentCode: apartmentCode,
	})
	require.NoError(t, err)
	return resident
}
