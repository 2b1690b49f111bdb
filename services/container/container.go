package container

import (
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/config"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/services"
)

// ServiceContainer wires every service once at startup and hands them to the
// controllers by name.
type ServiceContainer struct {
	DB     *gorm.DB
	Config *config.Config

	RedisService         services.InterfaceRedisService
	RegistrationService  services.InterfaceRegistrationService
	ResidentService      services.InterfaceResidentService
	FeeCollectionService services.InterfaceFeeCollectionService
	FeeTypeService       services.InterfaceFeeTypeService
	PaymentService       services.InterfacePaymentService
	StatisticsService    services.InterfaceStatisticsService
}

func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	c := &ServiceContainer{
		DB:     db,
		Config: cfg,
	}

	if redisClient != nil {
		c.RedisService = services.NewRedisService(redisClient)
	}
	c.RegistrationService = services.NewRegistrationService(db, cfg)
	c.ResidentService = services.NewResidentService(db)
	c.FeeCollectionService = services.NewFeeCollectionService(db)
	c.FeeTypeService = services.NewFeeTypeService(db, c.FeeCollectionService)
	c.PaymentService = services.NewPaymentService(db)
	c.StatisticsService = services.NewStatisticsService(db, cfg, c.RedisService)

	return c
}

// GetService returns a service by name. Controllers assert the concrete
// interface themselves.
func (c *ServiceContainer) GetService(name string) interface{} {
	switch name {
	case "redis":
		return c.RedisService
	case "registration":
		return c.RegistrationService
	case "resident":
		return c.ResidentService
	case "feeCollection":
		return c.FeeCollectionService
	case "feeType":
		return c.FeeTypeService
	case "payment":
		return c.PaymentService
	case "statistics":
		return c.StatisticsService
	default:
		return nil
	}
}
