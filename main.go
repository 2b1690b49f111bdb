package main

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/config"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/models"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/routes"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/services/container"
)

// @title           Blue Moon Manager API
// @version         1.0
// @description     Apartment fee management: household registration, residents, fee billing and payments
// @BasePath        /
func main() {
	// .env is optional in deployed environments
	_ = godotenv.Load()

	if err := config.SetupLogger(); err != nil {
		panic("failed to set up logger: " + err.Error())
	}

	cfg := config.LoadConfig()

	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		config.Error("failed to connect to database: %v", err)
		panic(err)
	}

	if err := migrate(db); err != nil {
		config.Error("failed to migrate database: %v", err)
		panic(err)
	}

	redisClient := connectRedis(cfg)

	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	router := routes.SetupRouter(serviceContainer)

	config.Info("starting server on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		config.Error("server stopped: %v", err)
		panic(err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Apartment{},
		&models.Household{},
		&models.Resident{},
		&models.FeeType{},
		&models.FeeCollection{},
	)
}

// connectRedis returns nil when redis is unreachable; the statistics cache
// degrades to direct computation.
func connectRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		config.Warning("redis unavailable at %s, statistics cache disabled: %v", cfg.GetRedisAddr(), err)
		return nil
	}
	return client
}
