package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/controllers"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/middleware"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/services/container"
)

// SetupRouter builds the gin engine with all routes registered.
func SetupRouter(serviceContainer *container.ServiceContainer) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: false,
	}))

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/:userId/personal-info", controllers.HandleRegistrationFunc(serviceContainer, "register"))
			users.GET("/:userId/personal-info", controllers.HandleRegistrationFunc(serviceContainer, "getProfile"))
			users.GET("/:userId/unpaid-fees", controllers.HandlePaymentFunc(serviceContainer, "unpaidForUser"))
			users.GET("/:userId/remaining-amount", controllers.HandlePaymentFunc(serviceContainer, "remainingForUser"))
		}

		households := api.Group("/households")
		{
			households.POST("", controllers.HandleRegistrationFunc(serviceContainer, "createHousehold"))
			households.GET("/:householdId/residents", controllers.HandleResidentFunc(serviceContainer, "getByHousehold"))
			households.GET("/:householdId/fees", controllers.HandleFeeFunc(serviceContainer, "getByHousehold"))
		}

		residents := api.Group("/residents")
		{
			residents.GET("", controllers.HandleResidentFunc(serviceContainer, "getAll"))
			residents.GET("/search", controllers.HandleResidentFunc(serviceContainer, "search"))
			residents.GET("/:id", controllers.HandleResidentFunc(serviceContainer, "getByID"))
			residents.POST("", controllers.HandleResidentFunc(serviceContainer, "create"))
			residents.PUT("/:id", controllers.HandleResidentFunc(serviceContainer, "update"))
			residents.DELETE("/:id", controllers.HandleResidentFunc(serviceContainer, "delete"))
			residents.POST("/:id/temporary-residence", controllers.HandleResidentFunc(serviceContainer, "temporaryResident"))
			residents.POST("/:id/temporary-absence", controllers.HandleResidentFunc(serviceContainer, "temporaryAbsent"))
			residents.DELETE("/:id/temporary-status", controllers.HandleResidentFunc(serviceContainer, "cancelTemporary"))
		}

		fees := api.Group("/fees")
		{
			fees.GET("", controllers.HandleFeeFunc(serviceContainer, "getAll"))
			fees.GET("/search", controllers.HandleFeeFunc(serviceContainer, "search"))
			fees.GET("/:id", controllers.HandleFeeFunc(serviceContainer, "getByID"))
			fees.POST("", controllers.HandleFeeFunc(serviceContainer, "create"))
			fees.POST("/non-periodic", controllers.HandleFeeFunc(serviceContainer, "createNonPeriodic"))
			fees.PUT("/:id", controllers.HandleFeeFunc(serviceContainer, "update"))
			fees.POST("/:id/mark-paid", controllers.HandleFeeFunc(serviceContainer, "markAsPaid"))
			fees.DELETE("/:id", controllers.HandleFeeFunc(serviceContainer, "delete"))
			fees.POST("/:id/payments", controllers.HandlePaymentFunc(serviceContainer, "process"))
		}

		feeTypes := api.Group("/fee-types")
		{
			feeTypes.GET("", controllers.HandleFeeTypeFunc(serviceContainer, "getAll"))
			feeTypes.GET("/active", controllers.HandleFeeTypeFunc(serviceContainer, "getActive"))
			feeTypes.GET("/:id", controllers.HandleFeeTypeFunc(serviceContainer, "getByID"))
			feeTypes.POST("", controllers.HandleFeeTypeFunc(serviceContainer, "create"))
			feeTypes.PUT("/:id", controllers.HandleFeeTypeFunc(serviceContainer, "update"))
			feeTypes.DELETE("/:id", controllers.HandleFeeTypeFunc(serviceContainer, "delete"))
			feeTypes.POST("/:id/collect", controllers.HandleFeeTypeFunc(serviceContainer, "collectForAll"))
		}

		api.GET("/statistics/dashboard", controllers.HandleStatisticsFunc(serviceContainer, "dashboard"))
	}

	return router
}
