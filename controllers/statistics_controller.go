package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/services"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/services/container"
)

type StatisticsController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

func NewStatisticsController(ctx *gin.Context, container *container.ServiceContainer) *StatisticsController {
	return &StatisticsController{
		Ctx:       ctx,
		Container: container,
	}
}

func HandleStatisticsFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewStatisticsController(ctx, container)
		switch method {
		case "dashboard":
			controller.Dashboard()
		default:
			respondBadRequest(ctx, "invalid method")
		}
	}
}

// Dashboard godoc
// @Summary      Dashboard statistics
// @Description  Aggregate counters for apartments, households, residents and fees, cached in redis
// @Tags         statistics
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/statistics/dashboard [get]
func (c *StatisticsController) Dashboard() {
	statisticsService := c.Container.GetService("statistics").(services.InterfaceStatisticsService)
	stats, err := statisticsService.GetDashboardStats()
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "success", stats)
}
