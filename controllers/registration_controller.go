package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/services"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/services/container"
)

type RegistrationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

func NewRegistrationController(ctx *gin.Context, container *container.ServiceContainer) *RegistrationController {
	return &RegistrationController{
		Ctx:       ctx,
		Container: container,
	}
}

func HandleRegistrationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRegistrationController(ctx, container)
		switch method {
		case "register":
			controller.Register()
		case "getProfile":
			controller.GetProfile()
		case "createHousehold":
			controller.CreateHousehold()
		default:
			respondBadRequest(ctx, "invalid method")
		}
	}
}

// Register godoc
// @Summary      Register head of household
// @Description  Creates or updates the resident profile for a user and resolves its household from the submitted codes
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        userId  path      int                           true  "User ID"
// @Param        body    body      services.RegistrationRequest  true  "Profile"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      409     {object}  ErrorResponse
// @Router       /api/users/{userId}/personal-info [post]
func (c *RegistrationController) Register() {
	userID, ok := parseUintParam(c.Ctx, "userId")
	if !ok {
		return
	}

	var req services.RegistrationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c.Ctx, "invalid registration payload: "+err.Error())
		return
	}

	registrationService := c.Container.GetService("registration").(services.InterfaceRegistrationService)
	resident, err := registrationService.RegisterHeadOfHousehold(userID, &req)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "registration saved", resident)
}

// GetProfile godoc
// @Summary      Get a user's resident profile
// @Tags         registration
// @Produce      json
// @Param        userId  path      int  true  "User ID"
// @Success      200     {object}  map[string]interface{}
// @Failure      404     {object}  ErrorResponse
// @Router       /api/users/{userId}/personal-info [get]
func (c *RegistrationController) GetProfile() {
	userID, ok := parseUintParam(c.Ctx, "userId")
	if !ok {
		return
	}

	registrationService := c.Container.GetService("registration").(services.InterfaceRegistrationService)
	resident, err := registrationService.GetProfile(userID)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "success", resident)
}

type createHouseholdRequest struct {
	ApartmentCode string `json:"apartment_code" binding:"required"`
	HouseholdCode string `json:"household_code" binding:"required"`
	OwnerName     string `json:"owner_name"`
	OwnerPhone    string `json:"owner_phone"`
	OwnerEmail    string `json:"owner_email"`
}

// CreateHousehold godoc
// @Summary      Create a household (administrative)
// @Description  Both codes are required; the household code must be free and the apartment must not already have an active head
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body      createHouseholdRequest  true  "Household"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/households [post]
func (c *RegistrationController) CreateHousehold() {
	var req createHouseholdRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c.Ctx, "invalid household payload: "+err.Error())
		return
	}

	registrationService := c.Container.GetService("registration").(services.InterfaceRegistrationService)
	household, err := registrationService.CreateHousehold(
		req.ApartmentCode, req.HouseholdCode, req.OwnerName, req.OwnerPhone, req.OwnerEmail)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondCreated(c.Ctx, "household created", household)
}
