package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/services"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/services/container"
)

type FeeTypeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

func NewFeeTypeController(ctx *gin.Context, container *container.ServiceContainer) *FeeTypeController {
	return &FeeTypeController{
		Ctx:       ctx,
		Container: container,
	}
}

func HandleFeeTypeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFeeTypeController(ctx, container)
		switch method {
		case "getAll":
			controller.GetAll()
		case "getActive":
			controller.GetActive()
		case "getByID":
			controller.GetByID()
		case "create":
			controller.Create()
		case "update":
			controller.Update()
		case "delete":
			controller.Delete()
		case "collectForAll":
			controller.CollectForAll()
		default:
			respondBadRequest(ctx, "invalid method")
		}
	}
}

func (c *FeeTypeController) service() services.InterfaceFeeTypeService {
	return c.Container.GetService("feeType").(services.InterfaceFeeTypeService)
}

// GetAll godoc
// @Summary      List fee types
// @Tags         fee-types
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/fee-types [get]
func (c *FeeTypeController) GetAll() {
	feeTypes, err := c.service().GetAllFeeTypes()
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "success", feeTypes)
}

// GetActive godoc
// @Summary      List active fee types
// @Tags         fee-types
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/fee-types/active [get]
func (c *FeeTypeController) GetActive() {
	feeTypes, err := c.service().GetActiveFeeTypes()
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "success", feeTypes)
}

// GetByID godoc
// @Summary      Get a fee type
// @Tags         fee-types
// @Produce      json
// @Param        id   path      int  true  "Fee type ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/fee-types/{id} [get]
func (c *FeeTypeController) GetByID() {
	id, ok := parseUintParam(c.Ctx, "id")
	if !ok {
		return
	}
	feeType, err := c.service().GetFeeTypeByID(id)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "success", feeType)
}

type feeTypeRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	DefaultAmount float64 `json:"default_amount"`
	IsActive      *bool   `json:"is_active"`
}

// Create godoc
// @Summary      Create a fee type
// @Tags         fee-types
// @Accept       json
// @Produce      json
// @Param        body  body      feeTypeRequest  true  "Fee type"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/fee-types [post]
func (c *FeeTypeController) Create() {
	var req feeTypeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c.Ctx, "invalid fee type payload: "+err.Error())
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	feeType, err := c.service().CreateFeeType(req.Name, req.Description, req.DefaultAmount, isActive)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondCreated(c.Ctx, "fee type created", feeType)
}

// Update godoc
// @Summary      Update a fee type
// @Tags         fee-types
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Fee type ID"
// @Param        body  body      map[string]interface{}  true  "Fields to update"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  ErrorResponse
// @Router       /api/fee-types/{id} [put]
func (c *FeeTypeController) Update() {
	id, ok := parseUintParam(c.Ctx, "id")
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		respondBadRequest(c.Ctx, "invalid update payload: "+err.Error())
		return
	}
	feeType, err := c.service().UpdateFeeType(id, updates)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "fee type updated", feeType)
}

// Delete godoc
// @Summary      Delete a fee type
// @Tags         fee-types
// @Produce      json
// @Param        id   path      int  true  "Fee type ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/fee-types/{id} [delete]
func (c *FeeTypeController) Delete() {
	id, ok := parseUintParam(c.Ctx, "id")
	if !ok {
		return
	}
	if err := c.service().DeleteFeeType(id); err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "fee type deleted", nil)
}

type collectForAllRequest struct {
	Month           int        `json:"month" binding:"required"`
	Year            int        `json:"year" binding:"required"`
	PaymentDeadline *time.Time `json:"payment_deadline"`
}

// CollectForAll godoc
// @Summary      Bill every eligible household
// @Description  Creates one fee per household with an active head for the period, skipping households already billed
// @Tags         fee-types
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "Fee type ID"
// @Param        body  body      collectForAllRequest  true  "Billing period"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/fee-types/{id}/collect [post]
func (c *FeeTypeController) CollectForAll() {
	id, ok := parseUintParam(c.Ctx, "id")
	if !ok {
		return
	}
	var req collectForAllRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c.Ctx, "invalid billing payload: "+err.Error())
		return
	}
	created, err := c.service().CollectFeeForAllHouseholds(id, req.Month, req.Year, req.PaymentDeadline)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "billing complete", gin.H{"created": created})
}
