package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/services"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/services/container"
)

type FeeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

func NewFeeController(ctx *gin.Context, container *container.ServiceContainer) *FeeController {
	return &FeeController{
		Ctx:       ctx,
		Container: container,
	}
}

func HandleFeeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFeeController(ctx, container)
		switch method {
		case "getAll":
			controller.GetAll()
		case "search":
			controller.Search()
		case "getByID":
			controller.GetByID()
		case "getByHousehold":
			controller.GetByHousehold()
		case "create":
			controller.Create()
		case "createNonPeriodic":
			controller.CreateNonPeriodic()
		case "update":
			controller.Update()
		case "markAsPaid":
			controller.MarkAsPaid()
		case "delete":
			controller.Delete()
		default:
			respondBadRequest(ctx, "invalid method")
		}
	}
}

func (c *FeeController) service() services.InterfaceFeeCollectionService {
	return c.Container.GetService("feeCollection").(services.InterfaceFeeCollectionService)
}

// GetAll godoc
// @Summary      List fee collections
// @Tags         fees
// @Produce      json
// @Param        pageNum   query     int  false  "Page number"
// @Param        pageSize  query     int  false  "Page size"
// @Success      200       {object}  map[string]interface{}
// @Router       /api/fees [get]
func (c *FeeController) GetAll() {
	page, pageSize := parsePagination(c.Ctx)
	fees, pagination, err := c.service().GetAllFeeCollections(page, pageSize)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondList(c.Ctx, fees, pagination)
}

// Search godoc
// @Summary      Search fee collections
// @Tags         fees
// @Produce      json
// @Param        apartmentCode  query     string  false  "Apartment code, substring match"
// @Param        householdCode  query     string  false  "Household code, substring match"
// @Param        ownerName      query     string  false  "Owner name, substring match"
// @Param        month          query     int     false  "Billing month"
// @Param        year           query     int     false  "Billing year"
// @Param        status         query     string  false  "Payment status"
// @Success      200            {object}  map[string]interface{}
// @Router       /api/fees/search [get]
func (c *FeeController) Search() {
	page, pageSize := parsePagination(c.Ctx)
	params := services.FeeSearchParams{
		ApartmentCode: c.Ctx.Query("apartmentCode"),
		HouseholdCode: c.Ctx.Query("householdCode"),
		OwnerName:     c.Ctx.Query("ownerName"),
		Month:         parseOptionalInt(c.Ctx, "month"),
		Year:          parseOptionalInt(c.Ctx, "year"),
		Status:        c.Ctx.Query("status"),
	}
	fees, pagination, err := c.service().SearchFeeCollections(params, page, pageSize)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondList(c.Ctx, fees, pagination)
}

// GetByID godoc
// @Summary      Get a fee record
// @Tags         fees
// @Produce      json
// @Param        id   path      int  true  "Fee ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/fees/{id} [get]
func (c *FeeController) GetByID() {
	id, ok := parseUintParam(c.Ctx, "id")
	if !ok {
		return
	}
	fee, err := c.service().GetFeeCollectionByID(id)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "success", fee)
}

// GetByHousehold godoc
// @Summary      List a household's fees
// @Tags         fees
// @Produce      json
// @Param        householdId  path      int  true  "Household ID"
// @Success      200          {object}  map[string]interface{}
// @Router       /api/households/{householdId}/fees [get]
func (c *FeeController) GetByHousehold() {
	householdID, ok := parseUintParam(c.Ctx, "householdId")
	if !ok {
		return
	}
	fees, err := c.service().GetFeesByHousehold(householdID)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "success", fees)
}

type createFeeRequest struct {
	HouseholdID     uint       `json:"household_id" binding:"required"`
	Month           int        `json:"month" binding:"required"`
	Year            int        `json:"year" binding:"required"`
	Amount          float64    `json:"amount"`
	FeeTypeID       *uint      `json:"fee_type_id"`
	PaymentDeadline *time.Time `json:"payment_deadline"`
}

// Create godoc
// @Summary      Bill a household for one period
// @Tags         fees
// @Accept       json
// @Produce      json
// @Param        body  body      createFeeRequest  true  "Fee"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/fees [post]
func (c *FeeController) Create() {
	var req createFeeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c.Ctx, "invalid fee payload: "+err.Error())
		return
	}
	fee, err := c.service().CreateFeeCollection(
		req.HouseholdID, req.Month, req.Year, req.Amount, req.FeeTypeID, req.PaymentDeadline)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondCreated(c.Ctx, "fee created", fee)
}

type createNonPeriodicFeeRequest struct {
	HouseholdID     uint       `json:"household_id" binding:"required"`
	Amount          float64    `json:"amount"`
	Reason          string     `json:"reason" binding:"required"`
	PaymentDeadline *time.Time `json:"payment_deadline"`
}

// CreateNonPeriodic godoc
// @Summary      Record a one-off charge
// @Tags         fees
// @Accept       json
// @Produce      json
// @Param        body  body      createNonPeriodicFeeRequest  true  "Fee"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/fees/non-periodic [post]
func (c *FeeController) CreateNonPeriodic() {
	var req createNonPeriodicFeeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c.Ctx, "invalid fee payload: "+err.Error())
		return
	}
	fee, err := c.service().CreateNonPeriodicFee(req.HouseholdID, req.Amount, req.Reason, req.PaymentDeadline)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondCreated(c.Ctx, "fee created", fee)
}

// Update godoc
// @Summary      Update a fee record
// @Tags         fees
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Fee ID"
// @Param        body  body      map[string]interface{}  true  "Fields to update"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  ErrorResponse
// @Router       /api/fees/{id} [put]
func (c *FeeController) Update() {
	id, ok := parseUintParam(c.Ctx, "id")
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		respondBadRequest(c.Ctx, "invalid update payload: "+err.Error())
		return
	}
	fee, err := c.service().UpdateFeeCollection(id, updates)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "fee updated", fee)
}

type markAsPaidRequest struct {
	PaymentDate   *time.Time `json:"payment_date"`
	PaymentMethod string     `json:"payment_method"`
}

// MarkAsPaid godoc
// @Summary      Settle a fee in full
// @Tags         fees
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Fee ID"
// @Param        body  body      markAsPaidRequest  true  "Payment details"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  ErrorResponse
// @Router       /api/fees/{id}/mark-paid [post]
func (c *FeeController) MarkAsPaid() {
	id, ok := parseUintParam(c.Ctx, "id")
	if !ok {
		return
	}
	var req markAsPaidRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c.Ctx, "invalid payment payload: "+err.Error())
		return
	}
	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}
	fee, err := c.service().MarkAsPaid(id, paymentDate, req.PaymentMethod)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "fee marked as paid", fee)
}

// Delete godoc
// @Summary      Delete a fee record
// @Tags         fees
// @Produce      json
// @Param        id   path      int  true  "Fee ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/fees/{id} [delete]
func (c *FeeController) Delete() {
	id, ok := parseUintParam(c.Ctx, "id")
	if !ok {
		return
	}
	if err := c.service().DeleteFeeCollection(id); err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "fee deleted", nil)
}
