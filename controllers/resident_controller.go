package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/models"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/services"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/services/container"
)

type ResidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

func NewResidentController(ctx *gin.Context, container *container.ServiceContainer) *ResidentController {
	return &ResidentController{
		Ctx:       ctx,
		Container: container,
	}
}

func HandleResidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewResidentController(ctx, container)
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
		case "update":
			controller.Update()
		case "delete":
			controller.Delete()
		case "temporaryResident":
			controller.RegisterTemporaryResident()
		case "temporaryAbsent":
			controller.RegisterTemporaryAbsent()
		case "cancelTemporary":
			controller.CancelTemporaryStatus()
		default:
			respondBadRequest(ctx, "invalid method")
		}
	}
}

func (c *ResidentController) service() services.InterfaceResidentService {
	return c.Container.GetService("resident").(services.InterfaceResidentService)
}

// GetAll godoc
// @Summary      List heads of household
// @Description  Pages through heads of household, hiding households still in placeholder apartments
// @Tags         residents
// @Produce      json
// @Param        pageNum   query     int  false  "Page number"
// @Param        pageSize  query     int  false  "Page size"
// @Success      200       {object}  map[string]interface{}
// @Router       /api/residents [get]
func (c *ResidentController) GetAll() {
	page, pageSize := parsePagination(c.Ctx)
	residents, pagination, err := c.service().GetAllResidents(page, pageSize)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondList(c.Ctx, residents, pagination)
}

// Search godoc
// @Summary      Search residents
// @Tags         residents
// @Produce      json
// @Param        name           query     string  false  "Full name, substring match"
// @Param        apartmentCode  query     string  false  "Apartment code, substring match"
// @Param        householdCode  query     string  false  "Household code, substring match"
// @Success      200            {object}  map[string]interface{}
// @Router       /api/residents/search [get]
func (c *ResidentController) Search() {
	page, pageSize := parsePagination(c.Ctx)
	residents, pagination, err := c.service().SearchResidents(
		c.Ctx.Query("name"),
		c.Ctx.Query("apartmentCode"),
		c.Ctx.Query("householdCode"),
		page, pageSize)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondList(c.Ctx, residents, pagination)
}

// GetByID godoc
// @Summary      Get a resident
// @Tags         residents
// @Produce      json
// @Param        id   path      int  true  "Resident ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/residents/{id} [get]
func (c *ResidentController) GetByID() {
	id, ok := parseUintParam(c.Ctx, "id")
	if !ok {
		return
	}
	resident, err := c.service().GetResidentByID(id)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "success", resident)
}

// GetByHousehold godoc
// @Summary      List members of a household
// @Tags         residents
// @Produce      json
// @Param        householdId  path      int  true  "Household ID"
// @Success      200          {object}  map[string]interface{}
// @Router       /api/households/{householdId}/residents [get]
func (c *ResidentController) GetByHousehold() {
	householdID, ok := parseUintParam(c.Ctx, "householdId")
	if !ok {
		return
	}
	residents, err := c.service().GetResidentsByHousehold(householdID)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "success", residents)
}

// Create godoc
// @Summary      Add a household member
// @Tags         residents
// @Accept       json
// @Produce      json
// @Param        body  body      models.Resident  true  "Resident"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/residents [post]
func (c *ResidentController) Create() {
	var resident models.Resident
	if err := c.Ctx.ShouldBindJSON(&resident); err != nil {
		respondBadRequest(c.Ctx, "invalid resident payload: "+err.Error())
		return
	}
	if err := c.service().CreateResident(&resident); err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondCreated(c.Ctx, "resident created", resident)
}

// Update godoc
// @Summary      Update a resident
// @Tags         residents
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Resident ID"
// @Param        body  body      map[string]interface{}  true  "Fields to update"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  ErrorResponse
// @Router       /api/residents/{id} [put]
func (c *ResidentController) Update() {
	id, ok := parseUintParam(c.Ctx, "id")
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		respondBadRequest(c.Ctx, "invalid update payload: "+err.Error())
		return
	}
	resident, err := c.service().UpdateResident(id, updates)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "resident updated", resident)
}

// Delete godoc
// @Summary      Delete a resident
// @Description  Deleting a head also removes the household's fees; deleting the last member removes the household
// @Tags         residents
// @Produce      json
// @Param        id   path      int  true  "Resident ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/residents/{id} [delete]
func (c *ResidentController) Delete() {
	id, ok := parseUintParam(c.Ctx, "id")
	if !ok {
		return
	}
	if err := c.service().DeleteResident(id); err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "resident deleted", nil)
}

type temporaryStatusRequest struct {
	FromDate *time.Time `json:"from_date" binding:"required"`
	ToDate   *time.Time `json:"to_date"`
	Reason   string     `json:"reason"`
}

// RegisterTemporaryResident godoc
// @Summary      Register temporary residence
// @Tags         residents
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Resident ID"
// @Param        body  body      temporaryStatusRequest  true  "Window"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/residents/{id}/temporary-residence [post]
func (c *ResidentController) RegisterTemporaryResident() {
	id, ok := parseUintParam(c.Ctx, "id")
	if !ok {
		return
	}
	var req temporaryStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c.Ctx, "invalid payload: "+err.Error())
		return
	}
	resident, err := c.service().RegisterTemporaryResident(id, req.FromDate, req.ToDate, req.Reason)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "temporary residence registered", resident)
}

// RegisterTemporaryAbsent godoc
// @Summary      Register temporary absence
// @Tags         residents
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Resident ID"
// @Param        body  body      temporaryStatusRequest  true  "Window"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/residents/{id}/temporary-absence [post]
func (c *ResidentController) RegisterTemporaryAbsent() {
	id, ok := parseUintParam(c.Ctx, "id")
	if !ok {
		return
	}
	var req temporaryStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c.Ctx, "invalid payload: "+err.Error())
		return
	}
	resident, err := c.service().RegisterTemporaryAbsent(id, req.FromDate, req.ToDate, req.Reason)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "temporary absence registered", resident)
}

// CancelTemporaryStatus godoc
// @Summary      Cancel a temporary status
// @Tags         residents
// @Produce      json
// @Param        id   path      int  true  "Resident ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /api/residents/{id}/temporary-status [delete]
func (c *ResidentController) CancelTemporaryStatus() {
	id, ok := parseUintParam(c.Ctx, "id")
	if !ok {
		return
	}
	resident, err := c.service().CancelTemporaryStatus(id)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "temporary status cancelled", resident)
}
