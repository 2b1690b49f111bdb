package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/services"
	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/services/container"
)

type PaymentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

func NewPaymentController(ctx *gin.Context, container *container.ServiceContainer) *PaymentController {
	return &PaymentController{
		Ctx:       ctx,
		Container: container,
	}
}

func HandlePaymentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPaymentController(ctx, container)
		switch method {
		case "process":
			controller.Process()
		case "unpaidForUser":
			controller.UnpaidForUser()
		case "remainingForUser":
			controller.RemainingForUser()
		default:
			respondBadRequest(ctx, "invalid method")
		}
	}
}

func (c *PaymentController) service() services.InterfacePaymentService {
	return c.Container.GetService("payment").(services.InterfacePaymentService)
}

type processPaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required"`
	PaymentMethod string  `json:"payment_method"`
}

// Process godoc
// @Summary      Apply a payment to a fee
// @Description  Payments accumulate; the status is re-derived from the new balance. Negative amounts act as corrections.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id     path      int                    true  "Fee ID"
// @Param        body   body      processPaymentRequest  true  "Payment"
// @Success      200    {object}  map[string]interface{}
// @Failure      404    {object}  ErrorResponse
// @Router       /api/fees/{id}/payments [post]
func (c *PaymentController) Process() {
	feeID, ok := parseUintParam(c.Ctx, "id")
	if !ok {
		return
	}
	var req processPaymentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c.Ctx, "invalid payment payload: "+err.Error())
		return
	}
	fee, err := c.service().ProcessPayment(feeID, req.Amount, req.PaymentMethod)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "payment recorded", fee)
}

// UnpaidForUser godoc
// @Summary      List a user's outstanding fees
// @Tags         payments
// @Produce      json
// @Param        userId  path      int  true  "User ID"
// @Success      200     {object}  map[string]interface{}
// @Failure      404     {object}  ErrorResponse
// @Router       /api/users/{userId}/unpaid-fees [get]
func (c *PaymentController) UnpaidForUser() {
	userID, ok := parseUintParam(c.Ctx, "userId")
	if !ok {
		return
	}
	fees, err := c.service().GetUnpaidFeesForUser(userID)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "success", fees)
}

// RemainingForUser godoc
// @Summary      Total outstanding balance for a user's household
// @Tags         payments
// @Produce      json
// @Param        userId  path      int  true  "User ID"
// @Success      200     {object}  map[string]interface{}
// @Failure      404     {object}  ErrorResponse
// @Router       /api/users/{userId}/remaining-amount [get]
func (c *PaymentController) RemainingForUser() {
	userID, ok := parseUintParam(c.Ctx, "userId")
	if !ok {
		return
	}
	total, err := c.service().GetTotalRemainingAmount(userID)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	respondOK(c.Ctx, "success", gin.H{"remaining_amount": total})
}
