package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tr1tonzzz/BLUE-MOON-MANAGER-2/internal/errs"
)

// ErrorResponse is the error body shape, used by the swagger annotations.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondOK(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

func respondCreated(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

func respondList(ctx *gin.Context, data interface{}, pagination interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"code":       0,
		"message":    "success",
		"data":       data,
		"pagination": pagination,
	})
}

// respondError maps service errors onto HTTP statuses: validation 400,
// not-found 404, conflict 409, anything else 500.
func respondError(ctx *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	ctx.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

func respondBadRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"code":    http.StatusBadRequest,
		"message": message,
	})
}
