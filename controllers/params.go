package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondBadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(value), true
}

// parsePagination reads pageNum/pageSize query parameters with sane bounds.
func parsePagination(ctx *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("pageNum", "1"))
	pageSize, _ = strconv.Atoi(ctx.DefaultQuery("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

func parseOptionalInt(ctx *gin.Context, name string) *int {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}
