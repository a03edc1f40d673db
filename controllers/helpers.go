package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/aiblog/middleware"
	"github.com/cppla/aiblog/services"
	"github.com/cppla/aiblog/utils"
)

func getUserID(ctx *gin.Context) (uint, bool) {
	return middleware.UserID(ctx)
}

func isAdmin(ctx *gin.Context) bool {
	return middleware.IsAdmin(ctx)
}

// parseID reads a positive numeric path parameter.
func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps service sentinel errors onto the JSON envelope.
// notFoundCode and notFoundMsg describe the resource the handler was looking up.
func respondServiceError(ctx *gin.Context, err error, notFoundCode int, notFoundMsg string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, notFoundCode, notFoundMsg)
	case errors.Is(err, services.ErrForbidden):
		utils.Error(ctx, http.StatusForbidden, 40302, "operation not permitted")
	case errors.Is(err, services.ErrEmptyText):
		utils.Error(ctx, http.StatusBadRequest, 40021, "text cannot be empty")
	case errors.Is(err, services.ErrSelfFollow):
		utils.Error(ctx, http.StatusBadRequest, 40030, "cannot follow yourself")
	case errors.Is(err, services.ErrInvalid):
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
	case errors.Is(err, services.ErrConflict):
		utils.Error(ctx, http.StatusConflict, 40901, "already exists")
	default:
		utils.Logger.Error("request failed",
			zap.String("path", ctx.FullPath()),
			zap.Error(err),
		)
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
	}
}
