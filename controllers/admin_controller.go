package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/aiblog/middleware"
	"github.com/cppla/aiblog/services"
	"github.com/cppla/aiblog/timeline"
	"github.com/cppla/aiblog/utils"
)

// AdminController exposes maintenance operations restricted to admins.
type AdminController struct {
	svc      *services.Service
	timeline *timeline.Timeline
}

// NewAdminController creates a new AdminController instance.
func NewAdminController(svc *services.Service, tl *timeline.Timeline) *AdminController {
	return &AdminController{svc: svc, timeline: tl}
}

// DeleteUser removes an account together with its posts, comments and follows.
func (a *AdminController) DeleteUser(ctx *gin.Context) {
	username := ctx.Param("username")
	if err := a.svc.DeleteUser(ctx.Request.Context(), username); err != nil {
		respondServiceError(ctx, err, 40402, "user not found")
		return
	}
	utils.Logger.Info("user deleted",
		zap.String("username", username),
		zap.String("by", ctx.GetString(middleware.ContextUsernameKey)),
	)
	utils.Success(ctx, gin.H{"message": "user deleted"})
}

// ClearCache drops every cached home timeline page.
func (a *AdminController) ClearCache(ctx *gin.Context) {
	if err := a.timeline.Clear(ctx.Request.Context()); err != nil {
		utils.Error(ctx, http.StatusServiceUnavailable, 50301, "cache backend unavailable")
		return
	}
	utils.Success(ctx, gin.H{"message": "cache cleared"})
}
