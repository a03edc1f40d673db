package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/aiblog/services"
	"github.com/cppla/aiblog/utils"
)

// FollowController creates and removes follow edges between users.
type FollowController struct {
	svc *services.Service
}

// NewFollowController creates a new FollowController instance.
func NewFollowController(svc *services.Service) *FollowController {
	return &FollowController{svc: svc}
}

// Follow subscribes the current user to the author in the path.
func (f *FollowController) Follow(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	if err := f.svc.Follow(ctx.Request.Context(), userID, ctx.Param("username")); err != nil {
		respondServiceError(ctx, err, 40402, "user not found")
		return
	}
	utils.Success(ctx, gin.H{"following": true})
}

// Unfollow removes the subscription if there is one.
func (f *FollowController) Unfollow(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	if err := f.svc.Unfollow(ctx.Request.Context(), userID, ctx.Param("username")); err != nil {
		respondServiceError(ctx, err, 40402, "user not found")
		return
	}
	utils.Success(ctx, gin.H{"following": false})
}
