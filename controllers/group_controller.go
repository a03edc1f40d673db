package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/aiblog/services"
	"github.com/cppla/aiblog/utils"
)

// GroupController lists groups and lets admins manage them.
type GroupController struct {
	svc *services.Service
}

// NewGroupController creates a new GroupController instance.
func NewGroupController(svc *services.Service) *GroupController {
	return &GroupController{svc: svc}
}

// ListGroups returns every group ordered by title.
func (g *GroupController) ListGroups(ctx *gin.Context) {
	groups, err := g.svc.ListGroups(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err, 40401, "group not found")
		return
	}
	utils.Success(ctx, gin.H{"items": groups})
}

// CreateGroup adds a group with a unique slug.
func (g *GroupController) CreateGroup(ctx *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Slug        string `json:"slug" binding:"required"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	group, err := g.svc.CreateGroup(ctx.Request.Context(), req.Title, req.Slug, req.Description)
	if err != nil {
		respondServiceError(ctx, err, 40401, "group not found")
		return
	}
	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"group": group})
}

// DeleteGroup removes a group; its posts are kept without a group.
func (g *GroupController) DeleteGroup(ctx *gin.Context) {
	if err := g.svc.DeleteGroup(ctx.Request.Context(), ctx.Param("slug")); err != nil {
		respondServiceError(ctx, err, 40401, "group not found")
		return
	}
	utils.Success(ctx, gin.H{"message": "group deleted"})
}
