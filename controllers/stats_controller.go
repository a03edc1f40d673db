package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/aiblog/services"
	"github.com/cppla/aiblog/utils"
)

// StatsController provides site statistics.
type StatsController struct {
	svc *services.Service
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(svc *services.Service) *StatsController {
	return &StatsController{svc: svc}
}

// GetStats returns aggregate record counts.
func (s *StatsController) GetStats(ctx *gin.Context) {
	stats, err := s.svc.Stats(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err, 40400, "not found")
		return
	}
	utils.Success(ctx, stats)
}
