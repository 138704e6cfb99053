package handler

import (
	"net/http"

	"github.com/bliinmaker/dating-bot/internal/usecase/stats"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsUseCase *stats.StatsUseCase
}

func NewStatsHandler(statsUseCase *stats.StatsUseCase) *StatsHandler {
	return &StatsHandler{
		statsUseCase: statsUseCase,
	}
}

// Overview handles GET /stats
// @Summary Platform counters
// @Tags stats
// @Security BearerAuth
// @Produce json
// @Success 200 {object} stats.Overview
// @Failure 500 {object} ErrorResponse
// @Router /stats [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	overview, err := h.statsUseCase.Overview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, overview)
}
