package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/usecase/feed"
	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
	}
}

// GetNext handles GET /feed/next
// @Summary Get next candidates
// @Description Returns the next batch of candidates ordered by combined rating
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Batch size"
// @Success 200 {array} feed.Candidate
// @Failure 404 {object} ErrorResponse
// @Router /feed/next [get]
func (h *FeedHandler) GetNext(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	candidates, err := h.feedUseCase.NextCandidates(c.Request.Context(), userID.(int), limit)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get candidates"})
		return
	}

	c.JSON(http.StatusOK, candidates)
}

// Refresh handles POST /feed/refresh
// @Summary Drop the cached candidate list
// @Description The next feed fetch rebuilds the list from storage
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /feed/refresh [post]
func (h *FeedHandler) Refresh(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	h.feedUseCase.Refresh(c.Request.Context(), userID.(int))

	c.JSON(http.StatusOK, SuccessResponse{Message: "feed refreshed"})
}
