package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/usecase/interaction"
	"github.com/bliinmaker/dating-bot/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interactionUseCase *interaction.InteractionUseCase
	profileUseCase     *profile.ProfileUseCase
}

func NewInteractionHandler(interactionUseCase *interaction.InteractionUseCase, profileUseCase *profile.ProfileUseCase) *InteractionHandler {
	return &InteractionHandler{
		interactionUseCase: interactionUseCase,
		profileUseCase:     profileUseCase,
	}
}

// InteractionRequest is a directed like or skip.
type InteractionRequest struct {
	ToProfileID int    `json:"to_profile_id" binding:"required"`
	Type        string `json:"type" binding:"required"`
}

// Create handles POST /interactions
// @Summary Record a like or skip
// @Description A reciprocal like creates a match; the response says so
// @Tags interactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body InteractionRequest true "Interaction"
// @Success 200 {object} interaction.LikeResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /interactions [post]
func (h *InteractionHandler) Create(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	viewer, err := h.profileUseCase.Get(c.Request.Context(), userID.(int))
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get profile"})
		return
	}

	switch req.Type {
	case domain.InteractionLike:
		result, err := h.interactionUseCase.Like(c.Request.Context(), viewer.ID, req.ToProfileID)
		if err != nil {
			h.interactionError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	case domain.InteractionSkip:
		if err := h.interactionUseCase.Skip(c.Request.Context(), viewer.ID, req.ToProfileID); err != nil {
			h.interactionError(c, err)
			return
		}
		c.JSON(http.StatusOK, &interaction.LikeResult{})
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid interaction type"})
	}
}

// ListMatches handles GET /matches
// @Summary List my active matches
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {array} interaction.MatchInfo
// @Failure 404 {object} ErrorResponse
// @Router /matches [get]
func (h *InteractionHandler) ListMatches(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	viewer, err := h.profileUseCase.Get(c.Request.Context(), userID.(int))
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get profile"})
		return
	}

	matches, err := h.interactionUseCase.Matches(c.Request.Context(), viewer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list matches"})
		return
	}

	c.JSON(http.StatusOK, matches)
}

// MarkChatInitiated handles POST /matches/:match_id/chat-initiated
// @Summary Mark that a chat was started for a match
// @Description Idempotent; repeated calls succeed
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{match_id}/chat-initiated [post]
func (h *InteractionHandler) MarkChatInitiated(c *gin.Context) {
	matchID, err := strconv.Atoi(c.Param("match_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	if err := h.interactionUseCase.MarkChatInitiated(c.Request.Context(), matchID); err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "match not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to mark chat initiated"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "chat marked as initiated"})
}

func (h *InteractionHandler) interactionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSelfInteraction):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot interact with own profile"})
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to record interaction"})
	}
}
