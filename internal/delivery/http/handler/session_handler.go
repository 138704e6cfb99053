package handler

import (
	"errors"
	"net/http"

	"github.com/bliinmaker/dating-bot/internal/usecase/session"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	store *session.Store
}

func NewSessionHandler(store *session.Store) *SessionHandler {
	return &SessionHandler{
		store: store,
	}
}

// SessionEventRequest carries one conversation event.
type SessionEventRequest struct {
	Event string `json:"event" binding:"required"`
}

// SessionStateResponse is the state after a read or a transition.
type SessionStateResponse struct {
	State  string `json:"state"`
	Effect string `json:"effect,omitempty"`
}

// Get handles GET /session
// @Summary Get current conversation state
// @Tags session
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SessionStateResponse
// @Router /session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	state := h.store.Get(c.Request.Context(), userID.(int))
	c.JSON(http.StatusOK, SessionStateResponse{State: string(state)})
}

// Advance handles POST /session/events
// @Summary Apply a conversation event
// @Description Transitions the stored state and returns the effect to perform
// @Tags session
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SessionEventRequest true "Event"
// @Success 200 {object} SessionStateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /session/events [post]
func (h *SessionHandler) Advance(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req SessionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	state, effect, err := h.store.Advance(c.Request.Context(), userID.(int), session.Event(req.Event))
	if err != nil {
		if errors.Is(err, session.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to advance session"})
		return
	}

	c.JSON(http.StatusOK, SessionStateResponse{State: string(state), Effect: string(effect)})
}

// Reset handles DELETE /session
// @Summary Reset the conversation state
// @Tags session
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /session [delete]
func (h *SessionHandler) Reset(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	h.store.Reset(c.Request.Context(), userID.(int))
	c.JSON(http.StatusOK, SuccessResponse{Message: "session reset"})
}
