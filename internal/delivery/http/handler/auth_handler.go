package handler

import (
	"net/http"

	"github.com/bliinmaker/dating-bot/internal/usecase/auth"
	"github.com/bliinmaker/dating-bot/internal/usecase/user"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
	userUseCase *user.UserUseCase
}

func NewAuthHandler(authUseCase *auth.AuthUseCase, userUseCase *user.UserUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// TelegramAuthRequest carries the Telegram identity supplied by the bot
// front-end.
type TelegramAuthRequest struct {
	TelegramID int64   `json:"telegram_id" binding:"required"`
	Username   *string `json:"username"`
}

// TelegramAuth handles POST /auth/telegram
// @Summary Authenticate via Telegram identity
// @Description Exchange a Telegram id for a JWT, creating the account on first contact
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TelegramAuthRequest true "Telegram identity"
// @Success 200 {object} auth.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/telegram [post]
func (h *AuthHandler) TelegramAuth(c *gin.Context) {
	var req TelegramAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	resp, err := h.authUseCase.Authenticate(c.Request.Context(), req.TelegramID, req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to authenticate",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me handles GET /users/me
// @Summary Get current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	u, err := h.userUseCase.Get(c.Request.Context(), userID.(int))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "user not found",
		})
		return
	}

	c.JSON(http.StatusOK, u)
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}
