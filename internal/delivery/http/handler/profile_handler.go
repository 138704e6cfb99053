package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/usecase/profile"
	"github.com/bliinmaker/dating-bot/internal/usecase/rating"
	"github.com/gin-gonic/gin"
)

// 10 MB is plenty for a single photo.
const maxPhotoSize = 10 << 20

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
	ratingUseCase  *rating.RatingUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase, ratingUseCase *rating.RatingUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		ratingUseCase:  ratingUseCase,
	}
}

// CreateMyProfile handles POST /profile/me
// @Summary Create my profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.CreateInput true "Profile data"
// @Success 201 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [post]
func (h *ProfileHandler) CreateMyProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req profile.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.profileUseCase.Create(c.Request.Context(), userID.(int), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileExists):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "profile already exists"})
		case errors.Is(err, domain.ErrInvalidGender), errors.Is(err, domain.ErrInvalidAgeRange):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create profile"})
		}
		return
	}

	c.JSON(http.StatusCreated, p)
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	p, err := h.profileUseCase.Get(c.Request.Context(), userID.(int))
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateMyProfile handles PUT /profile/me
// @Summary Update my profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.UpdateInput true "Fields to update"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile/me [put]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req profile.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.profileUseCase.Update(c.Request.Context(), userID.(int), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
		case errors.Is(err, domain.ErrInvalidAgeRange):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}

// UploadPhoto handles POST /profile/me/photos
// @Summary Upload a profile photo
// @Tags profile
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Photo file"
// @Param is_main formData bool false "Set as main photo"
// @Success 201 {object} domain.Photo
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile/me/photos [post]
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "photo file is required"})
		return
	}
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "photo too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read photo"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read photo"})
		return
	}

	isMain := c.PostForm("is_main") == "true"
	var telegramFileID *string
	if v := c.PostForm("telegram_file_id"); v != "" {
		telegramFileID = &v
	}

	photo, err := h.profileUseCase.AddPhoto(
		c.Request.Context(),
		userID.(int),
		data,
		fileHeader.Header.Get("Content-Type"),
		telegramFileID,
		isMain,
	)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to upload photo"})
		return
	}

	c.JSON(http.StatusCreated, photo)
}

// ListMyPhotos handles GET /profile/me/photos
// @Summary List my photos
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {array} profile.PhotoView
// @Failure 404 {object} ErrorResponse
// @Router /profile/me/photos [get]
func (h *ProfileHandler) ListMyPhotos(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	p, err := h.profileUseCase.Get(c.Request.Context(), userID.(int))
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get profile"})
		return
	}

	photos, err := h.profileUseCase.Photos(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list photos"})
		return
	}

	c.JSON(http.StatusOK, photos)
}

// GetProfileDetail handles GET /profile/:profile_id
// @Summary Get a profile's detail view
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param profile_id path int true "Profile ID"
// @Success 200 {object} profile.DetailView
// @Failure 404 {object} ErrorResponse
// @Router /profile/{profile_id} [get]
func (h *ProfileHandler) GetProfileDetail(c *gin.Context) {
	profileID, err := strconv.Atoi(c.Param("profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid profile id"})
		return
	}

	detail, err := h.profileUseCase.Detail(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetProfileRating handles GET /profile/:profile_id/rating
// @Summary Get a profile's rating
// @Tags rating
// @Security BearerAuth
// @Produce json
// @Param profile_id path int true "Profile ID"
// @Success 200 {object} domain.Rating
// @Failure 400 {object} ErrorResponse
// @Router /profile/{profile_id}/rating [get]
func (h *ProfileHandler) GetProfileRating(c *gin.Context) {
	profileID, err := strconv.Atoi(c.Param("profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid profile id"})
		return
	}

	r, err := h.ratingUseCase.Get(c.Request.Context(), profileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get rating"})
		return
	}

	c.JSON(http.StatusOK, r)
}
