package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack-api/internal/dto"
	"github.com/jobtrack/jobtrack-api/internal/repository"
	"github.com/jobtrack/jobtrack-api/internal/service"
)

// ProfileHandler handles the caller's profile resource
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get returns the caller's profile
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Profile not found. Please create a profile first.", nil)
			return
		}
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, profile)
}

// Create creates the caller's profile
func (h *ProfileHandler) Create(c *gin.Context) {
	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	profile, err := h.profileService.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, profile, "Profile created successfully")
}

// Update partially updates the caller's profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Profile not found. Please create a profile first.", nil)
			return
		}
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, profile, "Profile updated successfully")
}
