package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack-api/internal/dto"
	"github.com/jobtrack/jobtrack-api/internal/service"
)

// ApplicationHandler handles the owner-scoped application resource
type ApplicationHandler struct {
	appService service.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(appService service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

// List returns a page of the caller's applications, optionally filtered
// by a case-insensitive company/position search
func (h *ApplicationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	search := c.Query("search")

	result, err := h.appService.List(c.Request.Context(), currentUserID(c), search, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

// Get returns one caller-owned application
func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.appService.Get(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, app)
}

// Create creates an application bound to the caller
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	app, err := h.appService.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, app, "Application created successfully")
}

// Update partially updates a caller-owned application
func (h *ApplicationHandler) Update(c *gin.Context) {
	var req dto.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	app, err := h.appService.Update(c.Request.Context(), currentUserID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, app, "Application updated successfully")
}

// Delete removes a caller-owned application
func (h *ApplicationHandler) Delete(c *gin.Context) {
	if err := h.appService.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, nil, "Application deleted successfully")
}

// Stats summarizes the caller's applications
func (h *ApplicationHandler) Stats(c *gin.Context) {
	stats, err := h.appService.Stats(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}

// Analytics returns breakdowns over the caller's applications
func (h *ApplicationHandler) Analytics(c *gin.Context) {
	analytics, err := h.appService.Analytics(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, analytics)
}
