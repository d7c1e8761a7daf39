package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack-api/internal/dto"
	"github.com/jobtrack/jobtrack-api/internal/repository"
	"github.com/jobtrack/jobtrack-api/internal/service"
)

// AdminHandler handles the admin console endpoints
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers returns every user with profile and audit attachments
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, users)
}

// CreateUser creates a user with an admin-chosen role
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	user, err := h.adminService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, dto.NewUserResponse(user), "User created successfully")
}

// GetUser returns a single user
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.adminService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewUserResponse(user))
}

// UpdateUser partially updates a user
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req dto.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), currentUserID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, dto.NewUserResponse(user), "User updated successfully")
}

// DeleteUser removes a user. Self-deletion is rejected.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.adminService.DeleteUser(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, nil, "User deleted successfully")
}

// SetRole changes a user's role
func (h *AdminHandler) SetRole(c *gin.Context) {
	var req dto.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	user, err := h.adminService.SetRole(c.Request.Context(), currentUserID(c), c.Param("id"), req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, dto.NewUserResponse(user), "Role updated successfully")
}

// UserProfile returns any user's profile
func (h *AdminHandler) UserProfile(c *gin.Context) {
	profile, err := h.adminService.UserProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, profile)
}

// UserApplications returns any user's applications
func (h *AdminHandler) UserApplications(c *gin.Context) {
	apps, err := h.adminService.UserApplications(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, apps)
}

// Application returns any application, ignoring ownership
func (h *AdminHandler) Application(c *gin.Context) {
	app, err := h.adminService.Application(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, app)
}

// AuditLogs returns a filtered, paginated audit log listing
func (h *AdminHandler) AuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))

	filter := repository.AuditLogFilter{
		UserID: c.Query("user_id"),
		Action: c.Query("action"),
	}
	if start, err := time.Parse("2006-01-02", c.Query("start_date")); err == nil {
		filter.StartDate = &start
	}
	if end, err := time.Parse("2006-01-02", c.Query("end_date")); err == nil {
		// Inclusive end of day
		endOfDay := end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &endOfDay
	}

	result, err := h.adminService.AuditLogs(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Dashboard returns the admin console overview
func (h *AdminHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, dashboard)
}

// Monitoring returns the operational snapshot
func (h *AdminHandler) Monitoring(c *gin.Context) {
	monitoring, err := h.adminService.Monitoring(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, monitoring)
}
