package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack-api/internal/config"
	"github.com/jobtrack/jobtrack-api/internal/dto"
	"github.com/jobtrack/jobtrack-api/internal/service"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService service.AuthService
	cookies     config.CookieConfig
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, cookies config.CookieConfig, accessTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
	}
}

// Register handles user registration. Tokens are issued immediately so
// a fresh account is signed in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req, clientIP(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Identity for the audit trail of this same request
	c.Set(ctxUserID, result.User.ID)

	h.setAuthCookies(c, result.Tokens.AccessToken, result.Tokens.RefreshToken)
	respondMessage(c, http.StatusCreated,
		dto.AuthResponse{User: dto.NewUserResponse(result.User)},
		"User registered successfully")
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req, clientIP(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Set(ctxUserID, result.User.ID)

	h.setAuthCookies(c, result.Tokens.AccessToken, result.Tokens.RefreshToken)
	respondMessage(c, http.StatusOK,
		dto.AuthResponse{User: dto.NewUserResponse(result.User)},
		"Login successful")
}

// Refresh mints a new access cookie from the refresh cookie. The
// refresh token itself is not rotated.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(RefreshCookie)
	if err != nil || refreshToken == "" {
		respondError(c, http.StatusUnauthorized, "Refresh token not found", nil)
		return
	}

	access, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid or expired refresh token", nil)
		return
	}

	h.setCookie(c, AccessCookie, access, int(h.accessTTL.Seconds()))
	respondMessage(c, http.StatusOK, nil, "Token refreshed")
}

// Logout revokes the refresh token and clears both cookies
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	_ = c.ShouldBindJSON(&req)

	refreshToken := req.Refresh
	if refreshToken == "" {
		refreshToken, _ = c.Cookie(RefreshCookie)
	}

	if err := h.authService.Logout(c.Request.Context(), currentUserID(c), refreshToken); err != nil {
		respondServiceError(c, err)
		return
	}

	h.setCookie(c, AccessCookie, "", -1)
	h.setCookie(c, RefreshCookie, "", -1)
	respondMessage(c, http.StatusOK, nil, "Logged out successfully")
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewUserResponse(user))
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, access, refresh string) {
	h.setCookie(c, AccessCookie, access, int(h.accessTTL.Seconds()))
	h.setCookie(c, RefreshCookie, refresh, int(h.refreshTTL.Seconds()))
}

// Cookie attributes are fixed per environment, never per request
func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(h.cookies.SameSiteMode())
	c.SetCookie(name, value, maxAge, h.cookies.Path, h.cookies.Domain, h.cookies.Secure, true)
}
