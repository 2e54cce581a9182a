package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skyport/backoffice/internal/domain/auth"
)

// Register creates a new admin account.
func (h *Handler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c, err)
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		abortDomainError(c, err, "registration failed")
		return
	}

	respondData(c, http.StatusCreated, user)
}

// Login authenticates an admin and issues a token pair.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c, err)
		return
	}

	client := auth.ClientInfo{
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
	resp, err := h.authSvc.Login(c.Request.Context(), req, client)
	if err != nil {
		abortDomainError(c, err, "login failed")
		return
	}

	respondData(c, http.StatusOK, resp)
}

// Refresh exchanges a refresh token for a fresh pair.
func (h *Handler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c, err)
		return
	}

	resp, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		abortDomainError(c, err, "token refresh failed")
		return
	}

	respondData(c, http.StatusOK, resp)
}

// Logout closes the login activity row tied to the presented token.
func (h *Handler) Logout(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		abortDomainError(c, err, "logout failed")
		return
	}

	respondMessage(c, http.StatusOK, "Logged out successfully")
}

// Profile returns the authenticated account.
func (h *Handler) Profile(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	user, err := h.authSvc.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		abortDomainError(c, err, "failed to load profile")
		return
	}

	respondData(c, http.StatusOK, user)
}

// UpdateProfile applies partial changes to the authenticated account.
func (h *Handler) UpdateProfile(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	var params auth.UpdateProfileParams
	if err := c.ShouldBindJSON(&params); err != nil {
		abortBadJSON(c, err)
		return
	}

	user, err := h.authSvc.UpdateProfile(c.Request.Context(), claims.UserID, params)
	if err != nil {
		abortDomainError(c, err, "failed to update profile")
		return
	}

	respondData(c, http.StatusOK, user)
}

// ChangePassword rotates the account password.
func (h *Handler) ChangePassword(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	var req auth.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c, err)
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), claims.UserID, req); err != nil {
		abortDomainError(c, err, "failed to change password")
		return
	}

	respondMessage(c, http.StatusOK, "Password changed successfully")
}

// LoginActivity returns the paged login audit trail.
func (h *Handler) LoginActivity(c *gin.Context) {
	q := auth.ActivityQuery{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	}

	list, err := h.authSvc.LoginActivity(c.Request.Context(), q)
	if err != nil {
		abortDomainError(c, err, "failed to load login activity")
		return
	}

	respondData(c, http.StatusOK, list)
}

// queryInt parses a numeric query parameter, falling back on garbage.
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
