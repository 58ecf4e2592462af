package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SAMSGit/sams_api/internal/middleware"
	"github.com/SAMSGit/sams_api/internal/service"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// AuthHandler handles login, logout and the current-caller endpoint.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid username or password")
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
	})
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.Caller(c)
	if claims == nil {
		utils.Error(c, 401, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to log out")
		return
	}

	utils.Success(c, 200, "Logout successful", nil)
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.Caller(c)
	if claims == nil {
		utils.Error(c, 401, "UNAUTHORIZED", "Authentication required")
		return
	}

	principal, err := h.authService.Me(claims.UserID)
	if err != nil {
		writeError(c, err, "Principal")
		return
	}

	utils.Success(c, 200, "Caller retrieved", principal)
}
