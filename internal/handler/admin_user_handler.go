package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SAMSGit/sams_api/internal/middleware"
	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/service"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// AdminUserHandler handles admin-user provisioning HTTP endpoints. All
// operations run under the caller's visibility: non-superusers only ever see
// the accounts they provisioned.
type AdminUserHandler struct {
	adminService *service.AdminUserService
}

// NewAdminUserHandler constructs an AdminUserHandler.
func NewAdminUserHandler(adminService *service.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{adminService: adminService}
}

// requester reconstructs the calling principal from validated token claims.
func requester(c *gin.Context) *models.Principal {
	claims := middleware.Caller(c)
	if claims == nil {
		return nil
	}
	return &models.Principal{
		ID:          claims.UserID,
		Username:    claims.Username,
		IsStaff:     claims.IsStaff,
		IsSuperuser: claims.IsSuperuser,
	}
}

// ListAdminUsers handles GET /v1/admin-users
func (h *AdminUserHandler) ListAdminUsers(c *gin.Context) {
	users, err := h.adminService.List(requester(c))
	if err != nil {
		writeError(c, err, "Admin user")
		return
	}

	utils.Success(c, 200, "Admin users retrieved", gin.H{
		"admin_users": users,
		"total":       len(users),
	})
}

// GetAdminUser handles GET /v1/admin-users/:id
func (h *AdminUserHandler) GetAdminUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.adminService.Get(id, requester(c))
	if err != nil {
		writeError(c, err, "Admin user")
		return
	}

	utils.Success(c, 200, "Admin user retrieved", user)
}

// CreateAdminUser handles POST /v1/admin-users
func (h *AdminUserHandler) CreateAdminUser(c *gin.Context) {
	var req service.CreateAdminUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.adminService.Create(&req, requester(c))
	if err != nil {
		writeError(c, err, "Admin user")
		return
	}

	utils.Success(c, 201, "Admin user created successfully", user)
}

// ReplaceAdminUserRequest is the full-replacement payload for PUT. All
// mutable fields must be present; omitted optional fields reset to their
// zero values. Username and created_by are immutable and never part of it.
type ReplaceAdminUserRequest struct {
	Email       string             `json:"email" binding:"omitempty,email"`
	FirstName   string             `json:"first_name"`
	LastName    string             `json:"last_name"`
	Password    *string            `json:"password"`
	Role        models.AdminRole   `json:"role" binding:"required"`
	Status      models.AdminStatus `json:"status" binding:"required"`
	Notes       string             `json:"notes"`
	IsStaff     bool               `json:"is_staff"`
	IsSuperuser bool               `json:"is_superuser"`
}

// ReplaceAdminUser handles PUT /v1/admin-users/:id
func (h *AdminUserHandler) ReplaceAdminUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ReplaceAdminUserRequest
	if !bindJSON(c, &req) {
		return
	}

	update := &service.UpdateAdminUserRequest{
		Email:       &req.Email,
		FirstName:   &req.FirstName,
		LastName:    &req.LastName,
		Password:    req.Password,
		Role:        &req.Role,
		Status:      &req.Status,
		Notes:       &req.Notes,
		IsStaff:     &req.IsStaff,
		IsSuperuser: &req.IsSuperuser,
	}
	user, err := h.adminService.Update(id, update, requester(c))
	if err != nil {
		writeError(c, err, "Admin user")
		return
	}

	utils.Success(c, 200, "Admin user updated successfully", user)
}

// UpdateAdminUser handles PATCH /v1/admin-users/:id
func (h *AdminUserHandler) UpdateAdminUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdateAdminUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.adminService.Update(id, &req, requester(c))
	if err != nil {
		writeError(c, err, "Admin user")
		return
	}

	utils.Success(c, 200, "Admin user updated successfully", user)
}

// DeleteAdminUser handles DELETE /v1/admin-users/:id
func (h *AdminUserHandler) DeleteAdminUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.adminService.Delete(id, requester(c)); err != nil {
		writeError(c, err, "Admin user")
		return
	}

	utils.Success(c, 200, "Admin user deleted successfully", nil)
}
