package handlers

import (
	"net/http"
	"strings"

	"github.com/formteam/formtrack-backend/internal/models"
	"github.com/formteam/formtrack-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the superadmin account-management endpoints. The
// superadmin guard itself lives in the router middleware; handlers assume it.
type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) respondAdminError(c *gin.Context, err error, action string) {
	switch {
	case strings.Contains(err.Error(), "not found"):
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
	case strings.Contains(err.Error(), "superadmin"), strings.Contains(err.Error(), "admin is"):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action, "details": err.Error()})
	}
}

// GetAllAdmins godoc
// @Summary List all admins
// @Description List every admin account regardless of approval status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Admin
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/admin/users [get]
func (h *AdminHandler) GetAllAdmins(c *gin.Context) {
	admins, err := h.adminService.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get admins", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, admins)
}

// GetPendingAdmins godoc
// @Summary List pending admins
// @Description List admin accounts awaiting approval
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Admin
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/admin/pending-users [get]
func (h *AdminHandler) GetPendingAdmins(c *gin.Context) {
	admins, err := h.adminService.ListPending()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get pending admins", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, admins)
}

// GetRejectedAdmins godoc
// @Summary List rejected admins
// @Description List admin accounts that were rejected
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Admin
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/admin/rejected-users [get]
func (h *AdminHandler) GetRejectedAdmins(c *gin.Context) {
	admins, err := h.adminService.ListRejected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get rejected admins", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, admins)
}

// ApproveAdmin godoc
// @Summary Approve a pending admin
// @Description Move a pending admin account to the approved state
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 200 {object} models.Admin
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/admin/approve-user/{id} [post]
func (h *AdminHandler) ApproveAdmin(c *gin.Context) {
	admin, err := h.adminService.Approve(c.Param("id"))
	if err != nil {
		h.respondAdminError(c, err, "approve admin")
		return
	}

	c.JSON(http.StatusOK, admin)
}

// RejectAdmin godoc
// @Summary Reject a pending admin
// @Description Move a pending admin account to the rejected state, recording a reason
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Param request body models.RejectAdminRequest true "Rejection reason"
// @Success 200 {object} models.Admin
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/admin/reject-user/{id} [post]
func (h *AdminHandler) RejectAdmin(c *gin.Context) {
	var req models.RejectAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	admin, err := h.adminService.Reject(c.Param("id"), req.Reason)
	if err != nil {
		h.respondAdminError(c, err, "reject admin")
		return
	}

	c.JSON(http.StatusOK, admin)
}

// ApproveRejectedAdmin godoc
// @Summary Approve a rejected admin
// @Description Move a rejected admin account back to the approved state
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 200 {object} models.Admin
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/admin/approve-rejected-user/{id} [post]
func (h *AdminHandler) ApproveRejectedAdmin(c *gin.Context) {
	admin, err := h.adminService.ApproveRejected(c.Param("id"))
	if err != nil {
		h.respondAdminError(c, err, "approve admin")
		return
	}

	c.JSON(http.StatusOK, admin)
}

// RejectApprovedAdmin godoc
// @Summary Revoke an approved admin
// @Description Move an approved admin account to the rejected state, recording a reason
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Param request body models.RejectAdminRequest true "Rejection reason"
// @Success 200 {object} models.Admin
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/admin/reject-approved-user/{id} [post]
func (h *AdminHandler) RejectApprovedAdmin(c *gin.Context) {
	var req models.RejectAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	admin, err := h.adminService.RejectApproved(c.Param("id"), req.Reason)
	if err != nil {
		h.respondAdminError(c, err, "reject admin")
		return
	}

	c.JSON(http.StatusOK, admin)
}

// CreateAdmin godoc
// @Summary Create an admin directly
// @Description Create an admin account that is approved and verified immediately
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateAdminRequest true "Create admin request"
// @Success 201 {object} models.Admin
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/admin/create-user [post]
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req models.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	admin, err := h.adminService.CreateAdmin(&req)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if strings.Contains(err.Error(), "invalid role") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create admin", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, admin)
}

// DeleteAdmin godoc
// @Summary Delete an admin
// @Description Delete an admin account with all its forms and campaigns
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/admin/delete-user/{id} [delete]
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	adminID := c.Param("id")

	// A superadmin cannot remove their own account.
	if adminID == c.MustGet("admin_id").(string) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	if err := h.adminService.DeleteAdmin(adminID); err != nil {
		h.respondAdminError(c, err, "delete admin")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin deleted successfully"})
}

// ResetAdminPassword godoc
// @Summary Reset an admin's password
// @Description Set a new password for an admin account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Param request body models.ResetPasswordRequest true "Reset password request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/admin/reset-password/{id} [post]
func (h *AdminHandler) ResetAdminPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if err := h.adminService.ResetPassword(c.Param("id"), req.NewPassword); err != nil {
		h.respondAdminError(c, err, "reset password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}
