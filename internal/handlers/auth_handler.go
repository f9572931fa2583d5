package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/formteam/formtrack-backend/internal/models"
	"github.com/formteam/formtrack-backend/internal/services/auth"

	"github.com/gin-gonic/gin"
)

// OTPVerifier is the slice of auth.OTPService the handler depends on.
type OTPVerifier interface {
	SendOTP(email string) error
	VerifyOTP(email, code string) error
}

type AuthHandler struct {
	authService *auth.AuthService
	otpService  OTPVerifier
}

func NewAuthHandler(authService *auth.AuthService, otpService OTPVerifier) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		otpService:  otpService,
	}
}

// Register godoc
// @Summary Register a new admin account
// @Description Create an admin account pending superadmin approval
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request (email, password, name, company)"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	admin, err := h.authService.Register(&req)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration received. Verify your email and wait for approval.",
		"admin":   admin,
	})
}

// Login godoc
// @Summary Login
// @Description Authenticate an admin with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request (email and password)"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		if strings.Contains(err.Error(), "invalid credentials") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if strings.Contains(err.Error(), "pending") || strings.Contains(err.Error(), "rejected") || strings.Contains(err.Error(), "not verified") {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// SendOTP godoc
// @Summary Send email verification code
// @Description Send a one-time verification code to the registered email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SendOTPRequest true "Send OTP request (email)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/send-otp [post]
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req models.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if err := h.otpService.SendOTP(req.Email); err != nil {
		if errors.Is(err, auth.ErrEmailNotRegistered) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// VerifyOTP godoc
// @Summary Verify email
// @Description Verify the registered email with a one-time code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.VerifyOTPRequest true "Verify OTP request (email and code)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if err := h.otpService.VerifyOTP(req.Email, req.Code); err != nil {
		if errors.Is(err, auth.ErrOTPIncorrect) || errors.Is(err, auth.ErrOTPExpired) || errors.Is(err, auth.ErrOTPNotRequested) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// GetProfile godoc
// @Summary Get current admin profile
// @Description Get the authenticated admin's profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Admin
// @Failure 401 {object} map[string]interface{}
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	admin := c.MustGet("admin").(*models.Admin)

	c.JSON(http.StatusOK, admin)
}

// UpdateProfile godoc
// @Summary Update current admin profile
// @Description Update the authenticated admin's name and company
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateProfileRequest true "Update profile request"
// @Success 200 {object} models.Admin
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/update-profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	adminID := c.MustGet("admin_id").(string)

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	admin, err := h.authService.UpdateProfile(adminID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, admin)
}

// ChangePassword godoc
// @Summary Change password
// @Description Change the authenticated admin's password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ChangePasswordRequest true "Change password request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	adminID := c.MustGet("admin_id").(string)

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if err := h.authService.ChangePassword(adminID, req.CurrentPassword, req.NewPassword); err != nil {
		if strings.Contains(err.Error(), "current password is incorrect") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
