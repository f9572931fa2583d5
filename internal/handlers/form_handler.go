package handlers

import (
	"net/http"
	"strings"

	"github.com/formteam/formtrack-backend/internal/models"
	"github.com/formteam/formtrack-backend/internal/services"
	"github.com/formteam/formtrack-backend/internal/services/excel"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type FormHandler struct {
	formService  *services.FormService
	excelService *excel.Service
}

func NewFormHandler(formService *services.FormService, excelService *excel.Service) *FormHandler {
	return &FormHandler{
		formService:  formService,
		excelService: excelService,
	}
}

// CreateForm godoc
// @Summary Create a form
// @Description Create a form owned by the authenticated admin
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateFormRequest true "Create form request"
// @Success 201 {object} models.FormResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/forms [post]
func (h *FormHandler) CreateForm(c *gin.Context) {
	ownerID := c.MustGet("admin_id").(string)

	var req models.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	form, err := h.formService.CreateForm(ownerID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create form", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, form)
}

// GetForms godoc
// @Summary List own forms
// @Description List all forms owned by the authenticated admin
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.FormResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/forms [get]
func (h *FormHandler) GetForms(c *gin.Context) {
	ownerID := c.MustGet("admin_id").(string)

	forms, err := h.formService.GetFormsByOwner(ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get forms", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, forms)
}

// GetPublicForm godoc
// @Summary Get a form for rendering
// @Description Fetch a form definition by ID, without owner details
// @Tags forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} models.FormResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/forms/{id} [get]
func (h *FormHandler) GetPublicForm(c *gin.Context) {
	form, err := h.formService.GetPublicForm(c.Param("id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get form", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, form)
}

// SubmitForm godoc
// @Summary Submit a form
// @Description Record a public submission against a form and return its redirect URL
// @Tags forms
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param request body models.SubmissionData true "Submission payload"
// @Success 201 {object} models.SubmitFormResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/forms/{id}/submit [post]
func (h *FormHandler) SubmitForm(c *gin.Context) {
	var data models.SubmissionData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission payload", "details": err.Error()})
		return
	}

	response, err := h.formService.SubmitForm(c.Param("id"), data)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit form", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetSubmissions godoc
// @Summary List form submissions
// @Description List submissions of a form owned by the authenticated admin, newest first
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Success 200 {array} models.Submission
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/forms/{id}/submissions [get]
func (h *FormHandler) GetSubmissions(c *gin.Context) {
	ownerID := c.MustGet("admin_id").(string)

	submissions, err := h.formService.GetSubmissions(ownerID, c.Param("id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get submissions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, submissions)
}

// ExportSubmissions godoc
// @Summary Export form submissions
// @Description Download the submissions of an owned form as an xlsx workbook
// @Tags forms
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Success 200 {file} binary
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/forms/{id}/export [get]
func (h *FormHandler) ExportSubmissions(c *gin.Context) {
	ownerID := c.MustGet("admin_id").(string)
	formID := c.Param("id")

	if _, err := h.formService.GetOwnedForm(ownerID, formID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get form", "details": err.Error()})
		return
	}

	submissions, err := h.formService.GetSubmissions(ownerID, formID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get submissions", "details": err.Error()})
		return
	}

	file, err := h.excelService.ExportSubmissions(submissions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=submissions.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		logrus.WithError(err).Error("Failed to stream export")
	}
}

// DeleteForm godoc
// @Summary Delete a form
// @Description Delete an owned form together with its submissions
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/forms/{id} [delete]
func (h *FormHandler) DeleteForm(c *gin.Context) {
	ownerID := c.MustGet("admin_id").(string)

	if err := h.formService.DeleteForm(ownerID, c.Param("id")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete form", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Form deleted successfully"})
}
