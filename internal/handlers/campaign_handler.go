package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/formteam/formtrack-backend/internal/models"
	"github.com/formteam/formtrack-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
}

func NewCampaignHandler(campaignService *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
	}
}

func campaignID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID"})
		return 0, false
	}
	return uint(id), true
}

// CreateCampaign godoc
// @Summary Create a campaign
// @Description Create a campaign with a freshly allocated tracking link
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCampaignRequest true "Create campaign request"
// @Success 201 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	ownerID := c.MustGet("admin_id").(string)

	var req models.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	campaign, err := h.campaignService.CreateCampaign(ownerID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "invalid campaign status") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

// GetCampaigns godoc
// @Summary List own campaigns
// @Description List all campaigns owned by the authenticated admin
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.CampaignResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/campaigns [get]
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	ownerID := c.MustGet("admin_id").(string)

	campaigns, err := h.campaignService.GetCampaignsByOwner(ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaigns", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, campaigns)
}

// GetCampaign godoc
// @Summary Get a campaign
// @Description Get an owned campaign by ID
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	ownerID := c.MustGet("admin_id").(string)

	id, ok := campaignID(c)
	if !ok {
		return
	}

	campaign, err := h.campaignService.GetCampaignByID(ownerID, id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// UpdateCampaign godoc
// @Summary Update a campaign
// @Description Update an owned campaign's fields, including its status
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Param request body models.UpdateCampaignRequest true "Update campaign request"
// @Success 200 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/campaigns/{id} [put]
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	ownerID := c.MustGet("admin_id").(string)

	id, ok := campaignID(c)
	if !ok {
		return
	}

	var req models.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	campaign, err := h.campaignService.UpdateCampaign(ownerID, id, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		if strings.Contains(err.Error(), "invalid campaign status") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// RegenerateTrackingCode godoc
// @Summary Regenerate a campaign's tracking link
// @Description Allocate a new tracking code for an owned campaign; the old link stops resolving
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/campaigns/{id}/regenerate-link [post]
func (h *CampaignHandler) RegenerateTrackingCode(c *gin.Context) {
	ownerID := c.MustGet("admin_id").(string)

	id, ok := campaignID(c)
	if !ok {
		return
	}

	campaign, err := h.campaignService.RegenerateTrackingCode(ownerID, id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to regenerate tracking link", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// GetClicks godoc
// @Summary List a campaign's recent clicks
// @Description List the most recent click log rows of an owned campaign
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Param limit query int false "Maximum rows to return" default(100)
// @Success 200 {array} models.ClickLog
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/campaigns/{id}/clicks [get]
func (h *CampaignHandler) GetClicks(c *gin.Context) {
	ownerID := c.MustGet("admin_id").(string)

	id, ok := campaignID(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}

	clicks, err := h.campaignService.GetClicks(ownerID, id, limit)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get clicks", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, clicks)
}

// DeleteCampaign godoc
// @Summary Delete a campaign
// @Description Delete an owned campaign; its tracking link stops resolving
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/campaigns/{id} [delete]
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	ownerID := c.MustGet("admin_id").(string)

	id, ok := campaignID(c)
	if !ok {
		return
	}

	if err := h.campaignService.DeleteCampaign(ownerID, id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted successfully"})
}
