package handlers

import (
	"net/http"

	"github.com/formteam/formtrack-backend/internal/services"
	"github.com/formteam/formtrack-backend/internal/tracking"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type TrackHandler struct {
	resolver       *tracking.Resolver
	clickLogger    *services.ClickLogService
	landingBaseURL string
}

func NewTrackHandler(resolver *tracking.Resolver, clickLogger *services.ClickLogService, landingBaseURL string) *TrackHandler {
	return &TrackHandler{
		resolver:       resolver,
		clickLogger:    clickLogger,
		landingBaseURL: landingBaseURL,
	}
}

// Track godoc
// @Summary Resolve a tracking link
// @Description Redirect the visitor to the campaign offer, or to the landing stop page with a reason
// @Tags tracking
// @Param code path string true "Tracking code"
// @Success 302
// @Router /track/{code} [get]
func (h *TrackHandler) Track(c *gin.Context) {
	code := c.Param("code")

	resolution, err := h.resolver.Resolve(code)
	if err != nil {
		// Lookup failures still redirect; the visitor never sees an error page.
		logrus.WithError(err).WithField("code", code).Error("Tracking code lookup failed")
	}

	// Every hit on a known campaign is logged, whatever its status.
	if resolution.CampaignID != 0 {
		h.clickLogger.Record(resolution.CampaignID, services.ClickMetadata{
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
			Referer:   c.GetHeader("Referer"),
		})
	}

	c.Redirect(http.StatusFound, tracking.RedirectTarget(resolution, h.landingBaseURL))
}
