package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/medgear/medgear_api/internal/service"
	"github.com/medgear/medgear_api/internal/utils"
)

const visitorCookieName = "mg_visitor"

// visitorCookieMaxAge keeps the visitor identity for one year.
const visitorCookieMaxAge = 365 * 24 * 60 * 60

// AnalyticsHandler handles visit recording on the public site and the
// statistics dashboard for the back office.
type AnalyticsHandler struct {
	analytics    *service.AnalyticsService
	cookieSecret string
}

// NewAnalyticsHandler constructs an AnalyticsHandler.
func NewAnalyticsHandler(analytics *service.AnalyticsService, cookieSecret string) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, cookieSecret: cookieSecret}
}

// RecordVisit handles POST /v1/visits
//
// The visitor identity lives in a signed cookie. A missing or tampered
// cookie gets a fresh identity rather than an error, so forged values can
// never inflate unique-visitor counts and tracking never breaks the page.
func (h *AnalyticsHandler) RecordVisit(c *gin.Context) {
	var req struct {
		Page string `json:"page" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	visitorID := ""
	if raw, err := c.Cookie(visitorCookieName); err == nil {
		if id, ok := utils.DecodeVisitorCookie(raw, h.cookieSecret); ok {
			visitorID = id
		}
	}
	if visitorID == "" {
		visitorID = utils.NewVisitorID()
		c.SetCookie(visitorCookieName, utils.EncodeVisitorCookie(visitorID, h.cookieSecret),
			visitorCookieMaxAge, "/", "", false, true)
	}

	result := h.analytics.RecordVisit(visitorID, req.Page, c.Request.UserAgent())

	// Always 200: the page must render regardless of recording outcome.
	utils.Success(c, 200, "Visit processed", gin.H{
		"result": string(result),
	})
}

// GetStats handles GET /v1/admin/statistics
// Routes using it are gated on the view_statistics privilege.
func (h *AnalyticsHandler) GetStats(c *gin.Context) {
	stats := h.analytics.ComputeStats(c.Request.Context())
	if !stats.Success {
		utils.Error(c, 500, "STATS_UNAVAILABLE", "Visitor statistics are temporarily unavailable")
		return
	}
	utils.Success(c, 200, "Visitor statistics retrieved", stats)
}
