package handlers

import (
	"net/http"

	"slotbook/config"
	"slotbook/services/calendar"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalendarHandler exposes the external calendar connection lifecycle.
type CalendarHandler struct {
	Service calendar.CalendarService
	Logger  *zap.Logger
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(svc calendar.CalendarService, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{Service: svc, Logger: logger}
}

// Connect handles GET /api/calendar/connect: returns the provider consent URL.
func (h *CalendarHandler) Connect(c *gin.Context) {
	userID := c.GetString("userID")
	c.JSON(http.StatusOK, gin.H{"url": h.Service.AuthorizationURL(userID)})
}

// Callback handles GET /api/calendar/callback, the browser redirect from the
// provider. The state parameter carries the userID embedded by Connect. It
// always redirects back to the frontend, flagging success or failure.
func (h *CalendarHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	frontendURL := config.AppConfig.FrontendURL

	if code == "" || state == "" {
		c.Redirect(http.StatusFound, frontendURL+"/dashboard?calendar=error")
		return
	}

	token, err := h.Service.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		h.Logger.Error("calendar OAuth exchange failed", zap.Error(err))
		c.Redirect(http.StatusFound, frontendURL+"/dashboard?calendar=error")
		return
	}

	if err := h.Service.Connect(c.Request.Context(), state, token); err != nil {
		h.Logger.Error("failed to persist calendar tokens", zap.String("userID", state), zap.Error(err))
		c.Redirect(http.StatusFound, frontendURL+"/dashboard?calendar=error")
		return
	}

	c.Redirect(http.StatusFound, frontendURL+"/dashboard?calendar=connected")
}

// Disconnect handles POST /api/calendar/disconnect.
func (h *CalendarHandler) Disconnect(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Service.Disconnect(c.Request.Context(), userID); err != nil {
		h.Logger.Error("failed to disconnect calendar", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to disconnect calendar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Calendar disconnected successfully"})
}
