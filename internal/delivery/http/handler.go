package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gearmatch/backend/internal/domain"
	"github.com/gearmatch/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	engine      *usecase.RecommendationEngine
	preferences *usecase.PreferenceService
}

// NewHandler creates a new HTTP handler
func NewHandler(engine *usecase.RecommendationEngine, preferences *usecase.PreferenceService) *Handler {
	return &Handler{
		engine:      engine,
		preferences: preferences,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "gearmatch-backend",
		"version": "1.0.0",
	})
}

// recommendationRequest is the request body for POST /recommendations
type recommendationRequest struct {
	UserID string `json:"userId" binding:"required"`
	Limit  int    `json:"limit"`
}

// GetRecommendations handles recommendation requests. Scoring runs against
// the stored preferences for the requested user.
func (h *Handler) GetRecommendations(c *gin.Context) {
	var req recommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "userId is required",
		})
		return
	}

	scores, err := h.engine.GetRecommendations(c.Request.Context(), req.UserID, req.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":          req.UserID,
		"recommendations": scores,
		"count":           len(scores),
	})
}

// GetPreferences returns the stored preferences for a user
func (h *Handler) GetPreferences(c *gin.Context) {
	userID := c.Param("userId")

	prefs, err := h.preferences.Get(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// SavePreferences creates or replaces the stored preferences for a user.
// Saving invalidates any cached recommendations for that user.
func (h *Handler) SavePreferences(c *gin.Context) {
	userID := c.Param("userId")

	var prefs domain.StoredPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid preferences payload: " + err.Error(),
		})
		return
	}

	// The URL is authoritative for the user identity
	prefs.UserID = userID

	if err := h.preferences.Save(c.Request.Context(), &prefs); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPreferencesNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no preferences stored for this user"})
	case errors.Is(err, domain.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCapacityExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "enrichment capacity exhausted, try again later"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "recommendation request timed out"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
