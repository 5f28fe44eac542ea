package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"chronicle/pkg/gemini"
	"chronicle/pkg/models"
	"chronicle/pkg/studio"
)

const (
	sessionLatKey = "position_lat"
	sessionLngKey = "position_lng"
)

func (h *Handler) FetchInsight(c *gin.Context) {
	insight, err := h.studio.FetchInsight(c.Request.Context())
	if err != nil {
		writeToolError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insight": insight})
}

func (h *Handler) GenerateImage(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.BindJSON(&req); err != nil {
		return
	}
	ref, err := h.studio.GenerateImage(c.Request.Context(), req.Prompt)
	if err != nil {
		writeToolError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coverImage": ref})
}

// GroundLocation uses the position stored in the session as a bias.
func (h *Handler) GroundLocation(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BindJSON(&req); err != nil {
		return
	}
	result, err := h.studio.GroundLocation(c.Request.Context(), req.Name, sessionPosition(c))
	if err != nil {
		writeToolError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": result != nil, "result": result})
}

// SetPosition remembers the browser's coordinates for location lookups.
func (h *Handler) SetPosition(c *gin.Context) {
	var pos models.LatLng
	if err := c.BindJSON(&pos); err != nil {
		return
	}
	if pos.Lat < -90 || pos.Lat > 90 || pos.Lng < -180 || pos.Lng > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}
	session := sessions.Default(c)
	session.Set(sessionLatKey, pos.Lat)
	session.Set(sessionLngKey, pos.Lng)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, pos)
}

func sessionPosition(c *gin.Context) *models.LatLng {
	session := sessions.Default(c)
	lat, okLat := session.Get(sessionLatKey).(float64)
	lng, okLng := session.Get(sessionLngKey).(float64)
	if !okLat || !okLng {
		return nil
	}
	return &models.LatLng{Lat: lat, Lng: lng}
}

func writeToolError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, studio.ErrPanelBusy), errors.Is(err, studio.ErrArticleReplaced):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, studio.ErrEmptyPrompt), errors.Is(err, studio.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case gemini.IsNoImageData(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI service request failed"})
	}
}
