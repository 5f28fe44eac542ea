package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chronicle/pkg/models"
	"chronicle/pkg/services"
	"chronicle/pkg/studio"
)

type pageData struct {
	State  studio.State
	Blocks []models.ContentBlock
	Topic  string
	Modes  []models.ViewMode
}

// Index renders the page for the current mode. ?mode= switches first.
func (h *Handler) Index(c *gin.Context) {
	if raw := c.Query("mode"); raw != "" {
		mode, err := models.ParseViewMode(raw)
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		h.studio.SetMode(mode)
	}

	state := h.studio.Snapshot()
	c.HTML(http.StatusOK, "index.html", pageData{
		State:  state,
		Blocks: h.studio.Blocks(),
		Topic:  services.DeriveTopic(state.Article.Content),
		Modes:  []models.ViewMode{models.ModeRead, models.ModeEdit, models.ModeConfigure},
	})
}
