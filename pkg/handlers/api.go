package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"chronicle/pkg/models"
	"chronicle/pkg/services"
	"chronicle/pkg/studio"
)

func (h *Handler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.studio.Snapshot())
}

func (h *Handler) SetMode(c *gin.Context) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := c.BindJSON(&req); err != nil {
		return
	}
	mode, err := models.ParseViewMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.studio.SetMode(mode)
	c.JSON(http.StatusOK, gin.H{"mode": mode})
}

func (h *Handler) GetArticle(c *gin.Context) {
	c.JSON(http.StatusOK, h.studio.Article())
}

func (h *Handler) UpdateContent(c *gin.Context) {
	var req struct {
		Content *string `json:"content"`
	}
	if err := c.BindJSON(&req); err != nil {
		return
	}
	if req.Content == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}
	h.studio.UpdateContent(*req.Content)
	c.JSON(http.StatusOK, gin.H{"status": "saved", "blocks": h.studio.Blocks()})
}

func (h *Handler) UpdateDetails(c *gin.Context) {
	var d studio.Details
	if err := c.BindJSON(&d); err != nil {
		return
	}
	c.JSON(http.StatusOK, h.studio.UpdateDetails(d))
}

func (h *Handler) SetFootnotes(c *gin.Context) {
	var notes []models.Footnote
	if err := c.BindJSON(&notes); err != nil {
		return
	}
	h.studio.SetFootnotes(notes)
	c.JSON(http.StatusOK, h.studio.Article().Footnotes)
}

func (h *Handler) AddFootnote(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BindJSON(&req); err != nil {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	c.JSON(http.StatusCreated, h.studio.AddFootnote(req.Text))
}

func (h *Handler) SetLocation(c *gin.Context) {
	var loc *models.Location
	if err := c.BindJSON(&loc); err != nil {
		return
	}
	h.studio.SetLocation(loc)
	c.JSON(http.StatusOK, gin.H{"location": h.studio.Article().Location})
}

func (h *Handler) GetBlocks(c *gin.Context) {
	c.JSON(http.StatusOK, h.studio.Blocks())
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func (h *Handler) ExportArticle(c *gin.Context) {
	format := c.DefaultQuery("format", "yaml")
	article := h.studio.Article()
	doc, err := services.ExportArticle(article, format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(article.Title), "-"), "-")
	if slug == "" {
		slug = "article"
	}
	ext, contentType := "md", "text/markdown; charset=utf-8"
	if format == "json" {
		ext, contentType = "json", "application/json; charset=utf-8"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, slug, ext))
	c.Data(http.StatusOK, contentType, doc)
}

func (h *Handler) ImportArticle(c *gin.Context) {
	body := c.Request.Body
	if h.maxUploadBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.maxUploadBytes)
	}
	content, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "document too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	article, err := services.ImportArticle(content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document: " + err.Error()})
		return
	}
	h.studio.ReplaceArticle(article)
	c.JSON(http.StatusOK, article)
}

func (h *Handler) ResetArticle(c *gin.Context) {
	h.studio.Reset()
	c.JSON(http.StatusOK, h.studio.Article())
}
