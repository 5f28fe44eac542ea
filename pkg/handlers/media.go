package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chronicle/pkg/services"
)

func (h *Handler) UploadCover(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	info, err := services.ReadCoverUpload(file, h.maxUploadBytes)
	switch {
	case errors.Is(err, services.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	case errors.Is(err, services.ErrNotAnImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file: " + err.Error()})
		return
	}

	h.studio.SetCover(info.URL)
	c.JSON(http.StatusOK, info)
}
