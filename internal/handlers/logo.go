package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qrstudio/qrstudio/internal/logo"
)

// LogoUploadHandler ingests a center-logo image from a multipart form.
// Accepting a logo raises the error-correction level to H and schedules a
// regeneration; a rejected upload leaves the session untouched.
//
// POST /api/session/logo
func (h *Handler) LogoUploadHandler(c *gin.Context) {
	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing logo file"})
		return
	}
	if file.Size > h.maxLogoBytes {
		c.JSON(http.StatusRequestEntityTooLarge,
			gin.H{"error": fmt.Sprintf("Logo exceeds %d bytes", h.maxLogoBytes)})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot read upload: %v", err)})
		return
	}
	defer src.Close()

	asset, err := logo.Decode(src, file.Header.Get("Content-Type"), h.maxLogoBytes)
	if err != nil {
		switch {
		case errors.Is(err, logo.ErrTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		case errors.Is(err, logo.ErrUnsupportedType):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot decode logo: %v", err)})
		}
		return
	}

	level := h.studio.Session.SetLogo(asset)
	h.studio.Orch.Trigger()

	h.log.Info().Int("width", asset.Width).Int("height", asset.Height).Msg("logo accepted")
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"level":  level.String(),
		"width":  asset.Width,
		"height": asset.Height,
	})
}

// LogoDeleteHandler removes the current logo and schedules a
// regeneration.
//
// DELETE /api/session/logo
func (h *Handler) LogoDeleteHandler(c *gin.Context) {
	h.studio.Session.ClearLogo()
	h.studio.Orch.Trigger()

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
