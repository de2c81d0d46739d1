package handlers

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qrstudio/qrstudio/internal/studio"
)

// InputHandler applies a partial configuration update and schedules a
// debounced regeneration.
//
// POST /api/session/input
func (h *Handler) InputHandler(c *gin.Context) {
	var in studio.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %v", err)})
		return
	}

	h.studio.Session.Apply(in)
	h.studio.Orch.Trigger()

	c.JSON(http.StatusAccepted, gin.H{"state": h.studio.State().String()})
}

// PreviewHandler returns the currently displayed artifact as a PNG data
// URI, together with the outcome of the last generation pass. While
// nothing is displayed yet the dataURI field is empty.
//
// GET /api/session/preview
func (h *Handler) PreviewHandler(c *gin.Context) {
	status, message := h.studio.Session.Status()
	resp := gin.H{
		"status":  status,
		"message": message,
		"cached":  status == studio.StatusCachedSuccess,
		"state":   h.studio.State().String(),
		"dataURI": "",
	}

	if art, key, ok := h.studio.Session.Shown(); ok {
		data, err := art.PNG()
		if err != nil {
			// The artifact was evicted and released between renders;
			// the next generation pass replaces it.
			h.log.Warn().Err(err).Str("key", key).Msg("displayed artifact unavailable")
		} else {
			resp["dataURI"] = "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
			resp["key"] = key
		}
	}

	c.JSON(http.StatusOK, resp)
}

// StatusHandler reports the pipeline state and cache occupancy.
//
// GET /api/session/status
func (h *Handler) StatusHandler(c *gin.Context) {
	status, message := h.studio.Session.Status()
	c.JSON(http.StatusOK, gin.H{
		"state":   h.studio.State().String(),
		"status":  status,
		"message": message,
		"hasLogo": h.studio.Session.HasLogo(),
		"cache": gin.H{
			"size":     h.studio.Cache.Len(),
			"capacity": h.studio.Cache.Capacity(),
		},
	})
}

// ClearHandler resets the session to defaults, clears the render cache
// and schedules a regeneration of the default content.
//
// POST /api/session/clear
func (h *Handler) ClearHandler(c *gin.Context) {
	h.studio.Session.Reset()
	h.studio.Orch.Trigger()

	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
