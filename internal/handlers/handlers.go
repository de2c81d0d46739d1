// Package handlers exposes the studio pipeline over HTTP.
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/qrstudio/qrstudio/internal/logo"
	"github.com/qrstudio/qrstudio/internal/studio"
)

// Handler carries the shared studio pipeline behind the HTTP handlers.
type Handler struct {
	studio       *studio.Studio
	maxLogoBytes int64
	log          zerolog.Logger
}

// New returns a Handler serving st. A non-positive maxLogoBytes falls
// back to the logo package default.
func New(st *studio.Studio, maxLogoBytes int64, log zerolog.Logger) *Handler {
	if maxLogoBytes <= 0 {
		maxLogoBytes = logo.DefaultMaxBytes
	}
	return &Handler{studio: st, maxLogoBytes: maxLogoBytes, log: log}
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// intParam reads an integer query parameter, falling back to def when the
// parameter is absent or not a number.
func intParam(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func truthy(s string) bool {
	return s == "1" || strings.EqualFold(s, "true")
}
