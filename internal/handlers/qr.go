package handlers

import (
	"errors"
	"fmt"
	"image/color"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qrstudio/qrstudio/internal/encode"
	"github.com/qrstudio/qrstudio/internal/qrgen"
	"github.com/qrstudio/qrstudio/internal/render"
	"github.com/qrstudio/qrstudio/internal/studio"
)

// QRCodeHandler renders a QR code straight from query parameters. Raster
// output goes through the render cache; SVG output is built fresh per
// request and never carries the logo overlay.
//
// GET /api/qr?template=wifi&ssid=Home&encryption=WPA&format=png&size=400
func (h *Handler) QRCodeHandler(c *gin.Context) {
	kind, _ := encode.ParseKind(c.Query("template"))
	fields := encode.Fields{}
	for _, name := range encode.FieldNames(kind) {
		if v := c.Query(name); v != "" {
			fields[name] = v
		}
	}
	// Back-compat alias for plain content.
	if kind == encode.KindText && fields["text"] == "" {
		if data := c.Query("data"); data != "" {
			fields["text"] = data
		}
	}

	cfg := qrgen.Config{
		Content:         encode.Encode(kind, fields),
		Size:            clampInt(intParam(c, "size", studio.DefaultSize), studio.MinSize, studio.MaxSize),
		Foreground:      qrgen.ParseColor(c.Query("fg"), color.RGBA{0, 0, 0, 255}),
		Background:      qrgen.ParseColor(c.Query("bg"), color.RGBA{255, 255, 255, 255}),
		Level:           qrgen.ParseLevel(c.DefaultQuery("level", "M")),
		Margin:          clampInt(intParam(c, "margin", studio.DefaultMargin), 0, studio.MaxMargin),
		Style:           qrgen.ParseStyle(c.Query("style")),
		LogoSizePercent: clampInt(intParam(c, "logosize", studio.DefaultLogoSize), studio.MinLogoPercent, studio.MaxLogoPercent),
	}

	asset := h.studio.Session.Logo()
	if asset != nil && truthy(c.Query("logo")) {
		cfg.HasLogo = true
		cfg.Level = qrgen.LevelHigh
	} else {
		asset = nil
	}

	format := strings.ToLower(c.DefaultQuery("format", "png"))
	if format == "jpeg" {
		format = "jpg"
	}

	switch format {
	case "svg":
		v, err := h.studio.Gen.RenderVector(cfg)
		if err != nil {
			h.renderError(c, err)
			return
		}
		svg, err := v.SVG()
		if err != nil {
			h.renderError(c, err)
			return
		}
		h.writeArtifact(c, "image/svg+xml", "svg", []byte(svg))

	case "jpg":
		res, err := h.studio.Gen.Render(cfg, asset)
		if err != nil {
			h.renderError(c, err)
			return
		}
		data, err := res.Raster.JPEG()
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.Header("X-Render-Cache", cacheState(res.Hit))
		h.writeArtifact(c, "image/jpeg", "jpg", data)

	case "png":
		res, err := h.studio.Gen.Render(cfg, asset)
		if err != nil {
			h.renderError(c, err)
			return
		}
		data, err := res.Raster.PNG()
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.Header("X-Render-Cache", cacheState(res.Hit))
		h.writeArtifact(c, "image/png", "png", data)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unsupported format: %s", format)})
	}
}

// writeArtifact sends the encoded artifact, attaching a dated filename
// when the request asked for a download.
func (h *Handler) writeArtifact(c *gin.Context, contentType, ext string, data []byte) {
	if truthy(c.Query("download")) {
		name := fmt.Sprintf("qrcode-%s.%s", time.Now().UTC().Format("2006-01-02"), ext)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, contentType, data)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	if errors.Is(err, render.ErrSurface) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot render: %v", err)})
		return
	}
	h.log.Error().Err(err).Msg("render failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to generate QR code: %v", err)})
}

func cacheState(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
