// Package studio coordinates the interactive generation session: it holds
// the working configuration, renders it into cached artifacts and
// debounces bursts of input changes into single generation passes.
package studio

import (
	"image/color"
	"sync"

	"github.com/qrstudio/qrstudio/internal/cache"
	"github.com/qrstudio/qrstudio/internal/encode"
	"github.com/qrstudio/qrstudio/internal/logo"
	"github.com/qrstudio/qrstudio/internal/qrgen"
	"github.com/qrstudio/qrstudio/internal/render"
)

// Bounds applied to incoming configuration values. Out-of-range values
// are clamped, never rejected.
const (
	MinSize         = 64
	MaxSize         = 2000
	MaxMargin       = 16
	MinLogoPercent  = 5
	MaxLogoPercent  = 50
	DefaultSize     = 400
	DefaultMargin   = 2
	DefaultLogoSize = 20
)

// Outcome of the most recent generation pass, as reported to clients.
const (
	StatusNone          = ""
	StatusSuccess       = "success"
	StatusCachedSuccess = "cached-success"
	StatusError         = "error"
)

// Input is a partial update to the session configuration. Nil fields
// leave the current value untouched; Fields, when present, replaces the
// whole field set.
type Input struct {
	Template        *string           `json:"template"`
	Fields          map[string]string `json:"fields"`
	Size            *int              `json:"size"`
	Margin          *int              `json:"margin"`
	Foreground      *string           `json:"foreground"`
	Background      *string           `json:"background"`
	Level           *string           `json:"level"`
	Style           *string           `json:"style"`
	LogoSizePercent *int              `json:"logoSizePercent"`
}

// Session is the single editing session behind the studio UI. It owns the
// working configuration, the uploaded logo and the currently displayed
// artifact.
type Session struct {
	mu       sync.Mutex
	kind     encode.Kind
	fields   encode.Fields
	cfg      qrgen.Config
	logo     *logo.Asset
	cache    *cache.Cache
	shown    *render.Raster
	shownKey string
	status   string
	message  string
}

func defaultConfig() qrgen.Config {
	return qrgen.Config{
		Size:            DefaultSize,
		Foreground:      color.RGBA{0, 0, 0, 255},
		Background:      color.RGBA{255, 255, 255, 255},
		Level:           qrgen.LevelMedium,
		Margin:          DefaultMargin,
		Style:           qrgen.StyleSquare,
		LogoSizePercent: DefaultLogoSize,
	}
}

// NewSession returns a session with default configuration, tied to the
// render cache whose evictions it must respect.
func NewSession(c *cache.Cache) *Session {
	return &Session{
		kind:   encode.KindText,
		fields: encode.Fields{},
		cfg:    defaultConfig(),
		cache:  c,
	}
}

// Apply folds in a partial input update. Invalid values degrade locally:
// colors that do not parse keep their current value, numbers are clamped
// and unknown template names select the default content.
func (s *Session) Apply(in Input) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Template != nil {
		s.kind, _ = encode.ParseKind(*in.Template)
	}
	if in.Fields != nil {
		s.fields = make(encode.Fields, len(in.Fields))
		for k, v := range in.Fields {
			s.fields[k] = v
		}
	}
	if in.Size != nil {
		s.cfg.Size = clamp(*in.Size, MinSize, MaxSize)
	}
	if in.Margin != nil {
		s.cfg.Margin = clamp(*in.Margin, 0, MaxMargin)
	}
	if in.Foreground != nil {
		s.cfg.Foreground = qrgen.ParseColor(*in.Foreground, s.cfg.Foreground)
	}
	if in.Background != nil {
		s.cfg.Background = qrgen.ParseColor(*in.Background, s.cfg.Background)
	}
	if in.Level != nil {
		s.cfg.Level = qrgen.ParseLevel(*in.Level)
	}
	if in.Style != nil {
		s.cfg.Style = qrgen.ParseStyle(*in.Style)
	}
	if in.LogoSizePercent != nil {
		s.cfg.LogoSizePercent = clamp(*in.LogoSizePercent, MinLogoPercent, MaxLogoPercent)
	}

	// A logo needs the strongest error correction no matter what the
	// level input said.
	if s.logo != nil {
		s.cfg.Level = qrgen.LevelHigh
	}
}

// SetLogo stores the uploaded asset and raises the error-correction level
// to H so the overlay stays scannable. It returns the level now in
// effect.
func (s *Session) SetLogo(a *logo.Asset) qrgen.Level {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logo = a
	s.cfg.Level = qrgen.LevelHigh
	return s.cfg.Level
}

// ClearLogo removes the logo. The error-correction level keeps its raised
// value until the next explicit level input.
func (s *Session) ClearLogo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logo = nil
}

// Snapshot returns the configuration to render next, with the content
// string derived from the current template and fields, plus the logo
// asset to overlay.
func (s *Session) Snapshot() (qrgen.Config, *logo.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.cfg
	cfg.Content = encode.Encode(s.kind, s.fields)
	cfg.HasLogo = s.logo != nil
	if cfg.HasLogo {
		cfg.Level = qrgen.LevelHigh
	}
	return cfg, s.logo
}

// Display records art as the artifact currently shown and flips the
// status to success, or cached-success when the artifact came from the
// cache. The previous artifact is released only when the cache no longer
// owns it; a cached artifact stays alive for future hits.
func (s *Session) Display(key string, art *render.Raster, cached bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shown != nil && s.shown != art && s.shownKey != key {
		if !s.cache.Contains(s.shownKey) {
			s.shown.Release()
		}
	}
	s.shown = art
	s.shownKey = key
	s.status = StatusSuccess
	if cached {
		s.status = StatusCachedSuccess
	}
	s.message = ""
}

// Fail records a generation error. The displayed artifact is left as it
// was so the UI keeps showing the last good render.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusError
	s.message = err.Error()
}

// Shown returns the displayed artifact and its cache key.
func (s *Session) Shown() (*render.Raster, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shown == nil {
		return nil, "", false
	}
	return s.shown, s.shownKey, true
}

// Status returns the outcome of the most recent generation pass and, for
// a failed one, its message.
func (s *Session) Status() (status, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.message
}

// HasLogo reports whether a logo asset is set.
func (s *Session) HasLogo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logo != nil
}

// Logo returns the current logo asset, nil when none is set.
func (s *Session) Logo() *logo.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logo
}

// Reset returns the session to its defaults: fields, logo and the
// displayed artifact are dropped and the render cache is cleared.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Clear()
	if s.shown != nil {
		s.shown.Release()
	}
	s.shown = nil
	s.shownKey = ""
	s.kind = encode.KindText
	s.fields = encode.Fields{}
	s.cfg = defaultConfig()
	s.logo = nil
	s.status = StatusNone
	s.message = ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
