package studio

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/qrstudio/qrstudio/internal/cache"
	"github.com/qrstudio/qrstudio/internal/logo"
	"github.com/qrstudio/qrstudio/internal/qrgen"
	"github.com/qrstudio/qrstudio/internal/render"
)

// Generator renders configurations into raster artifacts, serving
// repeated configurations from the render cache.
type Generator struct {
	mu    sync.Mutex
	cache *cache.Cache
	log   zerolog.Logger
}

// Result is one finished raster pass.
type Result struct {
	Key    string
	Raster *render.Raster
	Hit    bool
}

func NewGenerator(c *cache.Cache, log zerolog.Logger) *Generator {
	return &Generator{cache: c, log: log}
}

// Render returns the raster for cfg, reusing the cached artifact when the
// canonical key matches. Only one render runs at a time.
func (g *Generator) Render(cfg qrgen.Config, asset *logo.Asset) (Result, error) {
	key := cfg.Key()

	g.mu.Lock()
	defer g.mu.Unlock()

	if art, ok := g.cache.Get(key); ok {
		if r, ok := art.(*render.Raster); ok {
			g.log.Debug().Str("key", key).Msg("render cache hit")
			return Result{Key: key, Raster: r, Hit: true}, nil
		}
	}

	start := time.Now()
	grid, err := qrgen.Encode(cfg.Content, cfg.Level)
	if err != nil {
		return Result{}, err
	}
	r, err := render.Rasterize(cfg, grid, asset)
	if err != nil {
		return Result{}, err
	}
	g.cache.Put(key, r)

	g.log.Debug().
		Str("key", key).
		Int("side", r.Side()).
		Dur("elapsed", time.Since(start)).
		Msg("rendered raster")
	return Result{Key: key, Raster: r, Hit: false}, nil
}

// RenderVector builds a fresh SVG artifact for cfg. Vector output is
// never cached; each call re-encodes the grid.
func (g *Generator) RenderVector(cfg qrgen.Config) (*render.Vector, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	grid, err := qrgen.Encode(cfg.Content, cfg.Level)
	if err != nil {
		return nil, err
	}
	return render.Vectorize(cfg, grid)
}
