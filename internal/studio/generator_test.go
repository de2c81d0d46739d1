package studio

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrstudio/qrstudio/internal/cache"
	"github.com/qrstudio/qrstudio/internal/render"
)

func TestRenderCachesByKey(t *testing.T) {
	c := cache.New(10, zerolog.Nop())
	g := NewGenerator(c, zerolog.Nop())

	cfg := defaultConfig()
	cfg.Content = "https://example.com"

	first, err := g.Render(cfg, nil)
	require.NoError(t, err)
	assert.False(t, first.Hit)

	second, err := g.Render(cfg, nil)
	require.NoError(t, err)
	assert.True(t, second.Hit)
	assert.Same(t, first.Raster, second.Raster)
	assert.Equal(t, 1, c.Len())
}

func TestRenderDistinctConfigs(t *testing.T) {
	c := cache.New(10, zerolog.Nop())
	g := NewGenerator(c, zerolog.Nop())

	a := defaultConfig()
	a.Content = "one"
	b := defaultConfig()
	b.Content = "two"

	ra, err := g.Render(a, nil)
	require.NoError(t, err)
	rb, err := g.Render(b, nil)
	require.NoError(t, err)

	assert.NotEqual(t, ra.Key, rb.Key)
	assert.Equal(t, 2, c.Len())
}

func TestRenderKeepsTenNewest(t *testing.T) {
	c := cache.New(10, zerolog.Nop())
	g := NewGenerator(c, zerolog.Nop())

	keys := make([]string, 12)
	rasters := make([]*render.Raster, 12)
	for i := range keys {
		cfg := defaultConfig()
		cfg.Content = fmt.Sprintf("https://example.com/%02d", i)
		res, err := g.Render(cfg, nil)
		require.NoError(t, err)
		keys[i] = res.Key
		rasters[i] = res.Raster
	}

	assert.Equal(t, keys[2:], c.Keys())
	for i := 0; i < 2; i++ {
		assert.Nil(t, rasters[i].Image(), "evicted raster %d should be released", i)
	}
	for i := 2; i < 12; i++ {
		assert.NotNil(t, rasters[i].Image())
	}
}

func TestRenderSurfaceError(t *testing.T) {
	c := cache.New(10, zerolog.Nop())
	g := NewGenerator(c, zerolog.Nop())

	cfg := defaultConfig()
	cfg.Content = "tiny"
	cfg.Size = 20

	_, err := g.Render(cfg, nil)
	assert.ErrorIs(t, err, render.ErrSurface)
	assert.Zero(t, c.Len(), "failed renders must not be cached")
}

func TestRenderVectorUncached(t *testing.T) {
	c := cache.New(10, zerolog.Nop())
	g := NewGenerator(c, zerolog.Nop())

	cfg := defaultConfig()
	cfg.Content = "https://example.com"

	v, err := g.RenderVector(cfg)
	require.NoError(t, err)

	svg, err := v.SVG()
	require.NoError(t, err)
	assert.True(t, strings.Contains(svg, "<svg"))
	assert.Zero(t, c.Len())
}
