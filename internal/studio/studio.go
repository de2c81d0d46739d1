package studio

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/qrstudio/qrstudio/internal/cache"
)

// Studio bundles the session, the generator and the debounce orchestrator
// behind one facade. The orchestrator's generation pass snapshots the
// session, renders it and publishes the result back.
type Studio struct {
	Session *Session
	Gen     *Generator
	Orch    *Orchestrator
	Cache   *cache.Cache
	log     zerolog.Logger
}

func New(c *cache.Cache, debounce time.Duration, log zerolog.Logger) *Studio {
	s := &Studio{
		Session: NewSession(c),
		Gen:     NewGenerator(c, log),
		Cache:   c,
		log:     log,
	}
	s.Orch = NewOrchestrator(debounce, s.generate, log)
	return s
}

// generate runs one full pass: snapshot the session, render it, publish
// the artifact. A failed pass records the error and leaves the previous
// artifact displayed.
func (s *Studio) generate() {
	cfg, asset := s.Session.Snapshot()
	res, err := s.Gen.Render(cfg, asset)
	if err != nil {
		s.log.Error().Err(err).Msg("generation failed")
		s.Session.Fail(err)
		return
	}
	s.Session.Display(res.Key, res.Raster, res.Hit)
	s.log.Debug().Str("key", res.Key).Bool("cache_hit", res.Hit).Msg("generation complete")
}

// Generate runs one pass immediately, bypassing the debounce window.
func (s *Studio) Generate() {
	s.generate()
}

// State reports the pipeline state.
func (s *Studio) State() State {
	return s.Orch.State()
}

// Close stops the pending debounce timer.
func (s *Studio) Close() {
	s.Orch.Stop()
}
