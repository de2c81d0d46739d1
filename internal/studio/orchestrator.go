package studio

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet window after the last input change before
// a generation pass starts.
const DefaultDebounce = 200 * time.Millisecond

// State describes where the generation pipeline currently is. A pipeline
// that is both debouncing and generating reports Generating.
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateGenerating
)

func (s State) String() string {
	switch s {
	case StateDebouncing:
		return "debouncing"
	case StateGenerating:
		return "generating"
	}
	return "idle"
}

// Orchestrator collapses bursts of triggers into single generation
// passes. Triggers inside the debounce window restart it; a fire that
// lands while a pass is still running is dropped, since that pass already
// captured the latest input when it started or a later trigger will
// follow.
type Orchestrator struct {
	mu         sync.Mutex
	delay      time.Duration
	run        func()
	timer      *time.Timer
	epoch      uint64
	debouncing bool
	generating bool
	log        zerolog.Logger
}

// NewOrchestrator wires run as the generation pass. A delay of zero or
// below falls back to DefaultDebounce.
func NewOrchestrator(delay time.Duration, run func(), log zerolog.Logger) *Orchestrator {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Orchestrator{delay: delay, run: run, log: log}
}

// Trigger starts or restarts the debounce window. Each restart opens a
// new window epoch; a timer that already expired for a previous epoch
// fires into the void.
func (o *Orchestrator) Trigger() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.timer != nil {
		o.timer.Stop()
	}
	o.epoch++
	epoch := o.epoch
	o.debouncing = true
	o.timer = time.AfterFunc(o.delay, func() { o.fire(epoch) })
}

func (o *Orchestrator) fire(epoch uint64) {
	o.mu.Lock()
	// Stop() cannot cancel a timer that has already expired, and a timer
	// can expire right as Trigger restarts the window. Both leave this
	// callback holding an old epoch; the window it belonged to is gone.
	if epoch != o.epoch {
		o.mu.Unlock()
		return
	}
	o.debouncing = false
	if o.generating {
		o.log.Debug().Msg("generation already running, dropping trigger")
		o.mu.Unlock()
		return
	}
	o.generating = true
	o.mu.Unlock()

	// The generating flag must clear on every exit path, panics
	// included, or the pipeline would refuse all further passes.
	defer func() {
		if r := recover(); r != nil {
			o.log.Error().Interface("panic", r).Msg("generation pass panicked")
		}
		o.mu.Lock()
		o.generating = false
		o.mu.Unlock()
	}()

	o.run()
}

// State returns the current pipeline state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch {
	case o.generating:
		return StateGenerating
	case o.debouncing:
		return StateDebouncing
	}
	return StateIdle
}

// Stop cancels a pending debounce window, including one whose timer has
// already expired but not yet run. A pass that already started runs to
// completion.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	o.epoch++
	o.debouncing = false
}
