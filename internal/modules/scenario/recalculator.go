package scenario

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DebounceDelay coalesces rapid parameter edits into one evaluation.
const DebounceDelay = 250 * time.Millisecond

// Recalculator debounces scenario evaluations. Each Schedule call cancels any
// pending evaluation and arms a fresh timer, so a burst of edits fires exactly
// once with the last parameters.
type Recalculator struct {
	service *Service
	onEval  func(Params, Result)
	delay   time.Duration
	log     zerolog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewRecalculator creates a debounced recalculator. onEval is invoked with
// the settled parameters and their result after each burst.
func NewRecalculator(service *Service, onEval func(Params, Result), log zerolog.Logger) *Recalculator {
	return &Recalculator{
		service: service,
		onEval:  onEval,
		delay:   DebounceDelay,
		log:     log.With().Str("service", "scenario_recalculator").Logger(),
	}
}

// Schedule queues an evaluation of params, replacing any pending one.
func (r *Recalculator) Schedule(params Params) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}

	r.timer = time.AfterFunc(r.delay, func() {
		result := r.service.Evaluate(params)
		r.log.Debug().
			Float64("orders", result.Orders).
			Float64("revenue", result.Revenue).
			Msg("Scenario recalculated")

		if r.onEval != nil {
			r.onEval(params, result)
		}
	})
}

// Stop cancels any pending evaluation.
func (r *Recalculator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
