package evaluation

import (
	"context"
	"sync"
	"time"

	"okr/internal/domain/scoring"
)

// SaveFunc persists one draft snapshot.
type SaveFunc func(ctx context.Context, scores []scoring.DetailedScore) error

// Autosaver debounces draft saves for a single evaluation. Every Update
// resets the delay; the save fires once input goes quiet. A save never runs
// concurrently with itself: a flush that meets an in-flight save waits it out
// and then persists the pending snapshot itself. A snapshot whose content
// hash matches the last successful save is dropped without calling save.
type Autosaver struct {
	mu       sync.Mutex
	cond     *sync.Cond
	delay    time.Duration
	save     SaveFunc
	timer    *time.Timer
	pending  []scoring.DetailedScore
	lastHash string
	saving   bool
	stopped  bool
}

const DefaultAutosaveDelay = 3 * time.Second

func NewAutosaver(delay time.Duration, save SaveFunc) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	a := &Autosaver{delay: delay, save: save}
	a.cond = sync.NewCond(&a.mu)
	return a
}

// Update records the latest draft state and (re)starts the debounce timer.
func (a *Autosaver) Update(scores []scoring.DetailedScore) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}

	a.pending = scores
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, func() {
		a.flush(context.Background())
	})
}

// Flush saves immediately, bypassing the debounce delay. Used before submit
// so the stored draft matches what the rater sees. On a nil return the
// snapshot pending at call time (or a newer one) has been persisted, even if
// a timer-driven save was already in flight.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	return a.flush(ctx)
}

func (a *Autosaver) flush(ctx context.Context) error {
	a.mu.Lock()
	for {
		for a.saving {
			a.cond.Wait()
		}

		scores := a.pending
		hash := ContentHash(scores)
		if hash == a.lastHash {
			a.mu.Unlock()
			return nil
		}
		a.saving = true
		a.mu.Unlock()

		err := a.save(ctx, scores)

		a.mu.Lock()
		a.saving = false
		if err == nil {
			a.lastHash = hash
		}
		a.cond.Broadcast()
		if err != nil {
			// lastHash stays unchanged so the next flush retries.
			a.mu.Unlock()
			return err
		}
		// Pending may have moved while the save ran; loop until it is
		// caught up.
	}
}

// Stop cancels any pending timer. Pending changes are not saved; call Flush
// first if they should be.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
