// Package reveal reports, once per element, when a block of lines scrolls far
// enough into a viewport to count as seen.
package reveal

import (
	"sync"
)

// DefaultThreshold is the visible fraction at which an element counts as seen.
const DefaultThreshold = 0.15

// Element is a vertical span of content, measured in lines from the top of
// the document.
type Element struct {
	ID     string
	Top    int
	Height int
}

// Observer registers one-shot callbacks that run when an element is seen.
type Observer interface {
	Observe(el Element, fn func(id string)) *Subscription
}

// Subscription is the handle of one registration. Cancel stops delivery; it
// is safe to call more than once and after the callback has fired.
type Subscription struct {
	id     string
	once   sync.Once
	cancel func()
	mu     sync.Mutex
	done   bool
}

// ID returns the id of the observed element.
func (s *Subscription) ID() string { return s.id }

// Cancel unsubscribes without firing.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
	s.finish()
}

// Done reports whether the subscription fired or was cancelled.
func (s *Subscription) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Subscription) finish() {
	s.mu.Lock()
	s.done = true
	s.mu.Unlock()
}

type watch struct {
	el  Element
	fn  func(string)
	sub *Subscription
}

// Tracker is an Observer driven by explicit scroll positions.
type Tracker struct {
	mu        sync.Mutex
	threshold float64
	watches   []*watch
}

// NewTracker returns a Tracker firing at the given ratio. Values outside
// (0, 1] fall back to DefaultThreshold.
func NewTracker(threshold float64) *Tracker {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Tracker{threshold: threshold}
}

// Threshold returns the ratio the tracker fires at.
func (t *Tracker) Threshold() float64 { return t.threshold }

// Observe registers fn for el. It fires at most once, from a later Scroll.
func (t *Tracker) Observe(el Element, fn func(id string)) *Subscription {
	w := &watch{el: el, fn: fn}
	w.sub = &Subscription{id: el.ID, cancel: func() { t.remove(w) }}

	t.mu.Lock()
	t.watches = append(t.watches, w)
	t.mu.Unlock()
	return w.sub
}

// Move updates the span of a pending element, for when content above it
// changes height. It reports whether id was pending.
func (t *Tracker) Move(id string, top, height int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	found := false
	for _, w := range t.watches {
		if w.el.ID == id {
			w.el.Top, w.el.Height = top, height
			found = true
		}
	}
	return found
}

// Scroll reports a new viewport of height lines starting at top. Every pending
// element whose intersection ratio reaches the threshold is unsubscribed and
// its callback run, in registration order. It returns the ids that fired.
func (t *Tracker) Scroll(top, height int) []string {
	t.mu.Lock()
	var fired []*watch
	kept := t.watches[:0]
	for _, w := range t.watches {
		if visible, ratio := Ratio(w.el, top, height); visible && ratio >= t.threshold {
			fired = append(fired, w)
			continue
		}
		kept = append(kept, w)
	}
	for i := len(kept); i < len(t.watches); i++ {
		t.watches[i] = nil
	}
	t.watches = kept
	t.mu.Unlock()

	ids := make([]string, 0, len(fired))
	for _, w := range fired {
		w.sub.once.Do(func() {})
		w.sub.finish()
		if w.fn != nil {
			w.fn(w.el.ID)
		}
		ids = append(ids, w.el.ID)
	}
	return ids
}

// Pending returns the ids still waiting to be seen, in registration order.
func (t *Tracker) Pending() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, len(t.watches))
	for i, w := range t.watches {
		ids[i] = w.el.ID
	}
	return ids
}

func (t *Tracker) remove(target *watch) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, w := range t.watches {
		if w == target {
			t.watches = append(t.watches[:i], t.watches[i+1:]...)
			return
		}
	}
}

// Ratio returns whether el overlaps the viewport [top, top+height) and the
// fraction of el that is inside it. An element taller than the viewport is
// measured against the viewport height, so filling the screen counts as fully
// visible. A zero-height element is fully visible when its top line is in the
// viewport.
func Ratio(el Element, top, height int) (bool, float64) {
	if height <= 0 {
		return false, 0
	}
	bottom := top + height
	if el.Height <= 0 {
		in := el.Top >= top && el.Top < bottom
		if in {
			return true, 1
		}
		return false, 0
	}
	lo := max(el.Top, top)
	hi := min(el.Top+el.Height, bottom)
	if hi <= lo {
		return false, 0
	}
	return true, float64(hi-lo) / float64(min(el.Height, height))
}

type immediate struct{}

// Immediate fires every callback during Observe. It stands in where no
// viewport is known, so content is never left hidden.
var Immediate Observer = immediate{}

func (immediate) Observe(el Element, fn func(id string)) *Subscription {
	sub := &Subscription{id: el.ID}
	sub.once.Do(func() {})
	sub.finish()
	if fn != nil {
		fn(el.ID)
	}
	return sub
}
