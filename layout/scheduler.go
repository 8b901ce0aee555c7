package layout

import (
	"time"

	"github.com/user/setlist-archive-cli/pkg/timeutil"
)

// RedrawStagger lists when a requested redraw runs, relative to the request.
// The later passes catch boxes that settle after images and players load.
var RedrawStagger = []time.Duration{0, 50 * time.Millisecond, 150 * time.Millisecond, 300 * time.Millisecond}

// Scheduler runs redraws on a clock. Requests are not coalesced; the redraw
// it drives must be idempotent.
type Scheduler struct {
	clock   timeutil.Clock
	redraw  func()
	seq     int
	pending map[int]timeutil.Timer
}

// NewScheduler creates a scheduler calling redraw.
func NewScheduler(clock timeutil.Clock, redraw func()) *Scheduler {
	return &Scheduler{clock: clock, redraw: redraw, pending: make(map[int]timeutil.Timer)}
}

// Request redraws now and again at every later RedrawStagger offset.
func (s *Scheduler) Request() {
	for _, d := range RedrawStagger {
		if d == 0 {
			s.redraw()
			continue
		}
		s.After(d)
	}
}

// After schedules a single redraw.
func (s *Scheduler) After(d time.Duration) {
	s.seq++
	id := s.seq
	s.pending[id] = s.clock.AfterFunc(d, func() {
		delete(s.pending, id)
		s.redraw()
	})
}

// Pending reports how many redraws are scheduled.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Stop cancels every pending redraw.
func (s *Scheduler) Stop() {
	for id, t := range s.pending {
		t.Stop()
		delete(s.pending, id)
	}
}
