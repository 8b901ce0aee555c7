package view

import (
	"context"
	"errors"
	"time"

	"github.com/user/setlist-archive-cli/pkg/timeutil"
)

// ErrStopped is returned by operations on a controller whose loop has exited.
var ErrStopped = errors.New("view: controller stopped")

// Run processes posted events until ctx is cancelled or Stop is called.
// Only one Run may be active.
func (c *Controller) Run(ctx context.Context) error {
	defer c.shutdown()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.quit:
			return nil
		case fn := <-c.events:
			c.run(fn)
		}
	}
}

// Stop makes Run return. Pending events are dropped.
func (c *Controller) Stop() {
	c.stopOnce.Do(func() { close(c.quit) })
}

// Post queues fn to run on the loop. It never waits for fn.
func (c *Controller) Post(fn func()) error {
	select {
	case <-c.quit:
		return ErrStopped
	default:
	}
	select {
	case <-c.quit:
		return ErrStopped
	case c.events <- fn:
		return nil
	}
}

// Do runs fn on the loop and waits for it. It must not be called from the
// loop itself, including from highlight subscribers.
func (c *Controller) Do(fn func()) error {
	done := make(chan struct{})
	if err := c.Post(func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-c.quit:
		return ErrStopped
	}
}

func (c *Controller) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("event handler panicked", "panic", r)
		}
	}()
	fn()
}

func (c *Controller) shutdown() {
	c.Stop()
	c.machine.Stop()
	c.scheduler.Stop()
	c.closePlayers()
}

// loopClock delivers timer callbacks through the controller's loop.
type loopClock struct {
	c     *Controller
	inner timeutil.Clock
}

func (l loopClock) AfterFunc(d time.Duration, f func()) timeutil.Timer {
	return l.inner.AfterFunc(d, func() {
		if err := l.c.Post(f); err != nil {
			l.c.log.Debug("timer dropped", "error", err)
		}
	})
}
