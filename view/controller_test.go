package view_test

import (
	"context"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/archive/archivetest"
	"github.com/user/setlist-archive-cli/layout"
	"github.com/user/setlist-archive-cli/mpv"
	"github.com/user/setlist-archive-cli/pkg/timeutil"
	"github.com/user/setlist-archive-cli/playback"
	"github.com/user/setlist-archive-cli/view"
)

type fakePlayer struct {
	mu    sync.Mutex
	t     float64
	state playback.State
	seeks []float64
	cb    view.Callbacks
}

func (p *fakePlayer) CurrentTime() (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.t, nil
}

func (p *fakePlayer) State() (playback.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state, nil
}

func (p *fakePlayer) SeekTo(s float64, _ bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seeks = append(p.seeks, s)
	p.t = s
	return nil
}

func (p *fakePlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = playback.Playing
	return nil
}

func (p *fakePlayer) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = playback.Paused
	return nil
}

func (p *fakePlayer) set(t float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.t = t
}

func (p *fakePlayer) seekLog() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]float64(nil), p.seeks...)
}

type harness struct {
	ctrl    *view.Controller
	clock   *timeutil.ManualClock
	mu      sync.Mutex
	players map[string]*fakePlayer
}

func (h *harness) player(id string) *fakePlayer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.players[id]
}

func start(t *testing.T) *harness {
	t.Helper()
	h := &harness{clock: timeutil.NewManualClock(), players: make(map[string]*fakePlayer)}
	h.ctrl = view.New(archivetest.Sample(), view.Options{
		Clock:   h.clock,
		Pending: []string{"20230101"},
		Players: func(v *archive.Video, cb view.Callbacks) (playback.Player, error) {
			p := &fakePlayer{state: playback.Unstarted, cb: cb}
			h.mu.Lock()
			h.players[v.ID] = p
			h.mu.Unlock()
			return p, nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = h.ctrl.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return h
}

func (h *harness) snapshot(t *testing.T) view.Snapshot {
	t.Helper()
	s, err := h.ctrl.Snapshot()
	require.NoError(t, err)
	return s
}

func countKind(s layout.Scene, k layout.Kind) int {
	n := 0
	for _, c := range s.Connectors {
		if c.Kind == k {
			n++
		}
	}
	return n
}

func TestNavigateDefaultCard(t *testing.T) {
	h := start(t)
	require.NoError(t, h.ctrl.Navigate(archive.Route{}))

	s := h.snapshot(t)
	assert.Equal(t, "20251130", s.ActiveDate)
	assert.Equal(t, archive.Route{Date: "20251130"}, s.Route)
	assert.False(t, s.Filtering())
	require.Len(t, s.Cards, 1)
	assert.Len(t, s.Tabs, 4)
	assert.Equal(t, 1, countKind(s.Scene, layout.TabConnector))
	assert.Equal(t, 2, countKind(s.Scene, layout.ListConnector))
	assert.NotNil(t, h.player("v20251130"))
	assert.Nil(t, h.player("v20240301"))
}

func TestNavigateRoutes(t *testing.T) {
	h := start(t)

	require.NoError(t, h.ctrl.Navigate(archive.Route{Date: "20240301"}))
	assert.Equal(t, "20240301", h.snapshot(t).ActiveDate)

	require.NoError(t, h.ctrl.Navigate(archive.Route{Date: "19990101"}))
	assert.Equal(t, "20251130", h.snapshot(t).ActiveDate)

	require.NoError(t, h.ctrl.Navigate(archive.Route{Song: "vines"}))
	s := h.snapshot(t)
	assert.True(t, s.Filtering())
	assert.Equal(t, archive.Route{Song: "vines"}, s.Route)
	require.Len(t, s.Cards, 1)
	assert.Equal(t, "20240301", s.Cards[0].Date)
	assert.Zero(t, countKind(s.Scene, layout.TabConnector))
	assert.Equal(t, 3, countKind(s.Scene, layout.ListConnector))

	require.NoError(t, h.ctrl.Navigate(archive.Route{Song: "nosuchsong"}))
	s = h.snapshot(t)
	assert.False(t, s.Filtering())
	assert.Equal(t, "20251130", s.ActiveDate)
}

func TestFilterAndClear(t *testing.T) {
	h := start(t)
	require.NoError(t, h.ctrl.Navigate(archive.Route{Date: "20240301"}))

	require.NoError(t, h.ctrl.ApplyFilter("Paris"))
	s := h.snapshot(t)
	require.True(t, s.Filtering())
	require.Len(t, s.Cards, 1)
	assert.Equal(t, "20250510", s.Cards[0].Date)
	assert.NotNil(t, h.player("v20250510a"))
	assert.NotNil(t, h.player("v20250510b"))

	require.NoError(t, h.ctrl.ApplyFilter("shenandoah"))
	s = h.snapshot(t)
	assert.Empty(t, s.Cards)
	assert.Equal(t, archive.NoPlayableMessage, s.Filter.Message)
	assert.Empty(t, s.Scene.Connectors)

	require.NoError(t, h.ctrl.ApplyFilter("   "))
	s = h.snapshot(t)
	assert.False(t, s.Filtering())
	assert.Equal(t, "20251130", s.ActiveDate)

	require.NoError(t, h.ctrl.ApplyFilter("usa"))
	require.NoError(t, h.ctrl.ClearFilter())
	assert.False(t, h.snapshot(t).Filtering())
}

func TestActivateCardUnknownDate(t *testing.T) {
	h := start(t)
	err := h.ctrl.ActivateCard("19990101")
	assert.ErrorIs(t, err, archive.ErrUnknownDate)
}

func TestClickEntryPlaysAndNotifies(t *testing.T) {
	h := start(t)
	got := make(chan playback.Highlight, 4)
	h.ctrl.Subscribe(func(hl playback.Highlight) { got <- hl })
	require.NoError(t, h.ctrl.Navigate(archive.Route{}))

	require.NoError(t, h.ctrl.ClickEntry("li-20251130-1"))
	p := h.player("v20251130")
	assert.Equal(t, []float64{120}, p.seekLog())

	s := h.snapshot(t)
	require.NotNil(t, s.Playing)
	assert.Equal(t, "John Henry", s.Playing.Title)
	assert.Equal(t, "v20251130", s.PlayingVideo)
	assert.Equal(t, 120.0, s.Position)
	c, ok := s.Scene.Playing()
	require.True(t, ok)
	assert.Equal(t, "li-20251130-1", c.Source)

	select {
	case hl := <-got:
		assert.Equal(t, "li-20251130-1", hl.Entry.ID)
	case <-time.After(time.Second):
		t.Fatal("no highlight notification")
	}

	err := h.ctrl.ClickEntry("li-19990101-0")
	assert.ErrorIs(t, err, view.ErrUnknownEntry)
}

func TestClickConnector(t *testing.T) {
	h := start(t)
	require.NoError(t, h.ctrl.Navigate(archive.Route{}))
	require.NoError(t, h.ctrl.ClickConnector("li-20251130-0"))
	assert.Equal(t, []float64{0}, h.player("v20251130").seekLog())

	assert.ErrorIs(t, h.ctrl.ClickConnector("li-20251130-2"), view.ErrUnknownEntry)
}

func TestPlayerEventsDrivePolling(t *testing.T) {
	h := start(t)
	require.NoError(t, h.ctrl.Navigate(archive.Route{}))
	p := h.player("v20251130")
	require.NotNil(t, p)

	p.Play()
	p.cb.StateChange(playback.Playing)
	s := h.snapshot(t)
	assert.Equal(t, playback.Playing, s.States["v20251130"])
	require.NotNil(t, s.Playing)
	assert.Equal(t, "Credits", s.Playing.Title)

	p.set(125)
	h.clock.Advance(playback.PollInterval)
	s = h.snapshot(t)
	require.NotNil(t, s.Playing)
	assert.Equal(t, "John Henry", s.Playing.Title)

	p.Pause()
	p.cb.StateChange(playback.Paused)
	s = h.snapshot(t)
	assert.Nil(t, s.Playing)
	_, ok := s.Scene.Playing()
	assert.False(t, ok)
}

func TestHoverThroughController(t *testing.T) {
	h := start(t)
	require.NoError(t, h.ctrl.Navigate(archive.Route{}))

	require.NoError(t, h.ctrl.HoverEntry("li-20251130-1"))
	c, ok := h.snapshot(t).Scene.Connector("li-20251130-1")
	require.True(t, ok)
	assert.True(t, c.Active)

	require.NoError(t, h.ctrl.LeaveEntry("li-20251130-1"))
	require.NoError(t, h.ctrl.HoverConnector("li-20251130-0"))
	s := h.snapshot(t)
	assert.True(t, s.Scene.EntryActive("li-20251130-0"))
	c, _ = s.Scene.Connector("li-20251130-1")
	assert.False(t, c.Active)

	require.NoError(t, h.ctrl.LeaveConnector("li-20251130-0"))
	assert.False(t, h.snapshot(t).Scene.EntryActive("li-20251130-0"))
}

func TestResizeRelaysOut(t *testing.T) {
	h := start(t)
	require.NoError(t, h.ctrl.Navigate(archive.Route{}))
	before := h.snapshot(t)

	require.NoError(t, h.ctrl.Resize(800))
	h.clock.Advance(time.Second)
	after := h.snapshot(t)
	assert.Equal(t, 800.0, after.Page.Width)
	assert.Equal(t, 800.0, after.Scene.Width)
	assert.NotEqual(t, before.Scene.Connectors[1].Path, after.Scene.Connectors[1].Path)
}

func TestReadyCallbackRedraws(t *testing.T) {
	h := start(t)
	require.NoError(t, h.ctrl.Navigate(archive.Route{}))
	h.clock.Advance(time.Second)

	h.player("v20251130").cb.Ready()
	require.NoError(t, h.ctrl.Do(func() {}))
	h.clock.Advance(view.ReadyDelay)
	assert.NotEmpty(t, h.snapshot(t).Scene.Connectors)
}

func TestLoopSurvivesPanics(t *testing.T) {
	h := start(t)
	require.NoError(t, h.ctrl.Post(func() { panic("boom") }))
	require.NoError(t, h.ctrl.Navigate(archive.Route{}))
	assert.Equal(t, "20251130", h.snapshot(t).ActiveDate)
}

func TestStoppedController(t *testing.T) {
	h := start(t)
	h.ctrl.Stop()
	assert.Eventually(t, func() bool {
		return h.ctrl.Post(func() {}) == view.ErrStopped
	}, time.Second, 10*time.Millisecond)
	_, err := h.ctrl.Snapshot()
	assert.ErrorIs(t, err, view.ErrStopped)
}

func TestClickDoesNotWaitForPlayerStart(t *testing.T) {
	dir := t.TempDir()
	ctrl := view.New(archivetest.Sample(), view.Options{
		Clock: timeutil.NewManualClock(),
		Players: func(v *archive.Video, cb view.Callbacks) (playback.Player, error) {
			return mpv.NewPlayer(v.ID, v.WatchURL(), cb.Ready, cb.StateChange, mpv.PlayerOptions{
				SocketDir:       dir,
				ConnectAttempts: 20,
				ConnectInterval: 100 * time.Millisecond,
				Launch:          func([]string) (*exec.Cmd, error) { return nil, nil },
			}), nil
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ctrl.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	require.NoError(t, ctrl.Navigate(archive.Route{}))

	finished := make(chan error, 1)
	go func() {
		if err := ctrl.ClickEntry("li-20251130-1"); err != nil {
			finished <- err
			return
		}
		finished <- ctrl.HoverEntry("li-20251130-0")
	}()
	select {
	case err := <-finished:
		require.NoError(t, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("click blocked the event loop while the player started")
	}

	s, err := ctrl.Snapshot()
	require.NoError(t, err)
	require.NotNil(t, s.Playing)
	assert.Equal(t, "John Henry", s.Playing.Title)
}
