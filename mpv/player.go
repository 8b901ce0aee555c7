package mpv

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/user/setlist-archive-cli/playback"
)

// Observer ids for the properties a Player watches.
const (
	observePause uint64 = iota + 1
	observeEOF
	observeCache
)

// Launcher starts the process that serves the IPC socket. It may return a
// nil command when the process is managed elsewhere.
type Launcher func(args []string) (*exec.Cmd, error)

// PlayerOptions configure a Player.
type PlayerOptions struct {
	SocketDir string
	ExtraArgs []string
	Logger    *slog.Logger
	Launch    Launcher
	// ConnectAttempts and ConnectInterval control the wait for a new
	// process's socket.
	ConnectAttempts int
	ConnectInterval time.Duration
}

// Player plays one stream in its own mpv process. The process is started on
// the first SeekTo or Play; the wait for its socket happens in the
// background, and requests made meanwhile are applied once it answers. It
// implements the playback capabilities.
type Player struct {
	id      string
	url     string
	socket  string
	opts    PlayerOptions
	log     *slog.Logger
	onReady func()
	onState func(playback.State)

	// opMu orders control requests against the apply step of a start.
	opMu sync.Mutex

	mu       sync.Mutex
	client   *Client
	cmd      *exec.Cmd
	gen      uint64
	starting bool
	start    float64
	seek     float64
	seekSet  bool
	wantPlay bool
	started  bool
	played   bool
	paused   bool
	eof      bool
	cache    bool
	last     playback.State
}

// NewPlayer creates an unstarted player for url. onReady fires once the
// process answers on its socket; onState fires on every state change. Both
// may be nil and run on background goroutines.
func NewPlayer(id, url string, onReady func(), onState func(playback.State), opts PlayerOptions) *Player {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Launch == nil {
		opts.Launch = LaunchMpv
	}
	if opts.ConnectAttempts <= 0 {
		opts.ConnectAttempts = connectAttempts
	}
	if opts.ConnectInterval <= 0 {
		opts.ConnectInterval = connectInterval
	}
	return &Player{
		id:      id,
		url:     url,
		socket:  SocketPath(opts.SocketDir, id),
		opts:    opts,
		log:     opts.Logger.With("video", id),
		onReady: onReady,
		onState: onState,
		paused:  true,
		last:    playback.Unstarted,
	}
}

// Socket returns the IPC socket path.
func (p *Player) Socket() string {
	return p.socket
}

// CurrentTime returns the stream position. Until the process answers it is
// the position the process was asked to start at, or 0.
func (p *Player) CurrentTime() (float64, error) {
	p.mu.Lock()
	c := p.client
	var pending float64
	switch {
	case p.seekSet:
		pending = p.seek
	case p.starting:
		pending = p.start
	}
	p.mu.Unlock()
	if c == nil {
		return pending, nil
	}
	return c.GetTimePos()
}

// State returns the state derived from the observed properties.
func (p *Player) State() (playback.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked(), nil
}

// SeekTo jumps to seconds. A player that is not running is launched there;
// one that is still starting seeks once it answers. mpv fetches whatever the
// seek needs, so allowSeekAhead is always honoured.
func (p *Player) SeekTo(seconds float64, allowSeekAhead bool) error {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.mu.Lock()
	c := p.client
	switch {
	case c != nil:
	case p.starting:
		p.seek, p.seekSet = seconds, true
		p.mu.Unlock()
		return nil
	default:
		p.mu.Unlock()
		return p.launch(seconds)
	}
	p.mu.Unlock()

	if err := c.Seek(seconds); err != nil {
		return fmt.Errorf("seek %s: %w", p.id, err)
	}
	return nil
}

// Play unpauses, launching the process at the beginning if needed.
func (p *Player) Play() error {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.mu.Lock()
	c := p.client
	if c == nil {
		starting := p.starting
		p.wantPlay = true
		p.mu.Unlock()
		if starting {
			return nil
		}
		return p.launch(0)
	}
	p.played = true
	p.mu.Unlock()

	if err := c.SetProperty("pause", false); err != nil {
		return fmt.Errorf("play %s: %w", p.id, err)
	}
	return nil
}

// Pause pauses a running process and drops a play request made while it
// starts. It does nothing before the process starts.
func (p *Player) Pause() error {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.mu.Lock()
	c := p.client
	p.wantPlay = false
	p.mu.Unlock()
	if c == nil {
		return nil
	}
	if err := c.SetProperty("pause", true); err != nil {
		return fmt.Errorf("pause %s: %w", p.id, err)
	}
	return nil
}

// Close quits mpv and removes the socket. A start still in progress is
// abandoned.
func (p *Player) Close() error {
	p.mu.Lock()
	c, cmd := p.client, p.cmd
	p.client, p.cmd = nil, nil
	p.gen++
	p.started, p.starting = false, false
	p.seekSet, p.wantPlay = false, false
	p.mu.Unlock()

	var errs []error
	if c != nil {
		if _, err := c.Command("quit"); err != nil && !errors.Is(err, ErrNotConnected) {
			p.log.Debug("quit mpv", "error", err)
		}
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := kill(cmd); err != nil {
		errs = append(errs, err)
	}
	if err := os.Remove(p.socket); err != nil && !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// launch starts mpv at start seconds and connects to it in the background.
// The caller holds opMu and no client is running.
func (p *Player) launch(start float64) error {
	_ = os.Remove(p.socket)
	cmd, err := p.opts.Launch(Args(p.socket, p.url, start, p.opts.ExtraArgs))
	if err != nil {
		p.mu.Lock()
		p.wantPlay = false
		p.mu.Unlock()
		return fmt.Errorf("launch player %s: %w", p.id, err)
	}

	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.cmd = cmd
	p.starting, p.start = true, start
	p.played = false
	p.mu.Unlock()

	if cmd != nil {
		go p.wait(cmd)
	}
	go p.connect(gen, cmd, start)
	p.log.Info("player launched", "socket", p.socket, "start", start)
	return nil
}

// connect waits for the socket of the process launched as gen, then applies
// the requests made while it started.
func (p *Player) connect(gen uint64, cmd *exec.Cmd, start float64) {
	c := NewClient(p.socket)
	c.OnEvent(func(ev Event) { p.handleEvent(c, ev) })
	if err := connectWithRetry(c, p.opts.ConnectAttempts, p.opts.ConnectInterval); err != nil {
		p.log.Warn("connect to player", "error", err)
		if err := kill(cmd); err != nil {
			p.log.Debug("kill mpv", "error", err)
		}
		p.mu.Lock()
		if p.gen != gen {
			p.mu.Unlock()
			return
		}
		p.cmd = nil
		p.starting, p.seekSet, p.wantPlay = false, false, false
		p.last = playback.Ended
		p.mu.Unlock()
		if p.onState != nil {
			p.onState(playback.Ended)
		}
		return
	}

	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.mu.Lock()
	if p.gen != gen {
		p.mu.Unlock()
		c.Close()
		return
	}
	p.client = c
	p.starting, p.started = false, true
	p.paused, p.eof, p.cache = true, false, false
	seek, seekSet := p.seek, p.seekSet
	play := p.wantPlay
	p.seekSet, p.wantPlay = false, false
	p.mu.Unlock()

	for _, o := range []struct {
		id   uint64
		name string
	}{{observePause, "pause"}, {observeEOF, "eof-reached"}, {observeCache, "paused-for-cache"}} {
		if err := c.ObserveProperty(o.id, o.name); err != nil {
			p.log.Warn("observe property", "property", o.name, "error", err)
		}
	}

	if seekSet && seek != start {
		if err := c.Seek(seek); err != nil {
			p.log.Warn("seek after start", "position", seek, "error", err)
		}
	}
	if play {
		p.mu.Lock()
		p.played = true
		p.mu.Unlock()
		if err := c.SetProperty("pause", false); err != nil {
			p.log.Warn("play after start", "error", err)
		}
	}

	if p.onReady != nil {
		go p.onReady()
	}
	p.log.Info("player started", "socket", p.socket, "start", start)
}

func kill(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

func (p *Player) wait(cmd *exec.Cmd) {
	err := cmd.Wait()
	p.log.Debug("mpv exited", "error", err)
	p.mu.Lock()
	if p.cmd == cmd {
		p.cmd = nil
	}
	p.mu.Unlock()
}

func (p *Player) handleEvent(c *Client, ev Event) {
	p.mu.Lock()
	if p.client != c {
		p.mu.Unlock()
		return
	}
	switch ev.Name {
	case EventPropertyChange:
		on, _ := ev.Data.(bool)
		switch ev.ID {
		case observePause:
			p.paused = on
		case observeEOF:
			p.eof = on
		case observeCache:
			p.cache = on
		}
	case EventDisconnected:
		p.client = nil
		p.started = false
	default:
		p.mu.Unlock()
		return
	}
	state := p.stateLocked()
	changed := state != p.last
	p.last = state
	p.mu.Unlock()

	if changed && p.onState != nil {
		p.onState(state)
	}
}

func (p *Player) stateLocked() playback.State {
	switch {
	case !p.started:
		if p.last != playback.Unstarted {
			return playback.Ended
		}
		return playback.Unstarted
	case p.eof:
		return playback.Ended
	case p.paused && !p.played:
		return playback.Cued
	case p.paused:
		return playback.Paused
	case p.cache:
		return playback.Buffering
	default:
		return playback.Playing
	}
}
