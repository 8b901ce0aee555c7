package playback

import (
	"log/slog"
	"math"
	"time"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/pkg/timeutil"
	"github.com/user/setlist-archive-cli/tracks"
)

const (
	// PollInterval is how often a playing video's clock is sampled.
	PollInterval = 500 * time.Millisecond
	// ToggleWindow is how close (in seconds) to an entry's start the player
	// must be for a second click on the playing entry to pause instead of seek.
	ToggleWindow = 5.0
)

// Highlight describes a change of the playing entry. Entry is nil when the
// highlight was cleared.
type Highlight struct {
	VideoID  string
	Entry    *archive.Entry
	Previous *archive.Entry
}

// Machine owns the single playing designation. It is either idle or playing
// exactly one entry of one video. It is not safe for concurrent use: every
// method, and every callback scheduled on its clock, must run on one
// goroutine.
type Machine struct {
	index *tracks.Index
	clock timeutil.Clock
	log   *slog.Logger

	players map[string]Player
	pollers map[string]*poller

	videoID string
	entry   *archive.Entry

	listeners []func(Highlight)
}

type poller struct {
	timer timeutil.Timer
}

// NewMachine creates an idle machine.
func NewMachine(index *tracks.Index, clock timeutil.Clock, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{
		index:   index,
		clock:   clock,
		log:     logger,
		players: make(map[string]Player),
		pollers: make(map[string]*poller),
	}
}

// OnHighlight registers fn for every change of the playing entry.
func (m *Machine) OnHighlight(fn func(Highlight)) {
	m.listeners = append(m.listeners, fn)
}

// Attach makes a player available under a video id.
func (m *Machine) Attach(videoID string, p Player) {
	m.players[videoID] = p
}

// Player returns the player attached under a video id.
func (m *Machine) Player(videoID string) (Player, bool) {
	p, ok := m.players[videoID]
	return p, ok
}

// Detach forgets a player, stopping its poller and clearing the highlight
// if the video owned it.
func (m *Machine) Detach(videoID string) {
	m.stopPoller(videoID)
	delete(m.players, videoID)
	if m.videoID == videoID {
		m.clear()
	}
}

// Playing returns the owning video and playing entry.
func (m *Machine) Playing() (videoID string, entry *archive.Entry, ok bool) {
	if m.entry == nil {
		return "", nil, false
	}
	return m.videoID, m.entry, true
}

// IsPlaying reports whether the entry with the given anchor is the playing one.
func (m *Machine) IsPlaying(entryID string) bool {
	return m.entry != nil && m.entry.ID == entryID
}

// Polling reports whether a poller is running for the video.
func (m *Machine) Polling(videoID string) bool {
	_, ok := m.pollers[videoID]
	return ok
}

// Activate handles a click on an entry. Clicking the playing entry near its
// start while its video plays pauses it; any other click seeks the entry's
// video to the entry and plays it, pausing whichever video owned the
// highlight before. Clicks on entries whose player is missing or cannot
// seek do nothing.
func (m *Machine) Activate(e *archive.Entry) {
	if e == nil || !e.Linked() {
		return
	}
	p, ok := m.players[e.VideoID]
	if !ok {
		m.log.Debug("click before player is ready", "video", e.VideoID, "entry", e.ID)
		return
	}
	seeker, ok := p.(Seeker)
	if !ok {
		m.log.Debug("player cannot seek", "video", e.VideoID)
		return
	}

	if m.entry == e && m.nearStart(p, e) {
		if pauser, ok := p.(Pauser); ok {
			if err := pauser.Pause(); err != nil {
				m.log.Warn("pause failed", "video", e.VideoID, "error", err)
			}
		}
		m.stopPoller(e.VideoID)
		m.clear()
		return
	}

	if err := seeker.SeekTo(e.Start, true); err != nil {
		m.log.Warn("seek failed", "video", e.VideoID, "start", e.Start, "error", err)
		return
	}

	if m.videoID != "" && m.videoID != e.VideoID {
		prev := m.videoID
		if pauser, ok := m.players[prev].(Pauser); ok {
			if err := pauser.Pause(); err != nil {
				m.log.Debug("pause of previous video failed", "video", prev, "error", err)
			}
		}
		m.stopPoller(prev)
	}
	if starter, ok := p.(Starter); ok {
		if err := starter.Play(); err != nil {
			m.log.Warn("play failed", "video", e.VideoID, "error", err)
		}
	}
	m.set(e.VideoID, e)
}

// nearStart reports whether p is playing within ToggleWindow of e's start.
func (m *Machine) nearStart(p Player, e *archive.Entry) bool {
	st, err := p.State()
	if err != nil || st != Playing {
		return false
	}
	now, err := p.CurrentTime()
	if err != nil {
		return false
	}
	return math.Abs(now-e.Start) < ToggleWindow
}

// HandleStateChange reacts to a player's state notification.
func (m *Machine) HandleStateChange(videoID string, s State) {
	switch s {
	case Playing:
		m.startPoller(videoID)
		now := 0.0
		if p, ok := m.players[videoID]; ok {
			if t, err := p.CurrentTime(); err == nil {
				now = t
			}
		}
		m.sync(videoID, now)
	case Paused, Ended:
		m.stopPoller(videoID)
		if m.videoID == videoID {
			m.clear()
		}
	}
}

// Stop cancels every poller.
func (m *Machine) Stop() {
	for id := range m.pollers {
		m.stopPoller(id)
	}
}

// sync moves the highlight to the entry active at now, unless another
// video owns it.
func (m *Machine) sync(videoID string, now float64) {
	if m.videoID != "" && m.videoID != videoID {
		return
	}
	e, ok := m.index.ActiveEntry(videoID, now)
	if !ok {
		return
	}
	if e != m.entry {
		m.set(videoID, e)
	}
}

func (m *Machine) startPoller(videoID string) {
	m.stopPoller(videoID)
	if _, ok := m.players[videoID]; !ok || !m.index.Has(videoID) {
		return
	}
	p := &poller{}
	m.pollers[videoID] = p
	m.arm(videoID, p)
}

func (m *Machine) arm(videoID string, p *poller) {
	p.timer = m.clock.AfterFunc(PollInterval, func() {
		if m.pollers[videoID] != p {
			return
		}
		m.tick(videoID)
		if m.pollers[videoID] == p {
			m.arm(videoID, p)
		}
	})
}

func (m *Machine) stopPoller(videoID string) {
	p, ok := m.pollers[videoID]
	if !ok {
		return
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	delete(m.pollers, videoID)
}

func (m *Machine) tick(videoID string) {
	p, ok := m.players[videoID]
	if !ok {
		return
	}
	st, err := p.State()
	if err != nil || st != Playing {
		return
	}
	now, err := p.CurrentTime()
	if err != nil {
		m.log.Debug("poll time unavailable", "video", videoID, "error", err)
		return
	}
	m.sync(videoID, now)
}

// set and clear are the only writers of videoID and entry.
func (m *Machine) set(videoID string, e *archive.Entry) {
	prev := m.entry
	m.videoID, m.entry = videoID, e
	if prev != e {
		m.emit(Highlight{VideoID: videoID, Entry: e, Previous: prev})
	}
}

func (m *Machine) clear() {
	if m.entry == nil && m.videoID == "" {
		return
	}
	prev, video := m.entry, m.videoID
	m.videoID, m.entry = "", nil
	m.emit(Highlight{VideoID: video, Previous: prev})
}

func (m *Machine) emit(h Highlight) {
	for _, fn := range m.listeners {
		fn(h)
	}
}
