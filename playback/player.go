// Package playback keeps a single "now playing" setlist entry in step with
// the clocks of embedded video players.
package playback

import "fmt"

// State is a player's reported playback state.
type State int

const (
	Unstarted State = -1
	Ended     State = 0
	Playing   State = 1
	Paused    State = 2
	Buffering State = 3
	Cued      State = 5
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Ended:
		return "ended"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Buffering:
		return "buffering"
	case Cued:
		return "cued"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Player is the minimum a video player must offer: a clock and a state.
type Player interface {
	CurrentTime() (float64, error)
	State() (State, error)
}

// Seeker is implemented by players that can jump to a position.
type Seeker interface {
	SeekTo(seconds float64, allowSeekAhead bool) error
}

// Starter is implemented by players that can be told to play.
type Starter interface {
	Play() error
}

// Pauser is implemented by players that can be told to pause.
type Pauser interface {
	Pause() error
}
