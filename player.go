package checkbox

import (
	"context"
	"sync"
	"time"
)

// PlayState is the playback engine's state.
type PlayState int

const (
	Stopped PlayState = iota
	Playing
	Paused
)

func (s PlayState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Ticks arrive at roughly display-refresh cadence so playback never
// busy-waits faster than a screen could show it.
const tickInterval = time.Second / 60

// Player steps through a processed sequence at a configurable speed,
// wrapping from the last frame back to the first indefinitely. The
// advance rule is time-based: a frame holds until its duration,
// divided by the speed multiplier, has elapsed since the previous
// advance.
type Player struct {
	mu          sync.Mutex
	seq         *Sequence
	state       PlayState
	index       int
	speed       float64
	lastAdvance time.Time
	running     bool
}

// NewPlayer wraps a non-empty sequence at speed 1×.
func NewPlayer(seq *Sequence) *Player {
	return &Player{seq: seq, speed: 1}
}

// State returns the current playback state.
func (p *Player) State() PlayState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Index returns the current frame index.
func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Frame returns the grid currently showing.
func (p *Player) Frame() Grid {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seq.Frames[p.index].Grid
}

// Play starts playback from the first frame. Calling Play while
// already playing is a no-op.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Playing {
		return
	}
	p.state = Playing
	p.index = 0
	p.lastAdvance = time.Now()
}

// Resume restarts playback from the first frame. Elapsed time within
// the frame showing at Pause is not tracked, so resuming is a full
// restart rather than a resume-in-place.
func (p *Player) Resume() {
	p.Play()
}

// Pause halts advancement but keeps the current frame index.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Playing {
		p.state = Paused
	}
}

// Stop halts advancement and resets to the first frame.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = Stopped
	p.index = 0
}

// Seek jumps to the given frame in any play state. Out-of-range
// indices are silently ignored.
func (p *Player) Seek(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.seq.Frames) {
		return
	}
	p.index = index
}

// SetSpeed changes the playback multiplier. It takes effect on the
// next advance comparison; a wait already in progress is not rescaled
// retroactively. Non-positive values are ignored.
func (p *Player) SetSpeed(multiplier float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if multiplier > 0 {
		p.speed = multiplier
	}
}

// Speed returns the current playback multiplier.
func (p *Player) Speed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// Tick advances the player if the current frame's speed-scaled
// duration has elapsed since the last advance, wrapping past the final
// frame back to index 0. It reports whether an advance happened. Ticks
// outside the Playing state never change anything.
func (p *Player) Tick(now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Playing {
		return false
	}
	wait := time.Duration(float64(p.seq.Frames[p.index].Duration) / p.speed)
	if now.Sub(p.lastAdvance) < wait {
		return false
	}
	p.index = (p.index + 1) % len(p.seq.Frames)
	p.lastAdvance = now
	return true
}

// Run drives ticks until ctx is done, invoking fn with the new frame
// index after every advance. At most one Run loop may be active per
// player; a second concurrent call fails.
func (p *Player) Run(ctx context.Context, fn func(index int)) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return errorf(ErrProcessing, "playback loop already running")
	}
	p.running = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if p.Tick(now) && fn != nil {
				fn(p.Index())
			}
		}
	}
}
