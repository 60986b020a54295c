package playback

import (
	"time"

	"github.com/go-reel/reel/pkg/store"
)

// DefaultFPS is the frame rate used for frame stepping when none is set.
const DefaultFPS = 60.0

// Player is the timeline's playback clock. It owns currentTime and
// isPlaying; the sequence duration is read from the store on every
// operation so clip edits take effect immediately.
//
// While playing, currentTime advances monotonically per tick. Reaching the
// duration stops playback and holds at the duration unless looping is
// enabled.
type Player struct {
	store *store.Store

	current float64
	playing bool
	fps     float64
	loop    bool

	ticker      *Ticker
	lastElapsed time.Duration

	listeners      map[int]func()
	nextListenerID int
}

// NewPlayer creates a paused player at time zero.
func NewPlayer(st *store.Store) *Player {
	return &Player{
		store:     st,
		fps:       DefaultFPS,
		listeners: make(map[int]func()),
	}
}

// CurrentTime returns the playhead position in seconds.
func (p *Player) CurrentTime() float64 { return p.current }

// IsPlaying reports whether the clock is advancing.
func (p *Player) IsPlaying() bool { return p.playing }

// Duration returns the master timeline length from the store.
func (p *Player) Duration() float64 { return p.store.Duration() }

// FPS returns the frame rate used for stepping.
func (p *Player) FPS() float64 { return p.fps }

// SetFPS sets the frame rate used for stepping. Non-positive values are
// ignored.
func (p *Player) SetFPS(fps float64) {
	if fps > 0 {
		p.fps = fps
	}
}

// Loop reports whether playback wraps at the duration.
func (p *Player) Loop() bool { return p.loop }

// SetLoop toggles wrap-at-duration. Off by default.
func (p *Player) SetLoop(loop bool) { p.loop = loop }

// Play starts advancing the clock. Playing from the end without looping
// rewinds to zero first.
func (p *Player) Play() {
	if p.playing {
		return
	}
	if !p.loop && p.current >= p.Duration() {
		p.current = 0
	}
	p.playing = true
	p.lastElapsed = 0
	p.ticker = NewTicker(p.tick)
	p.ticker.Start()
	p.notify()
}

// Pause stops the clock at the current time.
func (p *Player) Pause() {
	if !p.playing {
		return
	}
	p.stopTicker()
	p.notify()
}

// Stop pauses and rewinds to zero.
func (p *Player) Stop() {
	p.stopTicker()
	p.current = 0
	p.notify()
}

// SeekTo moves the playhead, clamped into [0, duration]. Out-of-range
// requests clamp silently, never fail.
func (p *Player) SeekTo(t float64) {
	p.current = clamp(t, 0, p.Duration())
	p.notify()
}

// SeekToStart moves the playhead to zero.
func (p *Player) SeekToStart() { p.SeekTo(0) }

// SeekToEnd moves the playhead to the duration.
func (p *Player) SeekToEnd() { p.SeekTo(p.Duration()) }

// StepForward pauses and advances by exactly one frame (1/fps), clamped.
func (p *Player) StepForward() {
	p.stopTicker()
	p.SeekTo(p.current + 1/p.fps)
}

// StepBackward pauses and retreats by exactly one frame (1/fps), clamped.
func (p *Player) StepBackward() {
	p.stopTicker()
	p.SeekTo(p.current - 1/p.fps)
}

// AddListener registers a callback fired whenever currentTime or the
// playing state changes. Returns an unsubscribe function.
func (p *Player) AddListener(fn func()) func() {
	id := p.nextListenerID
	p.nextListenerID++
	p.listeners[id] = fn
	return func() {
		delete(p.listeners, id)
	}
}

// tick advances the clock by the delta since the previous tick. Seeks
// during playback stay consistent because only deltas are consumed.
func (p *Player) tick(elapsed time.Duration) {
	dt := (elapsed - p.lastElapsed).Seconds()
	p.lastElapsed = elapsed
	if dt <= 0 {
		return
	}

	duration := p.Duration()
	p.current += dt
	if p.current >= duration {
		if p.loop && duration > 0 {
			for p.current >= duration {
				p.current -= duration
			}
		} else {
			p.current = duration
			p.stopTicker()
		}
	}
	p.notify()
}

func (p *Player) stopTicker() {
	p.playing = false
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
	}
	p.lastElapsed = 0
}

func (p *Player) notify() {
	for _, fn := range p.listeners {
		fn()
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
