package testing

import (
	"fmt"
	"time"

	"github.com/go-reel/reel/pkg/graphics"
	"github.com/go-reel/reel/pkg/playback"
	"github.com/go-reel/reel/pkg/store"
	"github.com/go-reel/reel/pkg/timeline"
	"github.com/go-reel/reel/pkg/track"
)

// SequentialIDs returns an id generator yielding "id-1", "id-2", ... so
// store tests see stable keyframe and marker ids.
func SequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// TimelineTester wires a store, player and interaction controller to a fake
// clock for deterministic gesture and playback tests.
type TimelineTester struct {
	Store      *store.Store
	Player     *playback.Player
	Controller *timeline.Controller
	Clock      *FakeClock

	prevClock playback.Clock
}

// NewTimelineTester creates a tester with deterministic ids and a fake
// playback clock installed. Call Cleanup when done to restore the clock.
func NewTimelineTester() *TimelineTester {
	clk := NewFakeClock()
	st := store.NewWithOptions(store.Options{NewID: SequentialIDs()})
	pl := playback.NewPlayer(st)
	return &TimelineTester{
		Store:      st,
		Player:     pl,
		Controller: timeline.NewController(st, pl),
		Clock:      clk,
		prevClock:  playback.SetClock(clk),
	}
}

// Cleanup restores the playback clock replaced by the tester.
func (t *TimelineTester) Cleanup() {
	playback.SetClock(t.prevClock)
}

// Pump advances the fake clock by d and runs one frame tick, the same unit
// of work the host's frame loop performs.
func (t *TimelineTester) Pump(d time.Duration) {
	t.Clock.Advance(d)
	playback.StepTickers()
}

// PumpFrames advances frame by frame at the player's fps, ticking after
// each frame.
func (t *TimelineTester) PumpFrames(n int) {
	frame := time.Duration(float64(time.Second) / t.Player.FPS())
	for i := 0; i < n; i++ {
		t.Pump(frame)
	}
}

// DragPlayhead scrubs the playhead from one x position to another through
// the given number of intermediate moves.
func (t *TimelineTester) DragPlayhead(fromX, toX float64, steps int) {
	t.Controller.BeginPlayheadDrag(graphics.Offset{X: fromX})
	for _, x := range lerpSteps(fromX, toX, steps) {
		t.Controller.HandlePointerMove(graphics.Offset{X: x})
	}
	t.Controller.HandlePointerUp(graphics.Offset{X: toX})
}

// DragClip drags the element's clip body by dx pixels.
func (t *TimelineTester) DragClip(elementID string, startX, dx float64) bool {
	if !t.Controller.BeginClipDrag(elementID, graphics.Offset{X: startX}) {
		return false
	}
	t.Controller.HandlePointerMove(graphics.Offset{X: startX + dx/2})
	t.Controller.HandlePointerMove(graphics.Offset{X: startX + dx})
	t.Controller.HandlePointerUp(graphics.Offset{X: startX + dx})
	return true
}

// ResizeClip drags one of the element's clip edges by dx pixels.
func (t *TimelineTester) ResizeClip(elementID string, edge timeline.ClipEdge, startX, dx float64) bool {
	if !t.Controller.BeginClipResize(elementID, edge, graphics.Offset{X: startX}) {
		return false
	}
	t.Controller.HandlePointerMove(graphics.Offset{X: startX + dx})
	t.Controller.HandlePointerUp(graphics.Offset{X: startX + dx})
	return true
}

// BoxSelect sweeps a selection rectangle between two corners.
func (t *TimelineTester) BoxSelect(from, to graphics.Offset) {
	t.Controller.BeginBoxSelect(from)
	t.Controller.HandlePointerMove(to)
	t.Controller.HandlePointerUp(to)
}

func lerpSteps(from, to float64, steps int) []float64 {
	if steps < 1 {
		steps = 1
	}
	out := make([]float64, steps)
	for i := 0; i < steps; i++ {
		frac := float64(i+1) / float64(steps)
		out[i] = from + (to-from)*frac
	}
	return out
}

// GridLayout is a GlyphLayout for tests: rows are keyed by (element,
// property) in registration order, each glyph a square centered on the
// keyframe's master-timeline position.
type GridLayout struct {
	View      timeline.Viewport
	Store     *store.Store
	RowHeight float64
	GlyphSize float64

	rows map[string]int
	next int
}

// NewGridLayout creates a layout with the given viewport, 24px rows and
// 10px glyphs. The store resolves clip placements; keyframe times are
// clip-local.
func NewGridLayout(view timeline.Viewport, st *store.Store) *GridLayout {
	return &GridLayout{
		View:      view,
		Store:     st,
		RowHeight: 24,
		GlyphSize: 10,
		rows:      make(map[string]int),
	}
}

// KeyframeGlyph implements timeline.GlyphLayout.
func (g *GridLayout) KeyframeGlyph(elementID string, p track.Property, k track.Keyframe) graphics.Rect {
	key := elementID + "/" + string(p)
	row, ok := g.rows[key]
	if !ok {
		row = g.next
		g.next++
		g.rows[key] = row
	}
	master := k.Time
	if a, ok := g.Store.Animation(elementID); ok {
		clip := a.Clip()
		master = clip.Start + k.Time/clip.Speed
	}
	center := graphics.Offset{
		X: g.View.XAt(master),
		Y: float64(row)*g.RowHeight + g.RowHeight/2,
	}
	return graphics.RectFromCenter(center, g.GlyphSize, g.GlyphSize)
}
