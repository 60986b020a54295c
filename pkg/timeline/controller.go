package timeline

import (
	stderrors "errors"

	"github.com/go-reel/reel/pkg/errors"
	"github.com/go-reel/reel/pkg/graphics"
	"github.com/go-reel/reel/pkg/playback"
	"github.com/go-reel/reel/pkg/store"
	"github.com/go-reel/reel/pkg/track"
)

// DragState identifies the controller's active gesture. Gestures are
// mutually exclusive; starting one while another is active implicitly
// finishes the first.
type DragState int

const (
	// DragIdle means no gesture is in progress.
	DragIdle DragState = iota
	// DragPlayhead scrubs the playhead.
	DragPlayhead
	// DragClip moves a clip along the master timeline.
	DragClip
	// DragResizeLeft drags a clip's left edge, keeping the right edge fixed.
	DragResizeLeft
	// DragResizeRight drags a clip's right edge, keeping the start fixed.
	DragResizeRight
	// DragBoxSelect sweeps a selection rectangle over keyframe glyphs.
	DragBoxSelect
)

func (d DragState) String() string {
	switch d {
	case DragPlayhead:
		return "playhead"
	case DragClip:
		return "clip"
	case DragResizeLeft:
		return "resize-left"
	case DragResizeRight:
		return "resize-right"
	case DragBoxSelect:
		return "box-select"
	default:
		return "idle"
	}
}

// ClipEdge names a resize handle.
type ClipEdge int

const (
	// EdgeLeft is the clip's start handle.
	EdgeLeft ClipEdge = iota
	// EdgeRight is the clip's end handle.
	EdgeRight
)

// ClickMode selects what a single click on a keyframe glyph does.
type ClickMode int

const (
	// ModeSelect makes clicks select keyframes (the default).
	ModeSelect ClickMode = iota
	// ModeDelete makes clicks delete keyframes immediately, without
	// confirmation. A deliberate mode the user opts into, so default-mode
	// clicks can never destroy data.
	ModeDelete
)

// KeyframeRef addresses one keyframe through its element and property.
type KeyframeRef struct {
	ElementID  string
	Property   track.Property
	KeyframeID string
}

// GlyphLayout reports where a keyframe's glyph is rendered, for box-select
// hit testing against the glyph's drawn extent rather than its mathematical
// point. The rendering layer owns row geometry, so it supplies this.
type GlyphLayout interface {
	KeyframeGlyph(elementID string, p track.Property, k track.Keyframe) graphics.Rect
}

// Controller is the timeline interaction state machine. It reads the store
// and the player and issues mutations; it never duplicates their data. All
// methods must be called from the engine's single event thread.
type Controller struct {
	// View maps between pixels and seconds.
	View Viewport
	// Mode controls single-click behavior on keyframe glyphs.
	Mode ClickMode
	// SnapToMarkers enables playhead snapping to markers.
	SnapToMarkers bool
	// SnapToKeyframes enables playhead snapping to keyframe positions.
	SnapToKeyframes bool
	// SnapThreshold is the snap attraction distance in seconds; zero means
	// DefaultSnapThreshold.
	SnapThreshold float64
	// MinClipDuration is the resize floor in seconds; zero means
	// store.MinClipDuration.
	MinClipDuration float64
	// Layout supplies keyframe glyph geometry for box selection. Box
	// selection highlights nothing while Layout is nil.
	Layout GlyphLayout
	// OnEditKeyframe is invoked by DoubleClickKeyframe so the UI layer can
	// open a direct-entry editor; edits come back through the store.
	OnEditKeyframe func(ref KeyframeRef)

	store     *store.Store
	player    *playback.Player
	selection *Selection

	drag        DragState
	dragElement string
	anchor      graphics.Offset
	lastPos     graphics.Offset
	anchorClip  store.Clip
	boxRect     graphics.Rect
	highlighted map[string]struct{}
}

// NewController creates an idle controller wired to the store and player.
func NewController(st *store.Store, pl *playback.Player) *Controller {
	return &Controller{
		View:      Viewport{PixelsPerSecond: DefaultPixelsPerSecond},
		store:     st,
		player:    pl,
		selection: NewSelection(),
	}
}

// Selection returns the controller's selection model, the single source of
// truth shared with the canvas view.
func (c *Controller) Selection() *Selection { return c.selection }

// Drag returns the active gesture state.
func (c *Controller) Drag() DragState { return c.drag }

// BeginPlayheadDrag starts scrubbing from a pointer-down on the playhead
// handle.
func (c *Controller) BeginPlayheadDrag(pos graphics.Offset) {
	c.finishDrag()
	c.drag = DragPlayhead
	c.anchor = pos
	c.lastPos = pos
	c.scrubTo(pos)
}

// BeginClipDrag starts moving the element's clip from a pointer-down on the
// clip body. Locked clips reject the gesture; the click still selects the
// clip.
func (c *Controller) BeginClipDrag(elementID string, pos graphics.Offset) bool {
	c.finishDrag()
	a, ok := c.store.Animation(elementID)
	if !ok {
		return false
	}
	c.selection.SelectClip(elementID)
	if a.Clip().Locked {
		return false
	}
	c.drag = DragClip
	c.dragElement = elementID
	c.anchor = pos
	c.lastPos = pos
	c.anchorClip = a.Clip()
	return true
}

// BeginClipResize starts dragging one of the element's clip edges. Locked
// clips reject the gesture.
func (c *Controller) BeginClipResize(elementID string, edge ClipEdge, pos graphics.Offset) bool {
	c.finishDrag()
	a, ok := c.store.Animation(elementID)
	if !ok || a.Clip().Locked {
		return false
	}
	c.selection.SelectClip(elementID)
	if edge == EdgeLeft {
		c.drag = DragResizeLeft
	} else {
		c.drag = DragResizeRight
	}
	c.dragElement = elementID
	c.anchor = pos
	c.lastPos = pos
	c.anchorClip = a.Clip()
	return true
}

// BeginBoxSelect starts a selection rectangle from a pointer-down on empty
// timeline area. The previous keyframe selection is kept until the box
// commits on pointer-up.
func (c *Controller) BeginBoxSelect(pos graphics.Offset) {
	c.finishDrag()
	c.drag = DragBoxSelect
	c.anchor = pos
	c.lastPos = pos
	c.boxRect = graphics.RectFromPoints(pos, pos)
	c.highlighted = make(map[string]struct{})
}

// HandlePointerMove advances the active gesture. Idle moves are ignored.
func (c *Controller) HandlePointerMove(pos graphics.Offset) {
	c.lastPos = pos
	switch c.drag {
	case DragPlayhead:
		c.scrubTo(pos)
	case DragClip:
		newStart := c.anchorClip.Start + c.View.DeltaTime(pos.X-c.anchor.X)
		start := max(newStart, 0)
		report(c.store.UpdateClip(c.dragElement, store.ClipPatch{Start: &start}))
	case DragResizeLeft:
		c.resizeLeft(pos)
	case DragResizeRight:
		c.resizeRight(pos)
	case DragBoxSelect:
		c.boxRect = graphics.RectFromPoints(c.anchor, pos)
		c.updateHighlight()
	}
}

// HandlePointerUp commits the active gesture and returns to idle.
func (c *Controller) HandlePointerUp(pos graphics.Offset) {
	c.lastPos = pos
	c.finishDrag()
}

// HandlePointerLeave ends the active gesture as if the pointer were
// released at its last known position, so a pointer leaving the timeline
// mid-drag can never leave the controller stuck in a drag state.
func (c *Controller) HandlePointerLeave() {
	c.finishDrag()
}

// finishDrag commits the active gesture at the pointer's last known
// position. Starting a new gesture finishes the previous one the same way.
func (c *Controller) finishDrag() {
	switch c.drag {
	case DragIdle:
		return
	case DragPlayhead:
		c.scrubTo(c.lastPos)
	case DragBoxSelect:
		c.boxRect = graphics.RectFromPoints(c.anchor, c.lastPos)
		c.updateHighlight()
		c.selection.ReplaceKeyframes(c.highlighted)
		c.highlighted = nil
	}
	c.drag = DragIdle
	c.dragElement = ""
}

// ClickKeyframe handles a single click on a keyframe glyph according to the
// click mode. In select mode a modified click toggles membership while a
// plain click replaces the selection; in delete mode the keyframe is
// deleted immediately.
func (c *Controller) ClickKeyframe(ref KeyframeRef, modifier bool) {
	switch c.Mode {
	case ModeDelete:
		if c.store.DeleteKeyframe(ref.ElementID, ref.Property, ref.KeyframeID) {
			c.selection.RemoveKeyframe(ref.KeyframeID)
		}
	default:
		if modifier {
			c.selection.ToggleKeyframe(ref.KeyframeID)
		} else {
			c.selection.SetKeyframe(ref.KeyframeID)
		}
	}
}

// DoubleClickKeyframe requests a direct-entry editor for the keyframe.
func (c *Controller) DoubleClickKeyframe(ref KeyframeRef) {
	if c.OnEditKeyframe != nil {
		c.OnEditKeyframe(ref)
	}
}

// DeleteSelectedKeyframes removes every selected keyframe from the selected
// clip's animation and clears the keyframe selection. Selection gates the
// mutation: with no clip selected this is a no-op.
func (c *Controller) DeleteSelectedKeyframes() int {
	elementID, ok := c.selection.Clip()
	if !ok {
		return 0
	}
	a, ok := c.store.Animation(elementID)
	if !ok {
		return 0
	}
	deleted := 0
	for _, id := range c.selection.Keyframes() {
		for _, p := range a.TrackedProperties() {
			if c.store.DeleteKeyframe(elementID, p, id) {
				deleted++
				break
			}
		}
	}
	c.selection.ReplaceKeyframes(nil)
	return deleted
}

// BoxRect returns the live selection rectangle while box-selecting.
func (c *Controller) BoxRect() (graphics.Rect, bool) {
	return c.boxRect, c.drag == DragBoxSelect
}

// Highlighted reports whether the keyframe is inside the live box-select
// rectangle. Highlighted is distinct from selected until pointer-up
// commits the box.
func (c *Controller) Highlighted(keyframeID string) bool {
	_, ok := c.highlighted[keyframeID]
	return ok
}

func (c *Controller) scrubTo(pos graphics.Offset) {
	t := c.View.TimeAt(pos.X)
	if c.SnapToMarkers || c.SnapToKeyframes {
		t = c.snapTime(t)
	}
	c.player.SeekTo(t)
}

// resizeLeft moves the clip's start while pinning the right edge: moving
// the edge right shortens the duration and advances the start by the same
// amount.
func (c *Controller) resizeLeft(pos graphics.Offset) {
	minDur := c.minClipDuration()
	end := c.anchorClip.End()
	newStart := c.anchorClip.Start + c.View.DeltaTime(pos.X-c.anchor.X)
	newStart = max(newStart, 0)
	newStart = min(newStart, end-minDur)
	newDur := end - newStart
	report(c.store.UpdateClip(c.dragElement, store.ClipPatch{Start: &newStart, Duration: &newDur}))
}

func (c *Controller) resizeRight(pos graphics.Offset) {
	minDur := c.minClipDuration()
	newDur := c.anchorClip.Duration + c.View.DeltaTime(pos.X-c.anchor.X)
	newDur = max(newDur, minDur)
	report(c.store.UpdateClip(c.dragElement, store.ClipPatch{Duration: &newDur}))
}

// report forwards a store mutation failure to the global error handler.
// Drag handlers run fire-and-forget from pointer events; there is no caller
// to return an error to, so failures surface through the handler instead of
// being dropped.
func report(err error) {
	if err == nil {
		return
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		e = &errors.Error{Op: "timeline.drag", Kind: errors.KindInternal, Err: err}
	}
	errors.Report(e)
}

func (c *Controller) minClipDuration() float64 {
	if c.MinClipDuration > 0 {
		return c.MinClipDuration
	}
	return store.MinClipDuration
}

func (c *Controller) updateHighlight() {
	if c.Layout == nil {
		return
	}
	highlighted := make(map[string]struct{})
	for _, a := range c.store.Animations() {
		for _, p := range a.TrackedProperties() {
			for _, k := range a.Track(p).Keyframes() {
				if c.boxRect.Intersects(c.Layout.KeyframeGlyph(a.ElementID(), p, k)) {
					highlighted[k.ID] = struct{}{}
				}
			}
		}
	}
	c.highlighted = highlighted
}
