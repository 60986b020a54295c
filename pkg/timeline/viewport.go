// Package timeline translates pointer gestures on the timeline surface into
// store mutations and playhead seeks: dragging the playhead, moving and
// resizing clips, box-selecting keyframes, snapping to markers and
// keyframes. It owns only transient interaction state; all durable data
// stays in the store.
package timeline

// Viewport maps between timeline seconds and screen pixels. ScrollX is the
// horizontal scroll position in pixels; PixelsPerSecond is the zoom level.
type Viewport struct {
	PixelsPerSecond float64
	ScrollX         float64
}

// DefaultPixelsPerSecond is the initial zoom level.
const DefaultPixelsPerSecond = 100.0

// TimeAt converts a screen x coordinate to timeline seconds.
func (v Viewport) TimeAt(x float64) float64 {
	pps := v.PixelsPerSecond
	if pps <= 0 {
		pps = DefaultPixelsPerSecond
	}
	return (x + v.ScrollX) / pps
}

// XAt converts timeline seconds to a screen x coordinate.
func (v Viewport) XAt(t float64) float64 {
	pps := v.PixelsPerSecond
	if pps <= 0 {
		pps = DefaultPixelsPerSecond
	}
	return t*pps - v.ScrollX
}

// DeltaTime converts a pixel delta to a time delta at the current zoom.
func (v Viewport) DeltaTime(dx float64) float64 {
	pps := v.PixelsPerSecond
	if pps <= 0 {
		pps = DefaultPixelsPerSecond
	}
	return dx / pps
}
