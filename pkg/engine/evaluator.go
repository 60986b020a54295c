// Package engine evaluates live property values: given the animation store
// and a master-timeline time, it resolves each element's tracks into the
// values the external canvas renderer draws every frame.
package engine

import (
	"golang.org/x/sync/errgroup"

	"github.com/go-reel/reel/pkg/store"
	"github.com/go-reel/reel/pkg/track"
)

// Defaults supplies an element's static property value for properties with
// no keyframes. The design-element layer owns these; the engine never
// stores them.
type Defaults interface {
	DefaultValue(elementID string, p track.Property) (track.Value, bool)
}

// Frame is the evaluation result for one master-timeline time: live values
// for every tracked property of every non-muted element.
type Frame map[string]map[track.Property]track.Value

// Evaluator resolves live property values against a store.
type Evaluator struct {
	// Defaults resolves properties that have no keyframes yet. May be nil,
	// in which case such queries report no value.
	Defaults Defaults

	// Parallelism > 1 fans frame evaluation out across that many
	// goroutines. The store must not be mutated during the call: the host
	// hands the evaluator what is effectively an immutable snapshot for
	// the duration of a tick.
	Parallelism int

	store *store.Store
}

// New creates an evaluator reading from st.
func New(st *store.Store) *Evaluator {
	return &Evaluator{store: st}
}

// LiveValue returns the element's value for p at a master-timeline time.
// ok is false when the element is unknown or muted and when no keyframes or
// default exist for the property.
func (e *Evaluator) LiveValue(elementID string, p track.Property, masterTime float64) (track.Value, bool) {
	a, ok := e.store.Animation(elementID)
	if !ok || a.Clip().Muted {
		return track.Value{}, false
	}
	return e.animationValue(a, p, masterTime)
}

// ElementValues evaluates all of one element's tracks at a master-timeline
// time. Muted and unknown elements report nil.
func (e *Evaluator) ElementValues(elementID string, masterTime float64) map[track.Property]track.Value {
	a, ok := e.store.Animation(elementID)
	if !ok || a.Clip().Muted {
		return nil
	}
	return e.evaluateAnimation(a, masterTime)
}

// EvaluateFrame computes live values for every non-muted element at a
// master-timeline time, one tick's worth of work for the renderer.
func (e *Evaluator) EvaluateFrame(masterTime float64) Frame {
	animations := e.store.Animations()
	frame := make(Frame, len(animations))

	if e.Parallelism > 1 {
		results := make([]map[track.Property]track.Value, len(animations))
		var g errgroup.Group
		g.SetLimit(e.Parallelism)
		for i, a := range animations {
			if a.Clip().Muted {
				continue
			}
			i, a := i, a
			g.Go(func() error {
				results[i] = e.evaluateAnimation(a, masterTime)
				return nil
			})
		}
		// Evaluation never fails; the group only bounds fan-out.
		_ = g.Wait()
		for i, a := range animations {
			if results[i] != nil {
				frame[a.ElementID()] = results[i]
			}
		}
		return frame
	}

	for _, a := range animations {
		if a.Clip().Muted {
			continue
		}
		if values := e.evaluateAnimation(a, masterTime); len(values) > 0 {
			frame[a.ElementID()] = values
		}
	}
	return frame
}

func (e *Evaluator) evaluateAnimation(a *store.Animation, masterTime float64) map[track.Property]track.Value {
	props := a.TrackedProperties()
	if len(props) == 0 {
		return nil
	}
	values := make(map[track.Property]track.Value, len(props))
	for _, p := range props {
		if v, ok := e.animationValue(a, p, masterTime); ok {
			values[p] = v
		}
	}
	return values
}

func (e *Evaluator) animationValue(a *store.Animation, p track.Property, masterTime float64) (track.Value, bool) {
	tr := a.Track(p)
	if tr == nil || tr.Len() == 0 {
		if e.Defaults != nil {
			return e.Defaults.DefaultValue(a.ElementID(), p)
		}
		return track.Value{}, false
	}
	return track.Evaluate(tr, a.Clip().LocalTime(masterTime))
}
