package store

import (
	"encoding/json"
	"fmt"

	"github.com/go-reel/reel/pkg/errors"
	"github.com/go-reel/reel/pkg/graphics"
	"github.com/go-reel/reel/pkg/track"
)

// Snapshot is the store's serializable state. The surrounding persistence
// layer embeds it in the project document; the store only guarantees that
// Restore(Snapshot()) reproduces the state exactly.
type Snapshot struct {
	Animations       []AnimationSnapshot `json:"animations"`
	Markers          []MarkerSnapshot    `json:"markers,omitempty"`
	SequenceDuration float64             `json:"sequenceDuration,omitempty"`
}

// AnimationSnapshot is one element's serialized animation.
type AnimationSnapshot struct {
	ElementID string          `json:"elementId"`
	Start     float64         `json:"clipStart"`
	Duration  float64         `json:"clipDuration"`
	Speed     float64         `json:"speed"`
	Locked    bool            `json:"locked,omitempty"`
	Muted     bool            `json:"muted,omitempty"`
	Tracks    []TrackSnapshot `json:"tracks,omitempty"`
}

// TrackSnapshot is one property track's serialized keyframes.
type TrackSnapshot struct {
	Property  string             `json:"property"`
	Keyframes []KeyframeSnapshot `json:"keyframes"`
}

// KeyframeSnapshot is one serialized keyframe. Values encode by the owning
// track's kind: numbers as JSON numbers, colors as hex strings, discrete
// tokens as strings.
type KeyframeSnapshot struct {
	ID     string  `json:"id"`
	Time   float64 `json:"t"`
	Value  any     `json:"v"`
	Easing string  `json:"ease,omitempty"`
}

// MarkerSnapshot is one serialized timeline marker.
type MarkerSnapshot struct {
	ID    string  `json:"id"`
	Time  float64 `json:"t"`
	Name  string  `json:"name,omitempty"`
	Color string  `json:"color,omitempty"`
}

// Snapshot captures the full store state.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{SequenceDuration: s.seqDur}
	for _, a := range s.Animations() {
		as := AnimationSnapshot{
			ElementID: a.elementID,
			Start:     a.clip.Start,
			Duration:  a.clip.Duration,
			Speed:     a.clip.Speed,
			Locked:    a.clip.Locked,
			Muted:     a.clip.Muted,
		}
		for _, p := range a.TrackedProperties() {
			tr := a.tracks[p]
			ts := TrackSnapshot{Property: string(p)}
			for _, k := range tr.Keyframes() {
				ts.Keyframes = append(ts.Keyframes, KeyframeSnapshot{
					ID:     k.ID,
					Time:   k.Time,
					Value:  encodeValue(k.Value),
					Easing: k.Easing,
				})
			}
			as.Tracks = append(as.Tracks, ts)
		}
		snap.Animations = append(snap.Animations, as)
	}
	for _, m := range s.Markers() {
		snap.Markers = append(snap.Markers, MarkerSnapshot{
			ID:    m.ID,
			Time:  m.Time,
			Name:  m.Name,
			Color: m.Color.Hex(),
		})
	}
	return snap
}

// Restore replaces the store state with the snapshot's. The snapshot is
// fully validated before any state changes; on error the store is
// untouched.
func (s *Store) Restore(snap Snapshot) error {
	const op = "store.Restore"

	animations := make(map[string]*Animation, len(snap.Animations))
	for _, as := range snap.Animations {
		if as.ElementID == "" {
			return errors.InvalidArgument(op, "animation with empty element id")
		}
		if _, dup := animations[as.ElementID]; dup {
			return errors.InvalidArgument(op, "duplicate element id %q", as.ElementID)
		}
		if as.Duration <= 0 || as.Start < 0 {
			return errors.InvalidArgument(op, "element %q: bad clip placement (%g, %g)",
				as.ElementID, as.Start, as.Duration)
		}
		speed := as.Speed
		if speed == 0 {
			speed = 1
		}
		if speed < 0 {
			return errors.InvalidArgument(op, "element %q: negative speed %g", as.ElementID, speed)
		}
		a := &Animation{
			elementID: as.ElementID,
			clip: Clip{
				Start:    as.Start,
				Duration: as.Duration,
				Speed:    speed,
				Locked:   as.Locked,
				Muted:    as.Muted,
			},
			tracks: make(map[track.Property]*track.Track, len(as.Tracks)),
		}
		for _, ts := range as.Tracks {
			p := track.Property(ts.Property)
			if !p.Valid() {
				return errors.InvalidArgument(op, "element %q: unknown property %q", as.ElementID, ts.Property)
			}
			if _, dup := a.tracks[p]; dup {
				return errors.InvalidArgument(op, "element %q: duplicate track %q", as.ElementID, p)
			}
			tr := track.New(p)
			for _, ks := range ts.Keyframes {
				v, err := decodeValue(p, ks.Value)
				if err != nil {
					return errors.InvalidArgument(op, "element %q track %q: %v", as.ElementID, p, err)
				}
				id := ks.ID
				if id == "" {
					id = s.newID()
				}
				if _, err := tr.Upsert(track.Keyframe{ID: id, Time: ks.Time, Value: v, Easing: ks.Easing}); err != nil {
					return errors.InvalidArgument(op, "element %q track %q: %v", as.ElementID, p, err)
				}
			}
			if tr.Len() > 0 {
				a.tracks[p] = tr
			}
		}
		animations[as.ElementID] = a
	}

	markers := make([]Marker, 0, len(snap.Markers))
	for _, ms := range snap.Markers {
		if ms.Time < 0 {
			return errors.InvalidArgument(op, "marker %q: negative time %g", ms.ID, ms.Time)
		}
		color := graphics.ColorWhite
		if ms.Color != "" {
			c, err := graphics.ParseColor(ms.Color)
			if err != nil {
				return errors.InvalidArgument(op, "marker %q: %v", ms.ID, err)
			}
			color = c
		}
		id := ms.ID
		if id == "" {
			id = s.newID()
		}
		markers = append(markers, Marker{ID: id, Time: ms.Time, Name: ms.Name, Color: color})
	}
	if snap.SequenceDuration < 0 {
		return errors.InvalidArgument(op, "negative sequence duration %g", snap.SequenceDuration)
	}

	s.animations = animations
	s.markers = markers
	s.seqDur = snap.SequenceDuration
	s.notify()
	return nil
}

// Serialize encodes the store state as JSON.
func (s *Store) Serialize() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// Deserialize replaces the store state with JSON produced by Serialize (or
// an equivalent document from the persistence layer).
func (s *Store) Deserialize(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return errors.InvalidArgument("store.Deserialize", "bad document: %v", err)
	}
	return s.Restore(snap)
}

func encodeValue(v track.Value) any {
	switch v.Kind {
	case track.KindColor:
		return v.Color.Hex()
	case track.KindDiscrete:
		return v.Discrete
	default:
		return v.Num
	}
}

func decodeValue(p track.Property, raw any) (track.Value, error) {
	kind, _ := p.Kind()
	switch kind {
	case track.KindNumeric:
		switch n := raw.(type) {
		case float64:
			return track.Numeric(n), nil
		case int:
			return track.Numeric(float64(n)), nil
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				return track.Value{}, err
			}
			return track.Numeric(f), nil
		}
		return track.Value{}, fmt.Errorf("numeric value expected, got %T", raw)
	case track.KindColor:
		str, ok := raw.(string)
		if !ok {
			return track.Value{}, fmt.Errorf("color string expected, got %T", raw)
		}
		c, err := graphics.ParseColor(str)
		if err != nil {
			return track.Value{}, err
		}
		return track.ColorOf(c), nil
	default:
		str, ok := raw.(string)
		if !ok {
			return track.Value{}, fmt.Errorf("discrete string expected, got %T", raw)
		}
		return track.DiscreteOf(str), nil
	}
}
