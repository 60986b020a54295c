package store

import (
	"sort"

	"github.com/go-reel/reel/pkg/errors"
	"github.com/go-reel/reel/pkg/graphics"
)

// Marker is a named, colored point on the master timeline, independent of
// any element. Markers serve as snap targets while scrubbing or dragging.
type Marker struct {
	ID    string
	Time  float64
	Name  string
	Color graphics.Color
}

// MarkerPatch is a partial marker update. Nil fields are left unchanged.
type MarkerPatch struct {
	Time  *float64
	Name  *string
	Color *graphics.Color
}

// AddMarker creates a marker at the given master-timeline time.
func (s *Store) AddMarker(time float64, name string, color graphics.Color) (Marker, error) {
	if time < 0 {
		return Marker{}, errors.InvalidArgument("store.AddMarker", "negative marker time %g", time)
	}
	m := Marker{ID: s.newID(), Time: time, Name: name, Color: color}
	s.markers = append(s.markers, m)
	s.notify()
	return m, nil
}

// UpdateMarker applies a partial update to the marker with the given id.
func (s *Store) UpdateMarker(id string, patch MarkerPatch) (Marker, error) {
	for i := range s.markers {
		if s.markers[i].ID != id {
			continue
		}
		if patch.Time != nil && *patch.Time < 0 {
			return Marker{}, errors.InvalidArgument("store.UpdateMarker", "negative marker time %g", *patch.Time)
		}
		if patch.Time != nil {
			s.markers[i].Time = *patch.Time
		}
		if patch.Name != nil {
			s.markers[i].Name = *patch.Name
		}
		if patch.Color != nil {
			s.markers[i].Color = *patch.Color
		}
		s.notify()
		return s.markers[i], nil
	}
	return Marker{}, errors.NotFound("store.UpdateMarker", "marker %q", id)
}

// RemoveMarker deletes the marker with the given id. Removing an unknown id
// is a no-op.
func (s *Store) RemoveMarker(id string) bool {
	for i := range s.markers {
		if s.markers[i].ID == id {
			s.markers = append(s.markers[:i], s.markers[i+1:]...)
			s.notify()
			return true
		}
	}
	return false
}

// Markers returns all markers in ascending time order.
func (s *Store) Markers() []Marker {
	out := make([]Marker, len(s.markers))
	copy(out, s.markers)
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
