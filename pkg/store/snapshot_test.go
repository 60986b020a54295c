package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-reel/reel/pkg/errors"
	"github.com/go-reel/reel/pkg/graphics"
	"github.com/go-reel/reel/pkg/track"
)

// populate builds a state with two animations on overlapping clip ranges,
// a track of each value kind, and markers.
func populate(t *testing.T, s *Store) {
	t.Helper()

	_, err := s.AddKeyframe("el-1", track.PropPositionX, 0, track.Numeric(0), "linear")
	require.NoError(t, err)
	_, err = s.AddKeyframe("el-1", track.PropPositionX, 2, track.Numeric(100), "ease-out")
	require.NoError(t, err)
	_, err = s.AddKeyframe("el-1", track.PropFillColor, 1, track.ColorOf(graphics.ColorRed), "linear")
	require.NoError(t, err)
	require.NoError(t, s.UpdateClip("el-1", ClipPatch{Start: ptr(0.0), Duration: ptr(4.0)}))

	_, err = s.AddKeyframe("el-2", track.PropStrokeStyle, 0.5, track.DiscreteOf("dashed"), "linear")
	require.NoError(t, err)
	require.NoError(t, s.UpdateClip("el-2", ClipPatch{Start: ptr(2.0), Duration: ptr(5.0), Speed: ptr(2.0), Muted: ptr(true)}))
	require.NoError(t, s.UpdateClip("el-2", ClipPatch{Locked: ptr(true)}))

	_, err = s.AddMarker(1.5, "beat", graphics.ColorBlue)
	require.NoError(t, err)
	_, err = s.AddMarker(3, "drop", graphics.RGBA8(10, 20, 30, 128))
	require.NoError(t, err)

	require.NoError(t, s.SetSequenceDuration(12))
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestStore()
	populate(t, s)
	snap := s.Snapshot()

	restored := newTestStore()
	require.NoError(t, restored.Restore(snap))

	assert.Equal(t, snap, restored.Snapshot())
}

func TestSerializeRoundTrip(t *testing.T) {
	s := newTestStore()
	populate(t, s)

	data, err := s.Serialize()
	require.NoError(t, err)

	restored := newTestStore()
	require.NoError(t, restored.Deserialize(data))

	assert.Equal(t, s.Snapshot(), restored.Snapshot())
	assert.Equal(t, s.Duration(), restored.Duration())

	// Restored locked flags still gate mutations.
	require.NoError(t, restored.UpdateClip("el-2", ClipPatch{Start: ptr(9.0)}))
	a, _ := restored.Animation("el-2")
	assert.Equal(t, 2.0, a.Clip().Start)
}

func TestRestoreRejectsBadSnapshots(t *testing.T) {
	bad := []struct {
		name string
		snap Snapshot
	}{
		{"empty element id", Snapshot{Animations: []AnimationSnapshot{{ElementID: "", Duration: 1, Speed: 1}}}},
		{"duplicate element id", Snapshot{Animations: []AnimationSnapshot{
			{ElementID: "a", Duration: 1, Speed: 1},
			{ElementID: "a", Duration: 1, Speed: 1},
		}}},
		{"non-positive duration", Snapshot{Animations: []AnimationSnapshot{{ElementID: "a", Duration: 0, Speed: 1}}}},
		{"unknown property", Snapshot{Animations: []AnimationSnapshot{{
			ElementID: "a", Duration: 1, Speed: 1,
			Tracks: []TrackSnapshot{{Property: "bogus"}},
		}}}},
		{"wrong value type", Snapshot{Animations: []AnimationSnapshot{{
			ElementID: "a", Duration: 1, Speed: 1,
			Tracks: []TrackSnapshot{{Property: "opacity", Keyframes: []KeyframeSnapshot{{ID: "k", Time: 0, Value: "oops"}}}},
		}}}},
		{"negative keyframe time", Snapshot{Animations: []AnimationSnapshot{{
			ElementID: "a", Duration: 1, Speed: 1,
			Tracks: []TrackSnapshot{{Property: "opacity", Keyframes: []KeyframeSnapshot{{ID: "k", Time: -1, Value: 0.5}}}},
		}}}},
		{"bad marker color", Snapshot{Markers: []MarkerSnapshot{{ID: "m", Time: 0, Color: "#zz"}}}},
		{"negative marker time", Snapshot{Markers: []MarkerSnapshot{{ID: "m", Time: -1}}}},
	}

	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			populate(t, s)
			before := s.Snapshot()

			err := s.Restore(tt.snap)
			assert.True(t, errors.IsInvalidArgument(err), "got %v", err)
			assert.Equal(t, before, s.Snapshot(), "failed restore must leave the store untouched")
		})
	}
}

func TestRestoreNamesFailingElement(t *testing.T) {
	s := newTestStore()
	err := s.Restore(Snapshot{Animations: []AnimationSnapshot{{
		ElementID: "hero", Duration: 1, Speed: 1,
		Tracks: []TrackSnapshot{{Property: "opacity", Keyframes: []KeyframeSnapshot{{ID: "k", Time: -1, Value: 0.5}}}},
	}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.Restore", "keyframe errors carry the restore op")
	assert.Contains(t, err.Error(), "hero", "keyframe errors name the element")
}

func TestRestoreFillsMissingIDsAndSpeed(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Restore(Snapshot{
		Animations: []AnimationSnapshot{{
			ElementID: "a", Duration: 2,
			Tracks: []TrackSnapshot{{
				Property:  string(track.PropOpacity),
				Keyframes: []KeyframeSnapshot{{Time: 1, Value: 0.5}},
			}},
		}},
	}))

	a, _ := s.Animation("a")
	assert.Equal(t, 1.0, a.Clip().Speed, "zero speed defaults to 1")
	keys := a.Track(track.PropOpacity).Keyframes()
	require.Len(t, keys, 1)
	assert.NotEmpty(t, keys[0].ID, "missing ids are generated")
}
