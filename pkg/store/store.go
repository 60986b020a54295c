package store

import (
	"sort"

	"github.com/google/uuid"

	"github.com/go-reel/reel/pkg/errors"
	"github.com/go-reel/reel/pkg/track"
)

// Default clip placement limits.
const (
	DefaultClipDuration = 5.0
	MinClipDuration     = 0.1
)

// Options configures a Store.
type Options struct {
	// DefaultClipDuration is the duration given to lazily created
	// animations, in seconds.
	DefaultClipDuration float64
	// MinClipDuration is the floor applied when a clip is resized.
	MinClipDuration float64
	// NewID overrides id generation, mainly for deterministic tests.
	NewID func() string
}

// Store is the process-wide animation state: all animations keyed by element
// id, plus markers and the optional explicit sequence duration.
//
// Store is not safe for concurrent use. The engine runs single-threaded and
// event-driven; a host that evaluates in parallel must work from an
// immutable [Snapshot].
type Store struct {
	animations map[string]*Animation
	markers    []Marker
	seqDur     float64

	defaultClipDuration float64
	minClipDuration     float64
	newID               func() string

	listeners      map[int]func()
	nextListenerID int
}

// New creates an empty store with default options.
func New() *Store {
	return NewWithOptions(Options{})
}

// NewWithOptions creates an empty store. Zero option fields fall back to
// the package defaults.
func NewWithOptions(o Options) *Store {
	if o.DefaultClipDuration <= 0 {
		o.DefaultClipDuration = DefaultClipDuration
	}
	if o.MinClipDuration <= 0 {
		o.MinClipDuration = MinClipDuration
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return &Store{
		animations:          make(map[string]*Animation),
		defaultClipDuration: o.DefaultClipDuration,
		minClipDuration:     o.MinClipDuration,
		newID:               o.NewID,
		listeners:           make(map[int]func()),
	}
}

// AddListener registers a callback fired after every applied mutation.
// Returns an unsubscribe function.
func (s *Store) AddListener(fn func()) func() {
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = fn
	return func() {
		delete(s.listeners, id)
	}
}

func (s *Store) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// InitAnimation creates a default animation for the element if none exists:
// clip at 0 with the default duration, speed 1, no tracks. Idempotent.
func (s *Store) InitAnimation(elementID string) (*Animation, error) {
	if elementID == "" {
		return nil, errors.InvalidArgument("store.InitAnimation", "empty element id")
	}
	if a, ok := s.animations[elementID]; ok {
		return a, nil
	}
	a := &Animation{
		elementID: elementID,
		clip:      Clip{Start: 0, Duration: s.defaultClipDuration, Speed: 1},
		tracks:    make(map[track.Property]*track.Track),
	}
	s.animations[elementID] = a
	s.notify()
	return a, nil
}

// RemoveAnimation deletes the element's animation entirely, locked or not:
// removal follows the element's own lifecycle, which the lock flag does not
// guard. Removing an unknown element is a no-op.
func (s *Store) RemoveAnimation(elementID string) bool {
	if _, ok := s.animations[elementID]; !ok {
		return false
	}
	delete(s.animations, elementID)
	s.notify()
	return true
}

// Animation returns the element's animation without creating one.
func (s *Store) Animation(elementID string) (*Animation, bool) {
	a, ok := s.animations[elementID]
	return a, ok
}

// Animations returns all animations sorted by element id.
func (s *Store) Animations() []*Animation {
	out := make([]*Animation, 0, len(s.animations))
	for _, a := range s.animations {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].elementID < out[j].elementID })
	return out
}

// Len returns the number of animations.
func (s *Store) Len() int { return len(s.animations) }

// UpdateClip applies a partial clip update. On a locked animation any change
// to start, duration or speed is a silent no-op; toggling Locked or Muted is
// always permitted. Duration is floor-clamped to the minimum clip duration,
// start to zero.
func (s *Store) UpdateClip(elementID string, patch ClipPatch) error {
	a, ok := s.animations[elementID]
	if !ok {
		return errors.NotFound("store.UpdateClip", "animation for element %q", elementID)
	}
	if patch.Speed != nil && *patch.Speed <= 0 {
		return errors.InvalidArgument("store.UpdateClip", "non-positive speed %g", *patch.Speed)
	}

	before := a.clip
	if !a.clip.Locked || !patch.touchesPlacement() {
		if patch.Start != nil {
			a.clip.Start = max(*patch.Start, 0)
		}
		if patch.Duration != nil {
			a.clip.Duration = max(*patch.Duration, s.minClipDuration)
		}
		if patch.Speed != nil {
			a.clip.Speed = *patch.Speed
		}
	}
	if patch.Locked != nil {
		a.clip.Locked = *patch.Locked
	}
	if patch.Muted != nil {
		a.clip.Muted = *patch.Muted
	}
	if a.clip != before {
		s.notify()
	}
	return nil
}

// AddKeyframe upserts a keyframe on the element's track for p, creating the
// animation and the track lazily. Inserting at an occupied time overwrites
// that keyframe's value and easing. A locked animation makes this a silent
// no-op returning a zero keyframe.
func (s *Store) AddKeyframe(elementID string, p track.Property, time float64, value track.Value, ease string) (track.Keyframe, error) {
	if !p.Valid() {
		return track.Keyframe{}, errors.InvalidArgument("store.AddKeyframe", "unknown property %q", p)
	}
	a, err := s.InitAnimation(elementID)
	if err != nil {
		return track.Keyframe{}, err
	}
	if a.clip.Locked {
		return track.Keyframe{}, nil
	}
	tr, ok := a.tracks[p]
	if !ok {
		tr = track.New(p)
	}
	k, err := tr.Upsert(track.Keyframe{ID: s.newID(), Time: time, Value: value, Easing: ease})
	if err != nil {
		return track.Keyframe{}, err
	}
	a.tracks[p] = tr
	s.notify()
	return k, nil
}

// UpdateKeyframe applies a partial update to a keyframe. Moving it onto an
// occupied time overwrites the keyframe already there. Locked animations
// make this a silent no-op.
func (s *Store) UpdateKeyframe(elementID string, p track.Property, id string, patch track.Patch) (track.Keyframe, error) {
	a, ok := s.animations[elementID]
	if !ok {
		return track.Keyframe{}, errors.NotFound("store.UpdateKeyframe", "animation for element %q", elementID)
	}
	if a.clip.Locked {
		return track.Keyframe{}, nil
	}
	tr, ok := a.tracks[p]
	if !ok {
		return track.Keyframe{}, errors.NotFound("store.UpdateKeyframe", "track %q on element %q", p, elementID)
	}
	k, err := tr.Update(id, patch)
	if err != nil {
		return track.Keyframe{}, err
	}
	s.notify()
	return k, nil
}

// DeleteKeyframe removes a keyframe by id. Unknown ids are a no-op. A track
// emptied by the removal is deleted. Locked animations make this a silent
// no-op.
func (s *Store) DeleteKeyframe(elementID string, p track.Property, id string) bool {
	a, ok := s.animations[elementID]
	if !ok || a.clip.Locked {
		return false
	}
	tr, ok := a.tracks[p]
	if !ok {
		return false
	}
	if !tr.Remove(id) {
		return false
	}
	if tr.Len() == 0 {
		delete(a.tracks, p)
	}
	s.notify()
	return true
}

// DeleteTrack removes the element's whole track for p. Locked animations
// make this a silent no-op.
func (s *Store) DeleteTrack(elementID string, p track.Property) bool {
	a, ok := s.animations[elementID]
	if !ok || a.clip.Locked {
		return false
	}
	if _, ok := a.tracks[p]; !ok {
		return false
	}
	delete(a.tracks, p)
	s.notify()
	return true
}

// DeleteAllKeyframes removes every track of the element. Locked animations
// make this a silent no-op.
func (s *Store) DeleteAllKeyframes(elementID string) bool {
	a, ok := s.animations[elementID]
	if !ok || a.clip.Locked || len(a.tracks) == 0 {
		return false
	}
	a.tracks = make(map[track.Property]*track.Track)
	s.notify()
	return true
}

// DuplicateTrack deep-copies the element's track for p onto another element
// with fresh keyframe ids, replacing any existing track there. The
// destination animation is created lazily; a locked source is readable, a
// locked destination makes this a silent no-op.
func (s *Store) DuplicateTrack(elementID string, p track.Property, ontoElementID string) error {
	src, ok := s.animations[elementID]
	if !ok {
		return errors.NotFound("store.DuplicateTrack", "animation for element %q", elementID)
	}
	tr, ok := src.tracks[p]
	if !ok {
		return errors.NotFound("store.DuplicateTrack", "track %q on element %q", p, elementID)
	}
	dst, err := s.InitAnimation(ontoElementID)
	if err != nil {
		return err
	}
	if dst.clip.Locked {
		return nil
	}
	dst.tracks[p] = tr.Clone(s.newID)
	s.notify()
	return nil
}

// DuplicateAnimation deep-copies the element's clip placement and all
// tracks onto another element with fresh keyframe ids. The destination is
// created if needed and fully replaced; a locked destination makes this a
// silent no-op. The lock flag itself is not copied.
func (s *Store) DuplicateAnimation(elementID, ontoElementID string) error {
	src, ok := s.animations[elementID]
	if !ok {
		return errors.NotFound("store.DuplicateAnimation", "animation for element %q", elementID)
	}
	dst, err := s.InitAnimation(ontoElementID)
	if err != nil {
		return err
	}
	if dst.clip.Locked {
		return nil
	}
	dst.clip = src.clip
	dst.clip.Locked = false
	dst.tracks = make(map[track.Property]*track.Track, len(src.tracks))
	for p, tr := range src.tracks {
		dst.tracks[p] = tr.Clone(s.newID)
	}
	s.notify()
	return nil
}

// SplitResult reports the portion of a split clip past the split point. The
// caller owns attaching it to a new element, feeding the keyframes back in
// through AddKeyframe; the store never invents elements.
type SplitResult struct {
	// TailStart is the tail's position on the master timeline (the split
	// point).
	TailStart float64
	// TailDuration is the tail's length on the master timeline.
	TailDuration float64
	// Tracks holds the keyframes at or past the split point, re-based so
	// time zero is the split point in clip-local seconds.
	Tracks map[track.Property][]track.Keyframe
}

// SplitClip divides the element's clip at a master-timeline time strictly
// inside the clip. The original keeps the keyframes before the split point
// and its duration is truncated there; the keyframes at or past it are
// removed and returned re-based. A locked animation makes this a silent
// no-op returning a nil result.
func (s *Store) SplitClip(elementID string, at float64) (*SplitResult, error) {
	a, ok := s.animations[elementID]
	if !ok {
		return nil, errors.NotFound("store.SplitClip", "animation for element %q", elementID)
	}
	if at <= a.clip.Start || at >= a.clip.End() {
		return nil, errors.InvalidArgument("store.SplitClip",
			"split time %g outside clip (%g, %g)", at, a.clip.Start, a.clip.End())
	}
	if a.clip.Locked {
		return nil, nil
	}

	cutLocal := a.clip.LocalTime(at)
	result := &SplitResult{
		TailStart:    at,
		TailDuration: a.clip.End() - at,
		Tracks:       make(map[track.Property][]track.Keyframe),
	}
	for p, tr := range a.tracks {
		if tail := tr.Split(cutLocal); len(tail) > 0 {
			result.Tracks[p] = tail
		}
		if tr.Len() == 0 {
			delete(a.tracks, p)
		}
	}
	a.clip.Duration = at - a.clip.Start
	s.notify()
	return result, nil
}

// SetSequenceDuration sets an explicit sequence duration overriding the
// derived one.
func (s *Store) SetSequenceDuration(d float64) error {
	if d <= 0 {
		return errors.InvalidArgument("store.SetSequenceDuration", "non-positive duration %g", d)
	}
	s.seqDur = d
	s.notify()
	return nil
}

// ClearSequenceDuration reverts to the derived duration.
func (s *Store) ClearSequenceDuration() {
	if s.seqDur == 0 {
		return
	}
	s.seqDur = 0
	s.notify()
}

// SequenceDuration returns the explicit sequence duration, if set.
func (s *Store) SequenceDuration() (float64, bool) {
	return s.seqDur, s.seqDur > 0
}

// Duration returns the master timeline length: the explicit sequence
// duration if set, otherwise the latest clip end over all non-muted
// animations.
func (s *Store) Duration() float64 {
	if s.seqDur > 0 {
		return s.seqDur
	}
	end := 0.0
	for _, a := range s.animations {
		if a.clip.Muted {
			continue
		}
		end = max(end, a.clip.End())
	}
	return end
}
