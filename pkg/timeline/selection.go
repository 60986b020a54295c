package timeline

import "sort"

// Selection is the single source of truth for what is selected: at most one
// clip and any number of keyframes. The canvas and the timeline both read
// from it, so element selection and clip selection can never diverge and no
// re-entrancy guard is needed.
type Selection struct {
	clipID    string
	keyframes map[string]struct{}

	listeners      map[int]func()
	nextListenerID int
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{
		keyframes: make(map[string]struct{}),
		listeners: make(map[int]func()),
	}
}

// AddListener registers a callback fired on every selection change.
// Returns an unsubscribe function.
func (s *Selection) AddListener(fn func()) func() {
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = fn
	return func() {
		delete(s.listeners, id)
	}
}

func (s *Selection) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// SelectClip makes the element's clip the selected one.
func (s *Selection) SelectClip(elementID string) {
	if s.clipID == elementID {
		return
	}
	s.clipID = elementID
	s.notify()
}

// ClearClip deselects the clip.
func (s *Selection) ClearClip() {
	if s.clipID == "" {
		return
	}
	s.clipID = ""
	s.notify()
}

// Clip returns the selected clip's element id, if any.
func (s *Selection) Clip() (string, bool) {
	return s.clipID, s.clipID != ""
}

// ToggleKeyframe flips the keyframe's membership in the selection.
func (s *Selection) ToggleKeyframe(id string) {
	if _, ok := s.keyframes[id]; ok {
		delete(s.keyframes, id)
	} else {
		s.keyframes[id] = struct{}{}
	}
	s.notify()
}

// SetKeyframe replaces the keyframe selection with just the given one.
func (s *Selection) SetKeyframe(id string) {
	s.keyframes = map[string]struct{}{id: {}}
	s.notify()
}

// RemoveKeyframe drops the keyframe from the selection. Removing an
// unselected id is a no-op.
func (s *Selection) RemoveKeyframe(id string) {
	if _, ok := s.keyframes[id]; !ok {
		return
	}
	delete(s.keyframes, id)
	s.notify()
}

// ReplaceKeyframes replaces the keyframe selection wholesale.
func (s *Selection) ReplaceKeyframes(ids map[string]struct{}) {
	s.keyframes = make(map[string]struct{}, len(ids))
	for id := range ids {
		s.keyframes[id] = struct{}{}
	}
	s.notify()
}

// HasKeyframe reports whether the keyframe is selected.
func (s *Selection) HasKeyframe(id string) bool {
	_, ok := s.keyframes[id]
	return ok
}

// Keyframes returns the selected keyframe ids, sorted.
func (s *Selection) Keyframes() []string {
	ids := make([]string, 0, len(s.keyframes))
	for id := range s.keyframes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// KeyframeCount returns the number of selected keyframes.
func (s *Selection) KeyframeCount() int { return len(s.keyframes) }

// Clear empties the whole selection.
func (s *Selection) Clear() {
	if s.clipID == "" && len(s.keyframes) == 0 {
		return
	}
	s.clipID = ""
	s.keyframes = make(map[string]struct{})
	s.notify()
}
