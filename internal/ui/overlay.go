package ui

// Overlay is a screen drawn above all other layers with a dismiss key.
type Overlay struct {
	Screen  *Screen
	Dismiss string // Key that dismisses (e.g. "esc")
}

// IsDismissKey returns true if the given key string should dismiss this overlay.
func (o *Overlay) IsDismissKey(key string) bool {
	return key == o.Dismiss
}

// OverlayStack manages a stack of overlays (topmost receives input first).
type OverlayStack struct {
	Stack []Overlay
}

// Push adds an overlay to the top of the stack.
func (s *OverlayStack) Push(o Overlay) {
	s.Stack = append(s.Stack, o)
}

// Peek returns the top overlay without removing it.
func (s *OverlayStack) Peek() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Remove deletes the overlay whose screen has id.
func (s *OverlayStack) Remove(id string) (Overlay, bool) {
	for i, o := range s.Stack {
		if o.Screen.ID == id {
			s.Stack = append(s.Stack[:i], s.Stack[i+1:]...)
			return o, true
		}
	}
	return Overlay{}, false
}

// Clear removes all overlays and returns them.
func (s *OverlayStack) Clear() []Overlay {
	out := s.Stack
	s.Stack = nil
	return out
}

// Len returns the number of overlays in the stack.
func (s *OverlayStack) Len() int {
	return len(s.Stack)
}
