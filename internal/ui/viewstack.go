package ui

// ViewStack manages a stack of screens for navigation (push/pop).
type ViewStack struct {
	Stack []*Screen
}

// Push adds a screen to the top of the stack.
func (s *ViewStack) Push(v *Screen) {
	s.Stack = append(s.Stack, v)
}

// Pop removes and returns the top screen.
// Returns nil if the stack is empty.
func (s *ViewStack) Pop() *Screen {
	if len(s.Stack) == 0 {
		return nil
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top
}

// Peek returns the top screen without removing it.
func (s *ViewStack) Peek() *Screen {
	if len(s.Stack) == 0 {
		return nil
	}
	return s.Stack[len(s.Stack)-1]
}

// Len returns the number of screens in the stack.
func (s *ViewStack) Len() int {
	return len(s.Stack)
}

// IndexOf returns the position of the screen with id, or -1.
func (s *ViewStack) IndexOf(id string) int {
	for i, v := range s.Stack {
		if v.ID == id {
			return i
		}
	}
	return -1
}

// TruncateAbove removes every screen above index i and returns them,
// bottom first.
func (s *ViewStack) TruncateAbove(i int) []*Screen {
	if i < 0 || i >= len(s.Stack)-1 {
		return nil
	}
	removed := append([]*Screen(nil), s.Stack[i+1:]...)
	s.Stack = s.Stack[:i+1]
	return removed
}
