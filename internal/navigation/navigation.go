// Package navigation tracks where the user is in the menu tree and where
// "go back" leads.
package navigation

// History is the navigation state: the current menu plus the stack of menus
// visited to reach it. The stack is seeded with the initial menu and never
// shrinks below it.
type History[S comparable] struct {
	current S
	stack   []S
}

// New creates a History positioned at initial.
func New[S comparable](initial S) *History[S] {
	return &History[S]{current: initial, stack: []S{initial}}
}

// Current returns the menu the user is in.
func (h *History[S]) Current() S {
	return h.current
}

// Initial returns the floor of the history.
func (h *History[S]) Initial() S {
	return h.stack[0]
}

// Len returns the number of entries in the history, including the seed.
func (h *History[S]) Len() int {
	return len(h.stack)
}

// Navigate moves to next. Moving to the menu the user is already in does
// nothing, so repeated actions that stay put do not grow the history.
func (h *History[S]) Navigate(next S) {
	if next == h.current {
		return
	}
	h.stack = append(h.stack, next)
	h.current = next
}

// Back discards the menu being left and returns the one beneath it, which
// becomes current. At the seed it stays put and returns the seed.
func (h *History[S]) Back() S {
	if len(h.stack) > 1 {
		h.stack = h.stack[:len(h.stack)-1]
	}
	h.current = h.stack[len(h.stack)-1]
	return h.current
}
