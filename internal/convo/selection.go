package convo

import "sync"

// SelectionMode controls how item presses affect the selection.
type SelectionMode string

const (
	SelectNone     SelectionMode = "none"
	SelectSingle   SelectionMode = "single"
	SelectMultiple SelectionMode = "multiple"
)

// Selection tracks which conversations are selected. Insertion order is
// preserved for multiple mode. Every store removal also drops the id here so
// the selection never references a missing record.
type Selection struct {
	mu   sync.Mutex
	mode SelectionMode
	ids  []string
}

// NewSelection creates a selection in none mode.
func NewSelection() *Selection {
	return &Selection{mode: SelectNone}
}

// Mode returns the current mode.
func (s *Selection) Mode() SelectionMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches modes; entering none clears the selection.
func (s *Selection) SetMode(mode SelectionMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	if mode == SelectNone {
		s.ids = nil
	}
}

// Toggle applies a press to the selection and reports whether the id is
// selected afterwards. In none mode presses never select (callers forward
// them to the press handler instead).
func (s *Selection) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.mode {
	case SelectSingle:
		if len(s.ids) == 1 && s.ids[0] == id {
			s.ids = nil
			return false
		}
		s.ids = []string{id}
		return true
	case SelectMultiple:
		for i, cur := range s.ids {
			if cur == id {
				s.ids = append(s.ids[:i], s.ids[i+1:]...)
				return false
			}
		}
		s.ids = append(s.ids, id)
		return true
	}
	return false
}

// Contains reports whether the id is selected.
func (s *Selection) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cur := range s.ids {
		if cur == id {
			return true
		}
	}
	return false
}

// IDs returns the selected ids in insertion order.
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ids...)
}

// Drop removes the id from the selection if present.
func (s *Selection) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.ids {
		if cur == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}
