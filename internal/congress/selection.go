package congress

// Selected returns selected member IDs in the order they were selected.
func (s *State) Selected() []int {
	out := make([]int, len(s.selected))
	copy(out, s.selected)
	return out
}

// IsSelected reports whether member id is selected.
func (s *State) IsSelected(id int) bool {
	for _, sel := range s.selected {
		if sel == id {
			return true
		}
	}
	return false
}

// Select adds id to the selection. Unknown members and already selected
// members are ignored.
func (s *State) Select(id int) {
	if s.IsSelected(id) {
		return
	}
	if _, ok := s.Member(id); !ok {
		return
	}
	s.selected = append(s.selected, id)
}

// Deselect removes id from the selection.
func (s *State) Deselect(id int) {
	for i, sel := range s.selected {
		if sel == id {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
}

// Toggle flips whether id is selected and reports the new state.
func (s *State) Toggle(id int) bool {
	if s.IsSelected(id) {
		s.Deselect(id)
		return false
	}
	s.Select(id)
	return s.IsSelected(id)
}

// Focus returns the most recently selected member.
func (s *State) Focus() (int, bool) {
	if len(s.selected) == 0 {
		return 0, false
	}
	return s.selected[len(s.selected)-1], true
}

// ClearSelection deselects every member. Derived data is kept.
func (s *State) ClearSelection() {
	s.selected = nil
}
