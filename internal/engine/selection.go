package engine

import "slices"

// selection is the set of selected row identities, kept in selection order
// so callers get a deterministic list back.
type selection struct {
	ids   map[string]struct{}
	order []string
}

func newSelection() *selection {
	return &selection{ids: make(map[string]struct{})}
}

func (s *selection) has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *selection) len() int {
	return len(s.order)
}

// list returns a copy of the selected IDs in selection order.
func (s *selection) list() []string {
	return slices.Clone(s.order)
}

func (s *selection) add(id string) {
	if s.has(id) {
		return
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *selection) remove(id string) {
	if !s.has(id) {
		return
	}
	delete(s.ids, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// toggle flips the membership of id and reports whether it is now selected.
func (s *selection) toggle(id string) bool {
	if s.has(id) {
		s.remove(id)
		return false
	}
	s.add(id)
	return true
}

func (s *selection) clear() {
	s.ids = make(map[string]struct{})
	s.order = nil
}

// set replaces the selection with ids, dropping duplicates.
func (s *selection) set(ids []string) {
	s.clear()
	for _, id := range ids {
		s.add(id)
	}
}

// toggleAll clears the selection when every visible row is already selected
// and otherwise selects exactly the visible rows. Rows hidden by the current
// filter are never selected by it.
func (s *selection) toggleAll(visible []string) {
	if s.allSelected(visible) {
		s.clear()
		return
	}
	s.set(visible)
}

// prune drops every ID not present in the current dataset and returns the
// number removed.
func (s *selection) prune(present map[string]int) int {
	before := len(s.order)
	s.order = slices.DeleteFunc(s.order, func(id string) bool {
		if _, ok := present[id]; ok {
			return false
		}
		delete(s.ids, id)
		return true
	})
	return before - len(s.order)
}

// coverage counts the distinct visible IDs and how many of them are
// selected.
func (s *selection) coverage(visible []string) (distinct, selected int) {
	seen := make(map[string]struct{}, len(visible))
	for _, id := range visible {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if s.has(id) {
			selected++
		}
	}
	return len(seen), selected
}

// allSelected reports whether the selection is exactly the visible rows:
// every visible row is selected and no hidden row is.
func (s *selection) allSelected(visible []string) bool {
	distinct, selected := s.coverage(visible)
	return distinct > 0 && selected == distinct && s.len() == distinct
}

// someSelected is the indeterminate state: a non-empty selection that is not
// all selected.
func (s *selection) someSelected(visible []string) bool {
	return s.len() > 0 && !s.allSelected(visible)
}
