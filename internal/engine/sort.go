package engine

import (
	"slices"

	"github.com/mesh-intelligence/gridview/pkg/types"
)

// sorter holds the single active sort column and orders rows by it.
type sorter[T any] struct {
	reg   *registry[T]
	state types.SortState
}

func newSorter[T any](reg *registry[T]) *sorter[T] {
	return &sorter[T]{reg: reg}
}

// toggle cycles a column through asc, desc and back to insertion order.
// Selecting a different column starts it at asc. Columns that cannot be
// sorted are ignored; the return value reports whether the state changed.
func (s *sorter[T]) toggle(columnID string) bool {
	if !s.reg.sortable(columnID) {
		return false
	}
	switch {
	case s.state.ColumnID != columnID:
		s.state = types.SortState{ColumnID: columnID, Direction: types.Asc}
	case s.state.Direction == types.Asc:
		s.state.Direction = types.Desc
	default:
		s.state = types.SortState{}
	}
	return true
}

// set replaces the state. An inactive state, or one naming a column that
// cannot be sorted, clears sorting and reports false for the latter. An
// empty direction defaults to asc; an unknown direction clears as well.
func (s *sorter[T]) set(state types.SortState) bool {
	if !state.Active() {
		s.state = types.SortState{}
		return true
	}
	if !s.reg.sortable(state.ColumnID) {
		s.state = types.SortState{}
		return false
	}
	switch state.Direction {
	case types.Asc, types.Desc:
	case "":
		state.Direction = types.Asc
	default:
		s.state = types.SortState{}
		return false
	}
	s.state = state
	return true
}

// sortItem pairs a row with its precomputed sort key.
type sortItem[T any] struct {
	row T
	key any
}

// apply returns rows ordered by the active column. With no active column the
// input is returned as is. The sort is stable and blank values go last in
// both directions; the input slice is never reordered in place.
func (s *sorter[T]) apply(rows []T) []T {
	if !s.state.Active() || len(rows) < 2 {
		return rows
	}
	col, ok := s.reg.column(s.state.ColumnID)
	if !ok {
		return rows
	}

	items := make([]sortItem[T], len(rows))
	for i, row := range rows {
		key, _ := resolve(col, row)
		items[i] = sortItem[T]{row: row, key: key}
	}

	c := newComparer()
	desc := s.state.Direction == types.Desc
	slices.SortStableFunc(items, func(a, b sortItem[T]) int {
		return compareKeys(c, a.key, b.key, desc)
	})

	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.row
	}
	return out
}

// compareKeys orders two sort keys. Blank keys compare after every defined
// key regardless of direction, and equal to each other so they keep input
// order.
func compareKeys(c *comparer, a, b any, desc bool) int {
	aBlank, bBlank := a == nil, b == nil
	switch {
	case aBlank && bBlank:
		return 0
	case aBlank:
		return 1
	case bBlank:
		return -1
	}
	r := c.compare(a, b)
	if desc {
		return -r
	}
	return r
}
