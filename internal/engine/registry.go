package engine

import (
	"fmt"

	"github.com/mesh-intelligence/gridview/pkg/types"
)

// registry holds the static column list and resolves column values.
type registry[T any] struct {
	columns []types.Column[T]
	index   map[string]int
}

// newRegistry validates column IDs and builds the lookup index.
// Returns ErrInvalidColumn for an empty ID and ErrDuplicateColumn when two
// columns share an ID.
func newRegistry[T any](columns []types.Column[T]) (*registry[T], error) {
	r := &registry[T]{
		columns: make([]types.Column[T], len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	copy(r.columns, columns)
	for i, c := range r.columns {
		if c.ID == "" {
			return nil, fmt.Errorf("%w: column %d", types.ErrInvalidColumn, i)
		}
		if _, dup := r.index[c.ID]; dup {
			return nil, fmt.Errorf("%w: %q", types.ErrDuplicateColumn, c.ID)
		}
		r.index[c.ID] = i
	}
	return r, nil
}

func (r *registry[T]) column(id string) (types.Column[T], bool) {
	i, ok := r.index[id]
	if !ok {
		return types.Column[T]{}, false
	}
	return r.columns[i], true
}

func (r *registry[T]) has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// ids returns every registered column ID in registration order.
func (r *registry[T]) ids() []string {
	out := make([]string, len(r.columns))
	for i, c := range r.columns {
		out[i] = c.ID
	}
	return out
}

// sortable reports whether id names a column that both asks for sorting and
// can produce a value. A Sortable column with no accessor or cell formatter
// is treated as display-only.
func (r *registry[T]) sortable(id string) bool {
	c, ok := r.column(id)
	return ok && c.Sortable && c.Resolvable()
}

// searchable returns the columns that contribute to the search haystack.
func (r *registry[T]) searchable() []types.Column[T] {
	out := make([]types.Column[T], 0, len(r.columns))
	for _, c := range r.columns {
		if c.Resolvable() {
			out = append(out, c)
		}
	}
	return out
}

// valueOf returns the comparable, searchable value of column id for row.
// The second result is false when the column is unknown or display-only.
func (r *registry[T]) valueOf(row T, id string) (any, bool) {
	c, ok := r.column(id)
	if !ok {
		return nil, false
	}
	return resolve(c, row)
}

// resolve prefers the accessor and falls back to the string form of the
// cell presentation.
func resolve[T any](c types.Column[T], row T) (any, bool) {
	switch {
	case c.Accessor != nil:
		return normalize(c.Accessor(row)), true
	case c.Cell != nil:
		p := normalize(c.Cell(row, nil))
		if p == nil {
			return nil, true
		}
		return stringOf(p), true
	default:
		return nil, false
	}
}

// rawValue is the value handed to a cell formatter: the accessor output, or
// nil when the column has no accessor.
func rawValue[T any](c types.Column[T], row T) any {
	if c.Accessor == nil {
		return nil
	}
	return normalize(c.Accessor(row))
}

// display produces the presentation of a cell.
func display[T any](c types.Column[T], row T, value any) any {
	if c.Cell != nil {
		return c.Cell(row, value)
	}
	return stringOf(value)
}
