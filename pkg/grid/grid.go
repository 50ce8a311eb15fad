// Package grid is the public API of the tabular-view engine.
//
// A Grid holds the view state of one rendered table over rows of any type:
// sort, search and filters, selection, view mode, column visibility, and
// highlighting. Callers feed it rows and user events and read back a
// Snapshot to render.
//
// Example:
//
//	g, err := grid.New(types.Options[User]{
//	    Columns:  columns,
//	    Identify: func(u User) string { return u.ID },
//	    Rows:     users,
//	})
//	g.ToggleSort("name")
//	g.SetQuery("ann")
//	snap := g.Snapshot()
package grid

import (
	"github.com/mesh-intelligence/gridview/internal/engine"
	"github.com/mesh-intelligence/gridview/pkg/types"
)

// Grid is the engine for rows of type T.
type Grid[T any] = engine.Engine[T]

// New builds a Grid from opts. Construction is the only operation that
// returns an error.
func New[T any](opts types.Options[T]) (*Grid[T], error) {
	return engine.New(opts)
}
