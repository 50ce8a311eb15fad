package types

// Edge names the side a sticky column is pinned to.
type Edge string

// Sticky edges. EdgeNone leaves the column unpinned.
const (
	EdgeNone  Edge = ""
	EdgeLeft  Edge = "left"
	EdgeRight Edge = "right"
)

// Column describes how one column reads and presents a row of type T.
//
// Accessor returns the column's raw value for sorting and searching. Cell
// returns the presentation of a value; when Accessor is nil the string form
// of Cell's output stands in for the value. A column with neither is
// display-only and never takes part in sort or search.
type Column[T any] struct {
	ID       string                     // Unique column identifier.
	Header   string                     // Human-readable header label.
	Accessor func(row T) any            // Raw value accessor (optional).
	Cell     func(row T, value any) any // Presentation formatter (optional).
	Sortable bool                       // Whether the header toggles sorting.
	Width    string                     // Width hint passed through to renderers.
	Sticky   Edge                       // Pinned edge, if any.
}

// Resolvable reports whether the column can produce a value for sort and search.
func (c Column[T]) Resolvable() bool {
	return c.Accessor != nil || c.Cell != nil
}
