package types

// RenderMode is the coarse state a view renders in.
type RenderMode string

// Render modes. Transitions depend only on the loading flag and the
// post-filter row count.
const (
	RenderLoading   RenderMode = "loading"
	RenderEmpty     RenderMode = "empty"
	RenderPopulated RenderMode = "populated"
)

// Default empty-state text used when Options leaves it blank.
const (
	DefaultEmptyTitle       = "No data found"
	DefaultEmptyDescription = "There are no items to display."
)

// Cell is one visible column value of a row.
type Cell struct {
	ColumnID string `json:"column_id"`
	Value    any    `json:"value"`   // Resolved raw value (nil when blank).
	Display  any    `json:"display"` // Column Cell output, or the value's string form.
}

// RowView is one surviving row annotated for rendering.
type RowView[T any] struct {
	ID           string      `json:"id"`
	Row          T           `json:"row"`
	Selected     bool        `json:"selected"`
	Highlight    Highlight   `json:"highlight,omitempty"`
	Cells        []Cell      `json:"cells"`
	Actions      []ActionRef `json:"actions,omitempty"`
	QuickActions []ActionRef `json:"quick_actions,omitempty"`
}

// ColumnView is the render-facing description of a visible column.
type ColumnView struct {
	ID       string    `json:"id"`
	Header   string    `json:"header"`
	Width    string    `json:"width,omitempty"`
	Sticky   Edge      `json:"sticky,omitempty"`
	Sortable bool      `json:"sortable"`
	Sorted   Direction `json:"sorted,omitempty"` // Set only on the active sort column.
}

// SelectionView is the selection state for toolbar and header checkbox.
type SelectionView struct {
	IDs          []string `json:"ids"`
	Count        int      `json:"count"`
	AllSelected  bool     `json:"all_selected"`
	SomeSelected bool     `json:"some_selected"` // Indeterminate header checkbox.
}

// Snapshot is the engine output for one render pass.
type Snapshot[T any] struct {
	Mode             RenderMode    `json:"mode"`
	Rows             []RowView[T]  `json:"rows"`
	Columns          []ColumnView  `json:"columns"`
	Sort             SortState     `json:"sort"`
	View             ViewState     `json:"view"`
	Density          Density       `json:"density"` // Effective density.
	Selection        SelectionView `json:"selection"`
	Selectable       bool          `json:"selectable"`
	HasActions       bool          `json:"has_actions"`
	BulkActions      []ActionRef   `json:"bulk_actions,omitempty"`
	BulkEnabled      bool          `json:"bulk_enabled"`
	Highlighting     bool          `json:"highlighting"`
	Query            string        `json:"query"`
	ActiveFilters    int           `json:"active_filters"`
	TotalRows        int           `json:"total_rows"`
	DuplicateIDs     []string      `json:"duplicate_ids,omitempty"`
	EmptyTitle       string        `json:"empty_title,omitempty"`
	EmptyDescription string        `json:"empty_description,omitempty"`
}
