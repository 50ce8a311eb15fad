// Package engine implements the headless tabular-view engine.
//
// An Engine owns the view state for one rendered view: sort, search and
// structured filters, selection, view mode and density, column visibility,
// and highlighting. Rows are supplied by the caller and replaced wholesale
// on every refresh. Every operation is synchronous; an Engine is owned by a
// single goroutine and is not safe for concurrent use.
//
// Only New returns errors. Every other operation normalizes bad input
// (unknown column or row IDs, unknown modes) by ignoring it.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mesh-intelligence/gridview/internal/log"
	"github.com/mesh-intelligence/gridview/pkg/types"
)

// Engine composes the view components over rows of type T.
type Engine[T any] struct {
	identify func(row T) string

	reg     *registry[T]
	sorter  *sorter[T]
	search  *searcher[T]
	sel     *selection
	view    *viewController
	cols    *visibility
	hl      *highlighter[T]
	actions *dispatcher[T]

	selectable bool
	emptyTitle string
	emptyDesc  string
	log        *slog.Logger

	rows    []T
	byID    map[string]int
	dups    []string
	loading bool
	stale   bool
}

// New validates opts and builds an Engine. It returns ErrNoIdentify when
// Identify is nil, ErrInvalidColumn or ErrDuplicateColumn for a bad column
// list, ErrUnknownColumn when InitialVisible or InitialSort names an
// unregistered column, ErrDuplicateAction for clashing action IDs, and the
// Config validation errors.
func New[T any](opts types.Options[T]) (*Engine[T], error) {
	if opts.Identify == nil {
		return nil, types.ErrNoIdentify
	}
	cfg := opts.Config.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	reg, err := newRegistry(opts.Columns)
	if err != nil {
		return nil, err
	}
	for _, id := range opts.InitialVisible {
		if !reg.has(id) {
			return nil, fmt.Errorf("%w: visible column %q", types.ErrUnknownColumn, id)
		}
	}
	if opts.InitialSort.Active() && !reg.has(opts.InitialSort.ColumnID) {
		return nil, fmt.Errorf("%w: sort column %q", types.ErrUnknownColumn, opts.InitialSort.ColumnID)
	}

	actions, err := newDispatcher(opts)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	e := &Engine[T]{
		identify:   opts.Identify,
		reg:        reg,
		sorter:     newSorter(reg),
		search:     newSearcher(reg, opts.Matcher, opts.Filter),
		sel:        newSelection(),
		view:       newViewController(cfg),
		cols:       newVisibility(reg.ids(), opts.InitialVisible),
		hl:         newHighlighter(opts.Classifier, cfg, opts.Clock),
		actions:    actions,
		selectable: opts.Selectable,
		emptyTitle: opts.EmptyTitle,
		emptyDesc:  opts.EmptyDescription,
		log:        logger,
		byID:       map[string]int{},
	}
	if e.emptyTitle == "" {
		e.emptyTitle = types.DefaultEmptyTitle
	}
	if e.emptyDesc == "" {
		e.emptyDesc = types.DefaultEmptyDescription
	}
	if !e.sorter.set(opts.InitialSort) {
		e.log.Debug("initial sort ignored", "column", opts.InitialSort.ColumnID)
	}
	e.index(opts.Rows)
	return e, nil
}

// index replaces the dataset and rebuilds the identity map. Later rows win
// on duplicate IDs.
func (e *Engine[T]) index(rows []T) (prev map[string]int) {
	prev = e.byID
	e.rows = rows
	e.byID = make(map[string]int, len(rows))
	e.dups = nil
	seen := make(map[string]bool)
	for i, row := range rows {
		id := e.identify(row)
		if _, ok := e.byID[id]; ok && !seen[id] {
			seen[id] = true
			e.dups = append(e.dups, id)
		}
		e.byID[id] = i
	}
	if len(e.dups) > 0 {
		e.log.Warn("duplicate row ids", "ids", e.dups)
	}
	e.stale = true
	return prev
}

// SetRows replaces the dataset. Selected IDs that disappear are pruned on
// the next read. With TagNewRows set, IDs absent from the previous dataset
// are tagged new.
func (e *Engine[T]) SetRows(rows []T) {
	prev := e.index(rows)
	n := e.hl.tagArrivals(prev, e.byID)
	e.log.Debug("rows replaced", "rows", len(rows), "tagged", n)
}

// SetLoading records the collaborator's in-flight flag.
func (e *Engine[T]) SetLoading(loading bool) {
	if e.loading == loading {
		return
	}
	e.loading = loading
	e.log.Debug("loading changed", "loading", loading)
}

// Loading reports the in-flight flag.
func (e *Engine[T]) Loading() bool { return e.loading }

// ensurePruned drops selected IDs that are no longer in the dataset.
func (e *Engine[T]) ensurePruned() {
	if !e.stale {
		return
	}
	e.stale = false
	if n := e.sel.prune(e.byID); n > 0 {
		e.log.Debug("selection pruned", "removed", n)
	}
}

// Search and filters

// SetQuery stores the free-text query.
func (e *Engine[T]) SetQuery(query string) {
	e.search.query = query
	e.log.Debug("query changed", "query", query)
}

// Query returns the stored query.
func (e *Engine[T]) Query() string { return e.search.query }

// SetFilter sets a structured filter. The empty string or FilterAll
// deactivates key.
func (e *Engine[T]) SetFilter(key, value string) {
	e.search.setFilter(key, value)
	e.log.Debug("filter changed", "key", key, "value", value)
}

// ClearFilters drops every structured filter and the query.
func (e *Engine[T]) ClearFilters() {
	e.search.clear()
	e.log.Debug("filters cleared")
}

// Filters returns a copy of the active structured filters.
func (e *Engine[T]) Filters() types.FilterValues { return e.search.filters() }

// Sort

// ToggleSort cycles columnID through asc, desc and insertion order.
// Unknown and non-sortable columns are ignored.
func (e *Engine[T]) ToggleSort(columnID string) {
	if e.sorter.toggle(columnID) {
		e.log.Debug("sort toggled", "column", columnID, "sort", e.sorter.state.String())
	}
}

// SetSort replaces the sort state. A state naming a column that cannot be
// sorted clears sorting.
func (e *Engine[T]) SetSort(state types.SortState) {
	if !e.sorter.set(state) {
		e.log.Debug("sort cleared", "requested", state.String())
		return
	}
	e.log.Debug("sort set", "sort", e.sorter.state.String())
}

// Sort returns the current sort state.
func (e *Engine[T]) Sort() types.SortState { return e.sorter.state }

// Selection

// Selectable reports whether selection is enabled.
func (e *Engine[T]) Selectable() bool { return e.selectable }

// ToggleRow flips the selection of the row with the given ID and reports
// whether it is selected afterwards. IDs not in the dataset are ignored.
func (e *Engine[T]) ToggleRow(id string) bool {
	if !e.selectable {
		return false
	}
	e.ensurePruned()
	if _, ok := e.byID[id]; !ok {
		return false
	}
	on := e.sel.toggle(id)
	e.log.Debug("row toggled", "id", id, "selected", on)
	return on
}

// ToggleAll clears the selection when every visible row is selected and
// otherwise selects exactly the visible rows.
func (e *Engine[T]) ToggleAll() {
	if !e.selectable {
		return
	}
	e.ensurePruned()
	ids := e.idsOf(e.derive())
	e.sel.toggleAll(ids)
	e.log.Debug("select all toggled", "selected", e.sel.len(), "visible", len(ids))
}

// ClearSelection empties the selection.
func (e *Engine[T]) ClearSelection() {
	e.sel.clear()
}

// IsSelected reports whether id is selected.
func (e *Engine[T]) IsSelected(id string) bool {
	e.ensurePruned()
	return e.sel.has(id)
}

// SelectedIDs returns the selected IDs in selection order.
func (e *Engine[T]) SelectedIDs() []string {
	e.ensurePruned()
	return e.sel.list()
}

// Selected returns the selected rows, re-derived from the current dataset
// in dataset order.
func (e *Engine[T]) Selected() []T {
	e.ensurePruned()
	if e.sel.len() == 0 {
		return nil
	}
	out := make([]T, 0, e.sel.len())
	for i, row := range e.rows {
		id := e.identify(row)
		if e.byID[id] == i && e.sel.has(id) {
			out = append(out, row)
		}
	}
	return out
}

// Selection returns the selection state against the visible rows.
func (e *Engine[T]) Selection() types.SelectionView {
	e.ensurePruned()
	var visible []string
	if !e.loading {
		visible = e.idsOf(e.derive())
	}
	return e.selectionView(visible)
}

func (e *Engine[T]) selectionView(visible []string) types.SelectionView {
	return types.SelectionView{
		IDs:          e.sel.list(),
		Count:        e.sel.len(),
		AllSelected:  e.sel.allSelected(visible),
		SomeSelected: e.sel.someSelected(visible),
	}
}

// View

// SetViewMode switches the view mode. Unknown modes are ignored.
func (e *Engine[T]) SetViewMode(mode types.ViewMode) {
	if e.view.setMode(mode) {
		e.log.Debug("view mode changed", "mode", mode)
	}
}

// SetDensity stores the density. Unknown densities are ignored.
func (e *Engine[T]) SetDensity(d types.Density) {
	if e.view.setDensity(d) {
		e.log.Debug("density changed", "density", d)
	}
}

// View returns the stored view state.
func (e *Engine[T]) View() types.ViewState { return e.view.state }

// EffectiveDensity returns the density rows render at.
func (e *Engine[T]) EffectiveDensity() types.Density { return e.view.state.EffectiveDensity() }

// Column visibility

// ToggleColumn flips the visibility of a data column. Unknown IDs are
// ignored.
func (e *Engine[T]) ToggleColumn(id string) {
	if !e.cols.known(id) {
		return
	}
	on := e.cols.toggle(id)
	e.log.Debug("column toggled", "column", id, "visible", on)
}

// ShowColumn makes a data column visible.
func (e *Engine[T]) ShowColumn(id string) { e.cols.show(id) }

// HideColumn hides a data column.
func (e *Engine[T]) HideColumn(id string) { e.cols.hide(id) }

// ShowAllColumns makes every registered column visible.
func (e *Engine[T]) ShowAllColumns() { e.cols.showAll() }

// VisibleColumns returns the visible data column IDs in registration order.
func (e *Engine[T]) VisibleColumns() []string { return e.cols.ids() }

// IsColumnVisible reports whether id is visible.
func (e *Engine[T]) IsColumnVisible(id string) bool { return e.cols.isVisible(id) }

// Registry lookups

// ValueOf resolves the value of column id for row. The second result is
// false for unknown and display-only columns.
func (e *Engine[T]) ValueOf(row T, id string) (any, bool) { return e.reg.valueOf(row, id) }

// SortableIDs returns the columns that can be sorted.
func (e *Engine[T]) SortableIDs() []string {
	var out []string
	for _, id := range e.reg.ids() {
		if e.reg.sortable(id) {
			out = append(out, id)
		}
	}
	return out
}

// SearchableIDs returns the columns that feed the default text search.
func (e *Engine[T]) SearchableIDs() []string {
	cols := e.reg.searchable()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.ID
	}
	return out
}

// Highlighting

// ToggleHighlighting flips the global highlighting switch and returns the
// new value.
func (e *Engine[T]) ToggleHighlighting() bool {
	e.hl.enabled = !e.hl.enabled
	e.log.Debug("highlighting toggled", "enabled", e.hl.enabled)
	return e.hl.enabled
}

// SetHighlighting sets the global highlighting switch.
func (e *Engine[T]) SetHighlighting(on bool) { e.hl.enabled = on }

// Highlighting reports the global highlighting switch.
func (e *Engine[T]) Highlighting() bool { return e.hl.enabled }

// MarkNew tags id as new for ttl. A ttl <= 0 uses the configured TTL.
func (e *Engine[T]) MarkNew(id string, ttl time.Duration) {
	e.hl.markNew(id, ttl)
}

// HighlightOf returns the highlight of the row with the given ID.
func (e *Engine[T]) HighlightOf(id string) types.Highlight {
	i, ok := e.byID[id]
	if !ok {
		return types.HighlightNone
	}
	return e.hl.classify(e.rows[i], id)
}

// Actions

// InvokeRow runs row action actionID for the row with the given ID and
// reports whether a handler ran.
func (e *Engine[T]) InvokeRow(actionID, rowID string) bool {
	row, ok := e.row(rowID)
	if !ok {
		return false
	}
	ran := e.actions.invokeRow(actionID, row)
	e.log.Debug("row action", "action", actionID, "row", rowID, "dispatched", ran)
	return ran
}

// InvokeQuick runs quick action actionID for the row with the given ID.
func (e *Engine[T]) InvokeQuick(actionID, rowID string) bool {
	row, ok := e.row(rowID)
	if !ok {
		return false
	}
	ran := e.actions.invokeQuick(actionID, row)
	e.log.Debug("quick action", "action", actionID, "row", rowID, "dispatched", ran)
	return ran
}

// InvokeBulk runs bulk action actionID with the currently selected rows. It
// does nothing while the selection is empty.
func (e *Engine[T]) InvokeBulk(actionID string) bool {
	rows := e.Selected()
	ran := e.actions.invokeBulk(actionID, rows)
	e.log.Debug("bulk action", "action", actionID, "rows", len(rows), "dispatched", ran)
	return ran
}

// ClickRow runs the row click handler for the row with the given ID.
func (e *Engine[T]) ClickRow(rowID string) bool {
	row, ok := e.row(rowID)
	if !ok {
		return false
	}
	return e.actions.click(row)
}

func (e *Engine[T]) idsOf(rows []T) []string {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = e.identify(row)
	}
	return ids
}

func (e *Engine[T]) row(id string) (T, bool) {
	i, ok := e.byID[id]
	if !ok {
		var zero T
		return zero, false
	}
	return e.rows[i], true
}

// Derived output

// derive runs the pipeline: structured filters, text search, sort.
func (e *Engine[T]) derive() []T {
	return e.sorter.apply(e.search.apply(e.rows))
}

// Rows returns the ordered, filtered rows. It returns nil while loading.
func (e *Engine[T]) Rows() []T {
	if e.loading {
		return nil
	}
	return e.derive()
}

// TotalRows returns the dataset size before filtering.
func (e *Engine[T]) TotalRows() int { return len(e.rows) }

// DuplicateIDs returns the IDs shared by more than one row.
func (e *Engine[T]) DuplicateIDs() []string { return append([]string(nil), e.dups...) }

// RenderMode returns loading, empty or populated.
func (e *Engine[T]) RenderMode() types.RenderMode {
	return e.renderMode(e.Rows())
}

func (e *Engine[T]) renderMode(rows []T) types.RenderMode {
	switch {
	case e.loading:
		return types.RenderLoading
	case len(rows) == 0:
		return types.RenderEmpty
	default:
		return types.RenderPopulated
	}
}

// Snapshot returns everything a renderer needs for one pass.
func (e *Engine[T]) Snapshot() types.Snapshot[T] {
	e.ensurePruned()
	e.hl.sweep()

	rows := e.Rows()
	mode := e.renderMode(rows)
	bulkEnabled := e.selectable && e.sel.len() > 0 && len(e.actions.bulk) > 0

	snap := types.Snapshot[T]{
		Mode:          mode,
		Columns:       e.columnViews(),
		Sort:          e.sorter.state,
		View:          e.view.state,
		Density:       e.view.state.EffectiveDensity(),
		Selection:     e.selectionView(e.idsOf(rows)),
		Selectable:    e.selectable,
		HasActions:    e.actions.hasRowAffordance(),
		BulkActions:   e.actions.bulkRefs(),
		BulkEnabled:   bulkEnabled,
		Highlighting:  e.hl.enabled,
		Query:         e.search.query,
		ActiveFilters: e.search.values.ActiveCount(),
		TotalRows:     len(e.rows),
		DuplicateIDs:  e.DuplicateIDs(),
	}
	if mode == types.RenderEmpty {
		snap.EmptyTitle = e.emptyTitle
		snap.EmptyDescription = e.emptyDesc
	}
	if mode == types.RenderPopulated {
		snap.Rows = e.rowViews(rows)
	}

	e.log.Log(context.Background(), log.LevelTrace, "snapshot",
		"mode", mode, "rows", len(snap.Rows), "total", len(e.rows), "selected", snap.Selection.Count)
	return snap
}

func (e *Engine[T]) columnViews() []types.ColumnView {
	ids := e.cols.ids()
	out := make([]types.ColumnView, 0, len(ids))
	for _, id := range ids {
		c, _ := e.reg.column(id)
		cv := types.ColumnView{
			ID:       c.ID,
			Header:   c.Header,
			Width:    c.Width,
			Sticky:   c.Sticky,
			Sortable: e.reg.sortable(id),
		}
		if e.sorter.state.ColumnID == id {
			cv.Sorted = e.sorter.state.Direction
		}
		out = append(out, cv)
	}
	return out
}

func (e *Engine[T]) rowViews(rows []T) []types.RowView[T] {
	ids := e.cols.ids()
	cols := make([]types.Column[T], len(ids))
	for i, id := range ids {
		cols[i], _ = e.reg.column(id)
	}
	quick := e.actions.quickRefs()

	out := make([]types.RowView[T], len(rows))
	for i, row := range rows {
		id := e.identify(row)
		cells := make([]types.Cell, len(cols))
		for j, c := range cols {
			v, _ := resolve(c, row)
			cells[j] = types.Cell{
				ColumnID: c.ID,
				Value:    v,
				Display:  display(c, row, rawValue(c, row)),
			}
		}
		out[i] = types.RowView[T]{
			ID:           id,
			Row:          row,
			Selected:     e.sel.has(id),
			Highlight:    e.hl.classify(row, id),
			Cells:        cells,
			Actions:      e.actions.rowMenu(row),
			QuickActions: quick,
		}
	}
	return out
}
