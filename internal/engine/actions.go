package engine

import (
	"fmt"

	"github.com/mesh-intelligence/gridview/pkg/types"
)

// dispatcher routes row, quick and bulk action invocations to the handlers
// supplied at construction. Handlers run synchronously; anything they start
// asynchronously is their own business.
type dispatcher[T any] struct {
	rowActions types.ActionList[T]
	quick      []types.QuickAction[T]
	bulk       []types.BulkAction[T]
	onRowClick func(row T)
}

// newDispatcher rejects duplicate action IDs within each list. Dividers may
// share IDs.
func newDispatcher[T any](opts types.Options[T]) (*dispatcher[T], error) {
	d := &dispatcher[T]{
		rowActions: opts.RowActions,
		quick:      opts.QuickActions,
		bulk:       opts.BulkActions,
		onRowClick: opts.OnRowClick,
	}

	seen := make(map[string]bool)
	for _, a := range d.menu() {
		if a.Divider {
			continue
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("%w: row action %q", types.ErrDuplicateAction, a.ID)
		}
		seen[a.ID] = true
	}
	seen = make(map[string]bool)
	for _, a := range d.quick {
		if seen[a.ID] {
			return nil, fmt.Errorf("%w: quick action %q", types.ErrDuplicateAction, a.ID)
		}
		seen[a.ID] = true
	}
	seen = make(map[string]bool)
	for _, a := range d.bulk {
		if seen[a.ID] {
			return nil, fmt.Errorf("%w: bulk action %q", types.ErrDuplicateAction, a.ID)
		}
		seen[a.ID] = true
	}
	return d, nil
}

func (d *dispatcher[T]) menu() []types.RowAction[T] {
	if d.rowActions == nil {
		return nil
	}
	return d.rowActions.RowActions()
}

// hasRowAffordance reports whether the action pseudo-column is shown.
func (d *dispatcher[T]) hasRowAffordance() bool {
	return len(d.menu()) > 0 || len(d.quick) > 0
}

// rowMenu returns the menu entries enabled for row. Dividers are kept;
// entries hidden for this row are left out. The action list itself is not
// modified.
func (d *dispatcher[T]) rowMenu(row T) []types.ActionRef {
	actions := d.menu()
	if len(actions) == 0 {
		return nil
	}
	out := make([]types.ActionRef, 0, len(actions))
	for _, a := range actions {
		if a.HiddenFor(row) {
			continue
		}
		out = append(out, types.ActionRef{
			ID:      a.ID,
			Label:   a.Label,
			Icon:    a.Icon,
			Variant: a.Variant,
			Divider: a.Divider,
		})
	}
	return out
}

func (d *dispatcher[T]) quickRefs() []types.ActionRef {
	if len(d.quick) == 0 {
		return nil
	}
	out := make([]types.ActionRef, len(d.quick))
	for i, a := range d.quick {
		out[i] = types.ActionRef{ID: a.ID, Label: a.Label, Icon: a.Icon, Variant: a.Variant}
	}
	return out
}

func (d *dispatcher[T]) bulkRefs() []types.ActionRef {
	if len(d.bulk) == 0 {
		return nil
	}
	out := make([]types.ActionRef, len(d.bulk))
	for i, a := range d.bulk {
		out[i] = types.ActionRef{ID: a.ID, Label: a.Label, Icon: a.Icon, Variant: a.Variant}
	}
	return out
}

// invokeRow runs the menu action actionID for row. Dividers, hidden entries
// and entries without a handler do not dispatch.
func (d *dispatcher[T]) invokeRow(actionID string, row T) bool {
	for _, a := range d.menu() {
		if a.Divider || a.ID != actionID {
			continue
		}
		if a.HiddenFor(row) || a.OnClick == nil {
			return false
		}
		a.OnClick(row)
		return true
	}
	return false
}

func (d *dispatcher[T]) invokeQuick(actionID string, row T) bool {
	for _, a := range d.quick {
		if a.ID != actionID {
			continue
		}
		if a.OnClick == nil {
			return false
		}
		a.OnClick(row)
		return true
	}
	return false
}

// invokeBulk runs bulk action actionID with rows. An empty rows slice never
// dispatches.
func (d *dispatcher[T]) invokeBulk(actionID string, rows []T) bool {
	if len(rows) == 0 {
		return false
	}
	for _, a := range d.bulk {
		if a.ID != actionID {
			continue
		}
		if a.OnClick == nil {
			return false
		}
		a.OnClick(rows)
		return true
	}
	return false
}

func (d *dispatcher[T]) click(row T) bool {
	if d.onRowClick == nil {
		return false
	}
	d.onRowClick(row)
	return true
}
