package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gridview/pkg/types"
)

func TestNewDispatcher_DuplicateIDs(t *testing.T) {
	tests := []struct {
		name string
		opts types.Options[person]
		ok   bool
	}{
		{
			name: "dividers may share ids",
			opts: types.Options[person]{RowActions: types.Actions[person]{
				{ID: "edit"}, {Divider: true}, {Divider: true}, {ID: "delete"},
			}},
			ok: true,
		},
		{
			name: "duplicate row action",
			opts: types.Options[person]{RowActions: types.Actions[person]{{ID: "edit"}, {ID: "edit"}}},
		},
		{
			name: "duplicate quick action",
			opts: types.Options[person]{QuickActions: []types.QuickAction[person]{{ID: "view"}, {ID: "view"}}},
		},
		{
			name: "duplicate bulk action",
			opts: types.Options[person]{BulkActions: []types.BulkAction[person]{{ID: "rm"}, {ID: "rm"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newDispatcher(tt.opts)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, types.ErrDuplicateAction)
		})
	}
}

func TestDispatcher_RowMenu(t *testing.T) {
	var clicked []string
	d, err := newDispatcher(types.Options[person]{RowActions: types.Actions[person]{
		{ID: "edit", Label: "Edit", OnClick: func(p person) { clicked = append(clicked, "edit:"+p.ID) }},
		{Divider: true},
		{
			ID:      "page",
			Label:   "Page on-call",
			Variant: types.VariantWarning,
			Hidden:  func(p person) bool { return p.Team != "ops" },
			OnClick: func(p person) { clicked = append(clicked, "page:"+p.ID) },
		},
		{ID: "noop", Label: "No handler"},
	}})
	require.NoError(t, err)

	rows := people()
	ops, dev := rows[0], rows[1]

	menu := d.rowMenu(ops)
	require.Len(t, menu, 4)
	assert.True(t, menu[1].Divider)
	assert.Equal(t, types.VariantWarning, menu[2].Variant)

	menu = d.rowMenu(dev)
	require.Len(t, menu, 3)
	for _, a := range menu {
		assert.NotEqual(t, "page", a.ID)
	}
	assert.Len(t, d.menu(), 4, "action list not mutated by per-row filtering")

	assert.True(t, d.invokeRow("edit", dev))
	assert.False(t, d.invokeRow("page", dev), "hidden entry does not dispatch")
	assert.True(t, d.invokeRow("page", ops))
	assert.False(t, d.invokeRow("noop", ops))
	assert.False(t, d.invokeRow("", ops), "dividers never dispatch")
	assert.False(t, d.invokeRow("missing", ops))
	assert.Equal(t, []string{"edit:2", "page:1"}, clicked)
}

func TestDispatcher_Bulk(t *testing.T) {
	var got []string
	d, err := newDispatcher(types.Options[person]{BulkActions: []types.BulkAction[person]{
		{ID: "export", Label: "Export", OnClick: func(rows []person) { got = ids(rows) }},
	}})
	require.NoError(t, err)

	assert.False(t, d.invokeBulk("export", nil))
	assert.Nil(t, got)

	assert.True(t, d.invokeBulk("export", people()[:2]))
	assert.Equal(t, []string{"1", "2"}, got)
	assert.False(t, d.invokeBulk("missing", people()))

	refs := d.bulkRefs()
	require.Len(t, refs, 1)
	assert.Equal(t, "Export", refs[0].Label)
}

func TestDispatcher_Affordance(t *testing.T) {
	d, err := newDispatcher(types.Options[person]{})
	require.NoError(t, err)
	assert.False(t, d.hasRowAffordance())
	assert.Nil(t, d.rowMenu(people()[0]))
	assert.Nil(t, d.quickRefs())
	assert.Nil(t, d.bulkRefs())
	assert.False(t, d.click(people()[0]))

	d, err = newDispatcher(types.Options[person]{QuickActions: []types.QuickAction[person]{{ID: "view"}}})
	require.NoError(t, err)
	assert.True(t, d.hasRowAffordance())
}
