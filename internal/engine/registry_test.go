package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gridview/pkg/types"
)

func TestNewRegistry(t *testing.T) {
	tests := []struct {
		name    string
		columns []types.Column[person]
		wantErr error
	}{
		{
			name:    "valid columns",
			columns: personColumns(),
		},
		{
			name:    "empty column list",
			columns: nil,
		},
		{
			name:    "empty id rejected",
			columns: []types.Column[person]{{Header: "Name"}},
			wantErr: types.ErrInvalidColumn,
		},
		{
			name:    "duplicate id rejected",
			columns: []types.Column[person]{{ID: "a"}, {ID: "a"}},
			wantErr: types.ErrDuplicateColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newRegistry(tt.columns)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRegistry_ValueOf(t *testing.T) {
	cols := []types.Column[person]{
		{ID: "name", Accessor: func(p person) any { return p.Name }},
		{ID: "age", Accessor: func(p person) any { return p.Age }},
		{ID: "badge", Cell: func(p person, _ any) any { return "@" + p.Name }},
		{ID: "avatar"},
	}
	reg, err := newRegistry(cols)
	require.NoError(t, err)

	rows := people()

	v, ok := reg.valueOf(rows[0], "name")
	assert.True(t, ok)
	assert.Equal(t, "Bob", v)

	v, ok = reg.valueOf(rows[0], "age")
	assert.True(t, ok)
	assert.Equal(t, 40, v, "pointer accessor values are dereferenced")

	v, ok = reg.valueOf(rows[1], "age")
	assert.True(t, ok)
	assert.Nil(t, v, "typed nil pointer is blank")

	v, ok = reg.valueOf(rows[0], "badge")
	assert.True(t, ok)
	assert.Equal(t, "@Bob", v, "cell presentation stands in for the value")

	_, ok = reg.valueOf(rows[0], "avatar")
	assert.False(t, ok, "display-only column has no value")

	_, ok = reg.valueOf(rows[0], "missing")
	assert.False(t, ok)
}

func TestRegistry_SortableExcludesDisplayOnly(t *testing.T) {
	reg, err := newRegistry([]types.Column[person]{
		{ID: "name", Sortable: true, Accessor: func(p person) any { return p.Name }},
		{ID: "avatar", Sortable: true},
		{ID: "team", Accessor: func(p person) any { return p.Team }},
	})
	require.NoError(t, err)

	assert.True(t, reg.sortable("name"))
	assert.False(t, reg.sortable("avatar"))
	assert.False(t, reg.sortable("team"))
	assert.False(t, reg.sortable("missing"))

	var searchable []string
	for _, c := range reg.searchable() {
		searchable = append(searchable, c.ID)
	}
	assert.Equal(t, []string{"name", "team"}, searchable)
}

func TestDisplay(t *testing.T) {
	plain := types.Column[person]{ID: "age", Accessor: func(p person) any { return p.Age }}
	fancy := types.Column[person]{
		ID:       "age",
		Accessor: func(p person) any { return p.Age },
		Cell: func(_ person, v any) any {
			if v == nil {
				return "n/a"
			}
			return v
		},
	}

	rows := people()
	assert.Equal(t, "40", display(plain, rows[0], rawValue(plain, rows[0])))
	assert.Equal(t, "", display(plain, rows[1], rawValue(plain, rows[1])))
	assert.Equal(t, "n/a", display(fancy, rows[1], rawValue(fancy, rows[1])))
}
