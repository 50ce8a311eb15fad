package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gridview/pkg/types"
)

type person struct {
	ID   string
	Name string
	Age  *int
	Team string
}

func intp(n int) *int { return &n }

// people is the three-row dataset used across the engine tests.
func people() []person {
	return []person{
		{ID: "1", Name: "Bob", Age: intp(40), Team: "ops"},
		{ID: "2", Name: "ana", Age: nil, Team: "dev"},
		{ID: "3", Name: "Ann", Age: intp(25), Team: "dev"},
	}
}

func personColumns() []types.Column[person] {
	return []types.Column[person]{
		{ID: "name", Header: "Name", Sortable: true, Accessor: func(p person) any { return p.Name }},
		{ID: "age", Header: "Age", Sortable: true, Accessor: func(p person) any { return p.Age }},
		{ID: "team", Header: "Team", Accessor: func(p person) any { return p.Team }},
	}
}

func personID(p person) string { return p.ID }

func ids(rows []person) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func names(rows []person) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

// newPeople builds an engine over people() with selection enabled. mod may
// adjust the options first.
func newPeople(t *testing.T, mod func(*types.Options[person])) *Engine[person] {
	t.Helper()
	opts := types.Options[person]{
		Columns:    personColumns(),
		Identify:   personID,
		Rows:       people(),
		Selectable: true,
	}
	if mod != nil {
		mod(&opts)
	}
	e, err := New(opts)
	require.NoError(t, err)
	return e
}
