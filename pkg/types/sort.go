package types

import "fmt"

// Direction is the order applied to the active sort column.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState is the active sort column and its direction. An empty ColumnID
// means insertion order; Direction is then ignored.
type SortState struct {
	ColumnID  string    `json:"column_id"`
	Direction Direction `json:"direction"`
}

// Active reports whether a sort column is set.
func (s SortState) Active() bool {
	return s.ColumnID != ""
}

// String renders the state as "column asc", "column desc" or "none".
func (s SortState) String() string {
	if !s.Active() {
		return "none"
	}
	return fmt.Sprintf("%s %s", s.ColumnID, s.Direction)
}

// ParseDirection maps "asc"/"desc" to a Direction.
// Returns ErrInvalidDirection for anything else.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Asc, Desc:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}
