package types

import (
	"log/slog"
	"time"
)

// Options configures one engine instance. Columns and Identify are required;
// everything else is optional. The strategies are fixed for the lifetime of
// the engine.
type Options[T any] struct {
	// Columns lists the registered columns in display order.
	Columns []Column[T]

	// Identify returns a row's identity. It must be unique and stable across
	// refreshes.
	Identify func(row T) string

	// Rows is the initial collection. SetRows replaces it wholesale.
	Rows []T

	Classifier   Classifier[T]
	Matcher      RowMatcher[T]
	Filter       FilterPredicate[T]
	RowActions   ActionList[T]
	QuickActions []QuickAction[T]
	BulkActions  []BulkAction[T]
	OnRowClick   func(row T)

	// Selectable enables the selection checkbox pseudo-column.
	Selectable bool

	// InitialSort is applied at construction when it names a sortable column.
	InitialSort SortState

	// InitialVisible restricts the visible column set at construction.
	// Nil shows every registered column.
	InitialVisible []string

	// EmptyTitle and EmptyDescription are passed through in the snapshot for
	// the empty state.
	EmptyTitle       string
	EmptyDescription string

	Config Config

	// Logger receives state transition traces. Nil discards them.
	Logger *slog.Logger

	// Clock returns the current time for new-row tag expiry. Nil uses time.Now.
	Clock func() time.Time
}
