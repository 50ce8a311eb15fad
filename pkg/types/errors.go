package types

import "errors"

// Construction errors. The engine returns these only from New; operations on
// a constructed engine never fail.
var (
	ErrNoIdentify      = errors.New("identify function is required")
	ErrInvalidColumn   = errors.New("column ID must not be empty")
	ErrDuplicateColumn = errors.New("duplicate column ID")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrDuplicateAction = errors.New("duplicate action ID")
)

// Value parsing errors.
var (
	ErrInvalidDirection = errors.New("invalid sort direction")
	ErrInvalidViewMode  = errors.New("invalid view mode")
	ErrInvalidDensity   = errors.New("invalid density")
	ErrInvalidHighlight = errors.New("invalid highlight")
	ErrInvalidTTL       = errors.New("new-row tag TTL must not be negative")
)
