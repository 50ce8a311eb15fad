package types

// Variant is a styling hint for an action affordance.
type Variant string

// Action variants. Renderers map these to colors; the engine only passes
// them through.
const (
	VariantDefault     Variant = "default"
	VariantPrimary     Variant = "primary"
	VariantSuccess     Variant = "success"
	VariantWarning     Variant = "warning"
	VariantDanger      Variant = "danger"
	VariantDestructive Variant = "destructive"
)

// RowAction is one entry of a per-row action menu. An entry with Divider set
// renders as a separator and is never dispatched. Hidden, when set, removes
// the entry from the menu of rows for which it returns true.
type RowAction[T any] struct {
	ID      string
	Label   string
	Icon    string
	Variant Variant
	Hidden  func(row T) bool
	OnClick func(row T)
	Divider bool
}

// HiddenFor reports whether the action is omitted for row. Dividers are
// never hidden.
func (a RowAction[T]) HiddenFor(row T) bool {
	if a.Divider {
		return false
	}
	return a.Hidden != nil && a.Hidden(row)
}

// QuickAction is an always-visible per-row button.
type QuickAction[T any] struct {
	ID      string
	Label   string
	Icon    string
	Variant Variant
	OnClick func(row T)
}

// BulkAction operates on the full data of every selected row.
type BulkAction[T any] struct {
	ID      string
	Label   string
	Icon    string
	Variant Variant
	OnClick func(rows []T)
}

// ActionList supplies the ordered per-row action menu.
type ActionList[T any] interface {
	RowActions() []RowAction[T]
}

// Actions is a static ActionList.
type Actions[T any] []RowAction[T]

// RowActions returns the list itself.
func (a Actions[T]) RowActions() []RowAction[T] {
	return a
}

// ActionRef is the render-facing description of an enabled action.
type ActionRef struct {
	ID      string  `json:"id"`
	Label   string  `json:"label,omitempty"`
	Icon    string  `json:"icon,omitempty"`
	Variant Variant `json:"variant,omitempty"`
	Divider bool    `json:"divider,omitempty"`
}
