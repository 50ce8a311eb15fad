package types

import "fmt"

// Highlight is an advisory styling tag attached to a row. It never affects
// membership, order or selection.
type Highlight string

// Highlight classifications. HighlightNone is the zero value.
const (
	HighlightNone    Highlight = ""
	HighlightWarning Highlight = "warning"
	HighlightDanger  Highlight = "danger"
	HighlightSuccess Highlight = "success"
	HighlightInfo    Highlight = "info"
	HighlightNew     Highlight = "new"
)

// validHighlights is the set of recognized highlight values.
var validHighlights = map[Highlight]bool{
	HighlightNone:    true,
	HighlightWarning: true,
	HighlightDanger:  true,
	HighlightSuccess: true,
	HighlightInfo:    true,
	HighlightNew:     true,
}

// String returns the classification name; HighlightNone renders as "none".
func (h Highlight) String() string {
	if h == HighlightNone {
		return "none"
	}
	return string(h)
}

// ParseHighlight maps a classification name to a Highlight. "none" and the
// empty string both map to HighlightNone.
// Returns ErrInvalidHighlight for unknown names.
func ParseHighlight(s string) (Highlight, error) {
	if s == "none" {
		return HighlightNone, nil
	}
	h := Highlight(s)
	if !validHighlights[h] {
		return HighlightNone, fmt.Errorf("%w: %q", ErrInvalidHighlight, s)
	}
	return h, nil
}

// Classifier assigns a highlight to a row. Implementations must be pure.
type Classifier[T any] interface {
	Classify(row T) Highlight
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc[T any] func(row T) Highlight

// Classify calls f(row).
func (f ClassifierFunc[T]) Classify(row T) Highlight {
	return f(row)
}
