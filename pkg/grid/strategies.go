package grid

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/mesh-intelligence/gridview/pkg/types"
)

// FuzzyMatcher is a RowMatcher that tolerates typos. A row matches when its
// text contains the query, or when every query word is within MaxDistance
// edits of some word of the text. MaxDistance 0 keeps plain substring
// matching.
type FuzzyMatcher[T any] struct {
	Text        func(row T) string
	MaxDistance int
}

// Match implements types.RowMatcher.
func (m FuzzyMatcher[T]) Match(row T, query string) bool {
	text := strings.ToLower(m.Text(row))
	q := strings.ToLower(strings.TrimSpace(query))
	if strings.Contains(text, q) {
		return true
	}
	if m.MaxDistance <= 0 {
		return false
	}

	qwords := splitWords(q)
	if len(qwords) == 0 {
		return false
	}
	words := splitWords(text)
	for _, qw := range qwords {
		if !m.near(qw, words) {
			return false
		}
	}
	return true
}

func (m FuzzyMatcher[T]) near(word string, words []string) bool {
	for _, w := range words {
		if strings.HasPrefix(w, word) {
			return true
		}
		if levenshtein.ComputeDistance(w, word) <= m.MaxDistance {
			return true
		}
	}
	return false
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// FieldFilter is a FilterPredicate that keeps rows whose field named by each
// active filter key equals the selected value, ignoring case.
type FieldFilter[T any] struct {
	Field func(row T, key string) (any, bool)
}

// Keep implements types.FilterPredicate. A key the row does not have
// excludes the row.
func (f FieldFilter[T]) Keep(row T, active types.FilterValues) bool {
	for key, want := range active {
		v, ok := f.Field(row, key)
		if !ok || v == nil {
			return false
		}
		if !strings.EqualFold(fmt.Sprint(v), want) {
			return false
		}
	}
	return true
}

// Rule assigns Class to rows for which When returns true.
type Rule[T any] struct {
	When  func(row T) bool
	Class types.Highlight
}

// RuleClassifier is a Classifier that returns the class of the first
// matching rule.
type RuleClassifier[T any] []Rule[T]

// Classify implements types.Classifier.
func (rc RuleClassifier[T]) Classify(row T) types.Highlight {
	for _, r := range rc {
		if r.When != nil && r.When(row) {
			return r.Class
		}
	}
	return types.HighlightNone
}
