package engine

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/gridview/pkg/types"
)

// haystackSep joins column values in the search haystack. A single-line
// query cannot contain it, so matches never straddle two columns.
const haystackSep = "\n"

// searcher narrows rows by structured filters, then by the text query.
type searcher[T any] struct {
	reg     *registry[T]
	matcher types.RowMatcher[T]
	filter  types.FilterPredicate[T]
	query   string
	values  types.FilterValues
}

func newSearcher[T any](reg *registry[T], matcher types.RowMatcher[T], filter types.FilterPredicate[T]) *searcher[T] {
	return &searcher[T]{
		reg:     reg,
		matcher: matcher,
		filter:  filter,
		values:  make(types.FilterValues),
	}
}

// setFilter records a structured filter selection. Setting FilterAll or the
// empty string deactivates the key.
func (s *searcher[T]) setFilter(key, value string) {
	if value == "" || value == types.FilterAll {
		delete(s.values, key)
		return
	}
	s.values[key] = value
}

// clear drops the query and every structured filter.
func (s *searcher[T]) clear() {
	s.query = ""
	s.values = make(types.FilterValues)
}

func (s *searcher[T]) filters() types.FilterValues {
	out := make(types.FilterValues, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// apply returns the rows kept by the structured filters and the query.
// When neither constrains anything the input is returned unchanged.
func (s *searcher[T]) apply(rows []T) []T {
	out := rows
	if active := s.values.Active(); s.filter != nil && len(active) > 0 {
		out = keep(out, func(row T) bool {
			return s.filter.Keep(row, active)
		})
	}
	return s.search(out, s.query)
}

// search applies the text query alone.
func (s *searcher[T]) search(rows []T, query string) []T {
	if strings.TrimSpace(query) == "" {
		return rows
	}
	if s.matcher != nil {
		return keep(rows, func(row T) bool {
			return s.matcher.Match(row, query)
		})
	}

	lower := cases.Lower(language.Und)
	needle := lower.String(query)
	cols := s.reg.searchable()
	return keep(rows, func(row T) bool {
		return strings.Contains(haystack(lower, cols, row), needle)
	})
}

// haystack concatenates the lower-cased string form of every searchable
// column value of row.
func haystack[T any](lower cases.Caser, cols []types.Column[T], row T) string {
	var sb strings.Builder
	for i, c := range cols {
		if i > 0 {
			sb.WriteString(haystackSep)
		}
		v, _ := resolve(c, row)
		sb.WriteString(lower.String(stringOf(v)))
	}
	return sb.String()
}

// keep returns a new slice holding the rows for which pred is true.
func keep[T any](rows []T, pred func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if pred(row) {
			out = append(out, row)
		}
	}
	return out
}
