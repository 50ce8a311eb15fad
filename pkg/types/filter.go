package types

// FilterAll is the filter value that disables a structured filter.
const FilterAll = "all"

// FilterValues holds the structured filter selections keyed by filter key.
// An empty value or FilterAll means the filter is inactive.
type FilterValues map[string]string

// Active returns the filters that constrain rows.
func (f FilterValues) Active() FilterValues {
	out := make(FilterValues, len(f))
	for k, v := range f {
		if v != "" && v != FilterAll {
			out[k] = v
		}
	}
	return out
}

// ActiveCount returns the number of filters that constrain rows.
func (f FilterValues) ActiveCount() int {
	n := 0
	for _, v := range f {
		if v != "" && v != FilterAll {
			n++
		}
	}
	return n
}

// RowMatcher decides whether a row matches a free-text query. When supplied
// it replaces the default column-haystack search entirely.
type RowMatcher[T any] interface {
	Match(row T, query string) bool
}

// MatcherFunc adapts a function to the RowMatcher interface.
type MatcherFunc[T any] func(row T, query string) bool

// Match calls f(row, query).
func (f MatcherFunc[T]) Match(row T, query string) bool {
	return f(row, query)
}

// FilterPredicate applies structured filter selections to a row. It runs
// before text search and only sees active filters.
type FilterPredicate[T any] interface {
	Keep(row T, active FilterValues) bool
}

// FilterFunc adapts a function to the FilterPredicate interface.
type FilterFunc[T any] func(row T, active FilterValues) bool

// Keep calls f(row, active).
func (f FilterFunc[T]) Keep(row T, active FilterValues) bool {
	return f(row, active)
}
