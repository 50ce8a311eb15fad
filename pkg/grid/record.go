package grid

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/gridview/pkg/types"
)

// Record is a schemaless row, as decoded from a JSON object.
type Record = map[string]any

// RecordColumns returns one sortable column per field, in the given order.
// Headers are the field names in title case with underscores as spaces.
func RecordColumns(fields []string) []types.Column[Record] {
	title := cases.Title(language.Und)
	cols := make([]types.Column[Record], len(fields))
	for i, f := range fields {
		cols[i] = types.Column[Record]{
			ID:       f,
			Header:   title.String(strings.ReplaceAll(f, "_", " ")),
			Accessor: RecordField(f),
			Sortable: true,
		}
	}
	return cols
}

// RecordField returns an accessor for one field. Missing fields are blank.
func RecordField(field string) func(Record) any {
	return func(r Record) any {
		return r[field]
	}
}

// RecordID returns an identify function reading field as a string.
func RecordID(field string) func(Record) string {
	return func(r Record) string {
		v, ok := r[field]
		if !ok || v == nil {
			return ""
		}
		return fmt.Sprint(v)
	}
}

// RecordFilter is a FieldFilter over record fields.
func RecordFilter() FieldFilter[Record] {
	return FieldFilter[Record]{Field: func(r Record, key string) (any, bool) {
		v, ok := r[key]
		return v, ok
	}}
}

// ParseRecordRule parses "field=value:class" into a rule that matches
// records whose field equals value, ignoring case.
func ParseRecordRule(s string) (Rule[Record], error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return Rule[Record]{}, fmt.Errorf("rule %q: missing :class", s)
	}
	cond, class := s[:i], s[i+1:]
	field, value, ok := strings.Cut(cond, "=")
	if !ok || field == "" {
		return Rule[Record]{}, fmt.Errorf("rule %q: expected field=value", s)
	}
	h, err := types.ParseHighlight(class)
	if err != nil {
		return Rule[Record]{}, fmt.Errorf("rule %q: %w", s, err)
	}
	return Rule[Record]{
		When: func(r Record) bool {
			v, ok := r[field]
			return ok && v != nil && strings.EqualFold(fmt.Sprint(v), value)
		},
		Class: h,
	}, nil
}
