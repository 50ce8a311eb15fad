package engine

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// valueKind groups values by comparison policy.
type valueKind int

const (
	kindBlank valueKind = iota
	kindInt
	kindUint
	kindFloat
	kindString
	kindTime
	kindOther
)

// normalize turns nil pointers, maps, slices and interfaces into nil and
// dereferences non-nil pointers so accessors may return *T freely.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil
		}
	}
	return rv.Interface()
}

// kindOf classifies a normalized value.
func kindOf(v any) valueKind {
	if v == nil {
		return kindBlank
	}
	switch v.(type) {
	case time.Time:
		return kindTime
	case json.Number:
		return kindFloat
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return kindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return kindUint
	case reflect.Float32, reflect.Float64:
		return kindFloat
	case reflect.String:
		return kindString
	default:
		return kindOther
	}
}

func floatOf(v any) float64 {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	default:
		return rv.Float()
	}
}

func isNumeric(k valueKind) bool {
	return k == kindInt || k == kindUint || k == kindFloat
}

// stringOf returns the text form used for search and for the string
// comparison fallback. Blank values render as the empty string.
func stringOf(v any) string {
	v = normalize(v)
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		if reflect.ValueOf(v).Kind() == reflect.String {
			return reflect.ValueOf(v).String()
		}
		return fmt.Sprint(v)
	}
}

// comparer orders two non-blank values. Numbers compare numerically, times
// chronologically, strings by case-folded code point. Values of different
// kinds fall back to their case-folded string forms.
type comparer struct {
	fold cases.Caser
}

func newComparer() *comparer {
	return &comparer{fold: cases.Fold()}
}

func (c *comparer) compare(a, b any) int {
	ka, kb := kindOf(a), kindOf(b)
	switch {
	case ka == kindInt && kb == kindInt:
		return cmp.Compare(reflect.ValueOf(a).Int(), reflect.ValueOf(b).Int())
	case ka == kindUint && kb == kindUint:
		return cmp.Compare(reflect.ValueOf(a).Uint(), reflect.ValueOf(b).Uint())
	case isNumeric(ka) && isNumeric(kb):
		return cmp.Compare(floatOf(a), floatOf(b))
	case ka == kindTime && kb == kindTime:
		return a.(time.Time).Compare(b.(time.Time))
	default:
		return c.compareStrings(stringOf(a), stringOf(b))
	}
}

func (c *comparer) compareStrings(a, b string) int {
	return strings.Compare(c.fold.String(a), c.fold.String(b))
}
