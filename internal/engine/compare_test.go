package engine

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type level int

func (l level) String() string {
	return [...]string{"low", "high"}[l]
}

type version struct{ major, minor int }

func (v version) String() string {
	return fmt.Sprintf("v%d.%d", v.major, v.minor)
}

func TestComparer_Compare(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"ints", 2, 10, -1},
		{"mixed int widths", int8(3), int64(3), 0},
		{"uints", uint(7), uint(3), 1},
		{"int vs float", 2, 2.5, -1},
		{"json number vs int", json.Number("12"), 9, 1},
		{"strings fold case", "ana", "Ann", -1},
		{"strings equal ignoring case", "BOB", "bob", 0},
		{"string order is not numeric", "10", "9", -1},
		{"times", t0, t0.Add(time.Hour), -1},
		{"numeric stringer compares by value", level(1), level(0), 1},
		{"durations compare numerically", 10 * time.Second, 9 * time.Second, 1},
		{"non-numeric stringer by string form", version{1, 10}, version{1, 9}, -1},
		{"mixed kinds fall back to strings", "abc", 5, 1},
	}

	c := newComparer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.compare(tt.a, tt.b))
		})
	}
}

func TestNormalize(t *testing.T) {
	var nilPtr *int
	var nilSlice []string
	n := 5

	assert.Nil(t, normalize(nil))
	assert.Nil(t, normalize(nilPtr))
	assert.Nil(t, normalize(nilSlice))
	assert.Equal(t, 5, normalize(&n))
	assert.Equal(t, "x", normalize("x"))
}

func TestStringOf(t *testing.T) {
	type code string
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "", stringOf(nil))
	assert.Equal(t, "42", stringOf(42))
	assert.Equal(t, "1.5", stringOf(1.5))
	assert.Equal(t, "true", stringOf(true))
	assert.Equal(t, "abc", stringOf(code("abc")))
	assert.Equal(t, "2024-03-01T12:00:00Z", stringOf(t0))
	assert.Equal(t, "high", stringOf(level(1)))
}

func TestCompareKeys_BlanksLast(t *testing.T) {
	c := newComparer()
	for _, desc := range []bool{false, true} {
		assert.Equal(t, 1, compareKeys(c, nil, 1, desc))
		assert.Equal(t, -1, compareKeys(c, 1, nil, desc))
		assert.Equal(t, 0, compareKeys(c, nil, nil, desc))
	}
	assert.Equal(t, -1, compareKeys(c, 1, 2, false))
	assert.Equal(t, 1, compareKeys(c, 1, 2, true))
}
