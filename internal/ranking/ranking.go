// Package ranking sorts leaderboard rows by a chosen column.
package ranking

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

var ErrUnknownField = errors.New("unknown sort field")

// ParseDirection accepts "asc" or "desc" in any case; empty means Asc.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Asc, true
	case "desc":
		return Desc, true
	}
	return "", false
}

// Value is one cell used as a sort key: either text or a number.
type Value struct {
	text  string
	num   float64
	isNum bool
}

func Text(s string) Value      { return Value{text: s} }
func Number(n float64) Value   { return Value{num: n, isNum: true} }
func Int(n int) Value          { return Number(float64(n)) }
func (v Value) IsNumber() bool { return v.isNum }

// compare is a three-way comparison. Numbers order before text when a column
// mixes both.
func compare(a, b Value) int {
	switch {
	case a.isNum && b.isNum:
		return cmp.Compare(a.num, b.num)
	case a.isNum:
		return -1
	case b.isNum:
		return 1
	default:
		return strings.Compare(a.text, b.text)
	}
}

// SortRows returns a sorted copy of rows. Text compares after Unicode case
// folding. Rows with equal keys keep their input order in both directions.
func SortRows[T any](rows []T, key func(T) Value, dir Direction) []T {
	fold := cases.Fold()

	type keyed struct {
		row T
		key Value
	}
	ks := make([]keyed, len(rows))
	for i, row := range rows {
		v := key(row)
		if !v.isNum {
			v.text = fold.String(v.text)
		}
		ks[i] = keyed{row: row, key: v}
	}

	slices.SortStableFunc(ks, func(a, b keyed) int {
		c := compare(a.key, b.key)
		if dir == Desc {
			return -c
		}
		return c
	})

	out := make([]T, len(ks))
	for i, k := range ks {
		out[i] = k.row
	}
	return out
}

// Columns names the sortable fields of a row type.
type Columns[T any] map[string]func(T) Value

// Sort sorts rows by the named column.
func (c Columns[T]) Sort(rows []T, field string, dir Direction) ([]T, error) {
	key, ok := c[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return SortRows(rows, key, dir), nil
}

// Names returns the column names in sorted order.
func (c Columns[T]) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SortState is the active column and direction of a table.
type SortState struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Click returns the state after a header click: the active column flips
// direction, any other column becomes active in ascending order.
func (s SortState) Click(field string) SortState {
	if field == s.Field {
		if s.Direction == Asc {
			return SortState{Field: field, Direction: Desc}
		}
		return SortState{Field: field, Direction: Asc}
	}
	return SortState{Field: field, Direction: Asc}
}
