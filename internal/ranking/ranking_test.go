package ranking_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/CityPulse/CityPulse-Backend/internal/ranking"
)

type row struct {
	name   string
	impact int
}

var columns = ranking.Columns[row]{
	"name":        func(r row) ranking.Value { return ranking.Text(r.name) },
	"impactScore": func(r row) ranking.Value { return ranking.Int(r.impact) },
}

func names(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.name
	}
	return out
}

func TestSortRows_ImpactDescending(t *testing.T) {
	rows := []row{{"A", 70}, {"B", 95}, {"C", 80}}

	got, err := columns.Sort(rows, "impactScore", ranking.Desc)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"B", "C", "A"}; !slices.Equal(names(got), want) {
		t.Errorf("got %v, want %v", names(got), want)
	}
	if want := []string{"A", "B", "C"}; !slices.Equal(names(rows), want) {
		t.Errorf("input was modified: %v", names(rows))
	}
}

func TestSortRows_StableOnTies(t *testing.T) {
	rows := []row{{"first", 50}, {"second", 90}, {"third", 50}, {"fourth", 50}}

	asc, _ := columns.Sort(rows, "impactScore", ranking.Asc)
	if want := []string{"first", "third", "fourth", "second"}; !slices.Equal(names(asc), want) {
		t.Errorf("asc: got %v, want %v", names(asc), want)
	}

	desc, _ := columns.Sort(rows, "impactScore", ranking.Desc)
	if want := []string{"second", "first", "third", "fourth"}; !slices.Equal(names(desc), want) {
		t.Errorf("desc: got %v, want %v", names(desc), want)
	}
}

func TestSortRows_TextIgnoresCase(t *testing.T) {
	rows := []row{{"banyan", 0}, {"Acacia", 0}, {"cedar", 0}, {"ACACIA", 0}}

	got, _ := columns.Sort(rows, "name", ranking.Asc)
	if want := []string{"Acacia", "ACACIA", "banyan", "cedar"}; !slices.Equal(names(got), want) {
		t.Errorf("got %v, want %v", names(got), want)
	}
}

func TestSort_UnknownField(t *testing.T) {
	_, err := columns.Sort(nil, "secret", ranking.Asc)
	if !errors.Is(err, ranking.ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestSortState_Click(t *testing.T) {
	s := ranking.SortState{Field: "rank", Direction: ranking.Asc}

	s = s.Click("rank")
	if s != (ranking.SortState{Field: "rank", Direction: ranking.Desc}) {
		t.Errorf("same field should flip to desc, got %+v", s)
	}
	s = s.Click("rank")
	if s.Direction != ranking.Asc {
		t.Errorf("same field should flip back to asc, got %+v", s)
	}

	s = ranking.SortState{Field: "rank", Direction: ranking.Desc}.Click("name")
	if s != (ranking.SortState{Field: "name", Direction: ranking.Asc}) {
		t.Errorf("other field should reset to asc, got %+v", s)
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]ranking.Direction{"": ranking.Asc, "ASC": ranking.Asc, "desc": ranking.Desc} {
		got, ok := ranking.ParseDirection(in)
		if !ok || got != want {
			t.Errorf("ParseDirection(%q) = %q %v", in, got, ok)
		}
	}
	if _, ok := ranking.ParseDirection("sideways"); ok {
		t.Error("expected invalid direction to be rejected")
	}
}
