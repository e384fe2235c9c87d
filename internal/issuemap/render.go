// Package issuemap turns issue records into map markers: it parses
// coordinates, applies the user's filters, weights markers by urgency and
// computes the summary cards.
package issuemap

import "time"

// Issue is the subset of an issue record the map needs.
type Issue struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PhotoURL     string    `json:"photoURL"`
	Location     string    `json:"location"`
	Category     string    `json:"category"`
	UrgencyLevel string    `json:"urgencyLevel"`
	Status       string    `json:"status"`
	ReporterName string    `json:"reporterName,omitempty"`
	LikeCount    int       `json:"likeCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Filters narrows the rendered set. An empty field matches any value.
type Filters struct {
	Category     string `json:"category,omitempty"`
	UrgencyLevel string `json:"urgencyLevel,omitempty"`
	Status       string `json:"status,omitempty"`
}

// Match reports whether every set field equals the issue's value exactly.
func (f Filters) Match(is Issue) bool {
	if f.Category != "" && is.Category != f.Category {
		return false
	}
	if f.UrgencyLevel != "" && is.UrgencyLevel != f.UrgencyLevel {
		return false
	}
	if f.Status != "" && is.Status != f.Status {
		return false
	}
	return true
}

type Marker struct {
	ID           string `json:"id"`
	Position     Point  `json:"position"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	UrgencyLevel string `json:"urgencyLevel"`
	Status       string `json:"status"`
	Weight       Weight `json:"weight"`
}

type Stats struct {
	Total    int `json:"total"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Resolved int `json:"resolved"`
}

// MarkerSet is the rendered map. Excluded counts filtered issues whose
// location could not be placed.
type MarkerSet struct {
	Markers  []Marker `json:"markers"`
	Stats    Stats    `json:"stats"`
	Excluded int      `json:"excluded"`
}

// Filter returns the issues that pass f, keeping input order.
func Filter(issues []Issue, f Filters) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, is := range issues {
		if f.Match(is) {
			out = append(out, is)
		}
	}
	return out
}

// ComputeStats counts urgency levels and resolutions over issues. Callers
// pass the filtered set.
func ComputeStats(issues []Issue) Stats {
	s := Stats{Total: len(issues)}
	for _, is := range issues {
		switch is.UrgencyLevel {
		case UrgencyHigh:
			s.High++
		case UrgencyMedium:
			s.Medium++
		case UrgencyLow:
			s.Low++
		}
		if is.Status == StatusResolved {
			s.Resolved++
		}
	}
	return s
}

// Render filters issues, then builds one marker per filtered issue with a
// valid location. Stats cover the whole filtered set, placed or not.
func Render(issues []Issue, f Filters) MarkerSet {
	filtered := Filter(issues, f)

	set := MarkerSet{
		Markers: make([]Marker, 0, len(filtered)),
		Stats:   ComputeStats(filtered),
	}
	for _, is := range filtered {
		pos, ok := ParseLocation(is.Location)
		if !ok {
			set.Excluded++
			continue
		}
		set.Markers = append(set.Markers, Marker{
			ID:           is.ID,
			Position:     pos,
			Title:        is.Title,
			Category:     is.Category,
			UrgencyLevel: is.UrgencyLevel,
			Status:       is.Status,
			Weight:       WeightFor(is.UrgencyLevel),
		})
	}
	return set
}

// Contains reports whether id is one of the rendered markers.
func (s MarkerSet) Contains(id string) bool {
	for _, m := range s.Markers {
		if m.ID == id {
			return true
		}
	}
	return false
}
