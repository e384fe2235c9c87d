package issuemap

// Selection tracks the one open detail view on the map. The zero value has
// nothing selected.
type Selection struct {
	id string
}

// Select opens the detail view for id, replacing any previous one.
func (s *Selection) Select(id string) { s.id = id }

// Close clears the selection.
func (s *Selection) Close() { s.id = "" }

// Selected returns the open marker id, if any.
func (s Selection) Selected() (string, bool) {
	return s.id, s.id != ""
}

// Resolve returns the selected issue when it is still among the rendered
// markers. A selection that the current filters hid yields no detail view.
func (s Selection) Resolve(set MarkerSet, issues []Issue) (Issue, bool) {
	id, ok := s.Selected()
	if !ok || !set.Contains(id) {
		return Issue{}, false
	}
	for _, is := range issues {
		if is.ID == id {
			return is, true
		}
	}
	return Issue{}, false
}
