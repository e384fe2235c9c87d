package issues

import (
	"net/http"

	"github.com/CityPulse/CityPulse-Backend/internal/issuemap"
	"github.com/CityPulse/CityPulse-Backend/internal/respond"
)

type mapResponse struct {
	issuemap.MarkerSet
	Filters  issuemap.Filters `json:"filters"`
	Selected *issuemap.Issue  `json:"selected,omitempty"`

	// SelectedID is the selection the client should keep; empty when the
	// requested marker is not on the map.
	SelectedID string `json:"selectedId,omitempty"`
}

// IssueMap renders the marker set for the current filters. When selected
// names a rendered marker, its detail view is included; otherwise the
// selection is closed.
func (h *Handler) IssueMap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := issuemap.Filters{
		Category:     q.Get("category"),
		UrgencyLevel: q.Get("urgencyLevel"),
		Status:       q.Get("status"),
	}

	list, err := h.Store.List(r.Context(), q.Get("city"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	in := make([]issuemap.Issue, len(list))
	for i, is := range list {
		in[i] = mapIssue(is)
	}

	resp := mapResponse{MarkerSet: issuemap.Render(in, filters), Filters: filters}

	var sel issuemap.Selection
	if id := q.Get("selected"); id != "" {
		sel.Select(id)
	}
	if detail, ok := sel.Resolve(resp.MarkerSet, in); ok {
		resp.Selected = &detail
	} else {
		sel.Close()
	}
	resp.SelectedID, _ = sel.Selected()

	respond.JSON(w, http.StatusOK, resp)
}
