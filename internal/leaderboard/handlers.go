package leaderboard

import (
	"errors"
	"net/http"
	"strings"

	"github.com/CityPulse/CityPulse-Backend/internal/apperr"
	"github.com/CityPulse/CityPulse-Backend/internal/ranking"
	"github.com/CityPulse/CityPulse-Backend/internal/respond"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Source Source
}

type response[T any] struct {
	Sort ranking.SortState `json:"sort"`
	Rows []T               `json:"rows"`
}

// sortState reads ?sort and ?dir, defaulting to rank ascending. A ?click
// names a header clicked on the table in that state and yields the next one.
func sortState(r *http.Request) (ranking.SortState, error) {
	field := r.URL.Query().Get("sort")
	if field == "" {
		field = "rank"
	}
	dir, ok := ranking.ParseDirection(r.URL.Query().Get("dir"))
	if !ok {
		verr := &apperr.ValidationError{}
		verr.Add("dir", "Direction must be asc or desc.")
		return ranking.SortState{}, verr
	}
	state := ranking.SortState{Field: field, Direction: dir}
	if click := r.URL.Query().Get("click"); click != "" {
		state = state.Click(click)
	}
	return state, nil
}

func unknownField[T any](cols ranking.Columns[T]) error {
	verr := &apperr.ValidationError{}
	verr.Add("sort", "Sort must be one of: "+strings.Join(cols.Names(), ", ")+".")
	return verr
}

func serve[T any](w http.ResponseWriter, r *http.Request, rows []T, cols ranking.Columns[T]) {
	state, err := sortState(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	sorted, err := cols.Sort(rows, state.Field, state.Direction)
	if errors.Is(err, ranking.ErrUnknownField) {
		respond.Error(w, r, unknownField(cols))
		return
	}
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, response[T]{Sort: state, Rows: sorted})
}

func (h *Handler) NGOs(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Source.NGOStats(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	serve(w, r, NGORows(stats), NGOColumns)
}

func (h *Handler) Citizens(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Source.CitizenStats(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	serve(w, r, CitizenRows(stats), CitizenColumns)
}

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/ngos", h.NGOs)
	r.Get("/citizens", h.Citizens)

	return r
}
