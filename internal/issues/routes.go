package issues

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListIssues)
	r.Get("/map", h.IssueMap)
	r.Get("/{id}", h.GetIssue)

	r.Post("/", h.CreateIssue)
	r.Post("/{id}/like", h.LikeIssue)
	r.Patch("/{id}/status", h.UpdateStatus)

	return r
}
