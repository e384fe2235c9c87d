package orgs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListOrgs)
	r.Post("/", h.CreateOrg)

	return r
}
