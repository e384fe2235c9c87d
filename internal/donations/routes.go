package donations

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListDonations)
	r.Post("/", h.CreateDonation)
	r.Get("/{id}", h.GetDonation)
	r.Patch("/{id}/accept", h.AcceptDonation)

	return r
}
