package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/signin", h.SignInHandler)
	r.Get("/session", h.SessionHandler)
	r.Post("/signout", h.SignOutHandler)
	r.Post("/token", h.TokenHandler)

	return r
}
