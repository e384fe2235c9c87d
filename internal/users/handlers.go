// Package users exposes the identity records over /api/users.
package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/CityPulse/CityPulse-Backend/internal/apperr"
	"github.com/CityPulse/CityPulse-Backend/internal/auth"
	"github.com/CityPulse/CityPulse-Backend/internal/respond"
	"github.com/CityPulse/CityPulse-Backend/internal/validate"
	"github.com/go-chi/chi/v5"
)

type Store interface {
	List(ctx context.Context) ([]auth.User, error)
	FindByID(ctx context.Context, id string) (auth.User, error)
	Create(ctx context.Context, u *auth.User) error
}

type Handler struct {
	Store Store
}

type createUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,max=255"`
	City  string `json:"city" validate:"required"`
	State string `json:"state" validate:"required"`
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r); err != nil {
		respond.Error(w, r, err)
		return
	}

	list, err := h.Store.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r); err != nil {
		respond.Error(w, r, err)
		return
	}

	var req createUserRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	u := auth.User{Email: req.Email, Name: req.Name, City: req.City, State: req.State}
	if err := h.Store.Create(r.Context(), &u); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, u)
}

// GetUser returns one identity record. Non-admins may only read their own.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	s, err := auth.RequireSession(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	if !auth.CanAccess(s, id) {
		respond.Error(w, r, apperr.AccessDenied("Access denied"))
		return
	}

	u, err := h.Store.FindByID(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}
