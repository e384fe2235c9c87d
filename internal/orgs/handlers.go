package orgs

import (
	"log"
	"net/http"
	"strings"

	"github.com/CityPulse/CityPulse-Backend/internal/auth"
	"github.com/CityPulse/CityPulse-Backend/internal/respond"
	"github.com/CityPulse/CityPulse-Backend/internal/validate"
)

type Handler struct {
	Store Store
}

type createOrgRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	City        string   `json:"city" validate:"required"`
	State       string   `json:"state" validate:"required"`
	FocusAreas  []string `json:"focusAreas" validate:"omitempty,dive,required"`
}

func (h *Handler) ListOrgs(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireSession(r); err != nil {
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

// CreateOrg registers an NGO. Only admins may do this; a duplicate email
// leaves the existing record untouched.
func (h *Handler) CreateOrg(w http.ResponseWriter, r *http.Request) {
	s, err := auth.RequireAdmin(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req createOrgRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	o := Organization{
		Email:       req.Email,
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		State:       req.State,
		FocusAreas:  req.FocusAreas,
	}
	if err := h.Store.Create(r.Context(), &o); err != nil {
		respond.Error(w, r, err)
		return
	}

	log.Printf("[orgs] %s registered %q", s.Email, o.Name)
	respond.JSON(w, http.StatusCreated, o)
}
