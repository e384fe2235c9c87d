package donations

import (
	"errors"
	"net/http"

	"github.com/CityPulse/CityPulse-Backend/internal/apperr"
	"github.com/CityPulse/CityPulse-Backend/internal/auth"
	"github.com/CityPulse/CityPulse-Backend/internal/events"
	"github.com/CityPulse/CityPulse-Backend/internal/orgs"
	"github.com/CityPulse/CityPulse-Backend/internal/respond"
	"github.com/CityPulse/CityPulse-Backend/internal/validate"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Store  Store
	Orgs   orgs.Store
	Events events.Publisher
}

type createDonationRequest struct {
	FoodType      string  `json:"foodType" validate:"required"`
	Weight        float64 `json:"weight" validate:"gt=0"`
	PickupAddress string  `json:"pickupAddress" validate:"required"`
	PhotoURL      string  `json:"photoURL" validate:"required,url"`
	Description   string  `json:"description" validate:"required"`
	DonorUserID   string  `json:"donorUserId" validate:"omitempty,uuid"`
}

type acceptDonationRequest struct {
	AcceptedByOrgID string `json:"acceptedByOrgId" validate:"required,uuid"`
}

// ListDonations returns every donation to admins and only their own to
// everyone else.
func (h *Handler) ListDonations(w http.ResponseWriter, r *http.Request) {
	s, err := auth.RequireSession(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	donor := s.SubjectID
	if s.IsAdmin() {
		donor = ""
	}
	list, err := h.Store.List(r.Context(), donor)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	out := make([]donationResponse, len(list))
	for i, d := range list {
		out[i] = toResponse(d)
	}
	respond.JSON(w, http.StatusOK, out)
}

func (h *Handler) CreateDonation(w http.ResponseWriter, r *http.Request) {
	s, err := auth.RequireSession(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req createDonationRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	donor := req.DonorUserID
	if donor == "" {
		donor = s.SubjectID
	}
	if !auth.CanAccess(s, donor) {
		respond.Error(w, r, apperr.AccessDenied("You can only log donations as yourself."))
		return
	}

	d := FoodDonation{
		FoodType:      req.FoodType,
		Weight:        req.Weight,
		PickupAddress: req.PickupAddress,
		PhotoURL:      req.PhotoURL,
		Description:   req.Description,
		DonorUserID:   donor,
	}
	if err := h.Store.Create(r.Context(), &d); err != nil {
		respond.Error(w, r, err)
		return
	}

	events.Emit(r.Context(), h.Events, events.Event{
		Type:    events.DonationCreated,
		ID:      d.ID,
		Subject: s.SubjectID,
		Data:    map[string]any{"foodType": d.FoodType, "weight": d.Weight},
	})
	respond.JSON(w, http.StatusCreated, toResponse(d))
}

func (h *Handler) GetDonation(w http.ResponseWriter, r *http.Request) {
	s, err := auth.RequireSession(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	d, err := h.Store.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if !auth.CanAccess(s, d.DonorUserID) {
		respond.Error(w, r, apperr.AccessDenied("Access denied"))
		return
	}
	respond.JSON(w, http.StatusOK, toResponse(d))
}

// AcceptDonation assigns a donation to the organization collecting it.
func (h *Handler) AcceptDonation(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r); err != nil {
		respond.Error(w, r, err)
		return
	}

	var req acceptDonationRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if _, err := h.Orgs.FindByID(r.Context(), req.AcceptedByOrgID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			err = apperr.NotFound("Organization not found.")
		}
		respond.Error(w, r, err)
		return
	}

	d, err := h.Store.Accept(r.Context(), chi.URLParam(r, "id"), req.AcceptedByOrgID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toResponse(d))
}
