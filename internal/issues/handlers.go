package issues

import (
	"errors"
	"log"
	"net/http"

	"github.com/CityPulse/CityPulse-Backend/internal/apperr"
	"github.com/CityPulse/CityPulse-Backend/internal/auth"
	"github.com/CityPulse/CityPulse-Backend/internal/events"
	"github.com/CityPulse/CityPulse-Backend/internal/issuemap"
	"github.com/CityPulse/CityPulse-Backend/internal/orgs"
	"github.com/CityPulse/CityPulse-Backend/internal/ratelimit"
	"github.com/CityPulse/CityPulse-Backend/internal/respond"
	"github.com/CityPulse/CityPulse-Backend/internal/validate"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Store   Store
	Orgs    orgs.Store
	Limiter ratelimit.Limiter
	Events  events.Publisher
}

type createIssueRequest struct {
	Title        string `json:"title" validate:"required,max=255"`
	Description  string `json:"description" validate:"required"`
	PhotoURL     string `json:"photoURL" validate:"required,url"`
	Location     string `json:"location" validate:"required,min=3"`
	UserID       string `json:"userId" validate:"omitempty,uuid"`
	Category     string `json:"category" validate:"required,oneof=waste water health roads electricity environment safety"`
	Status       string `json:"status" validate:"omitempty,oneof=PENDING ACCEPTED RESOLVED"`
	UrgencyLevel string `json:"urgencyLevel" validate:"required,oneof=HIGH MEDIUM LOW"`
}

type updateStatusRequest struct {
	Status       string  `json:"status" validate:"required,oneof=PENDING ACCEPTED RESOLVED"`
	AcceptedByID *string `json:"acceptedById" validate:"omitempty,uuid"`
}

func (h *Handler) ListIssues(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.List(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	out := make([]issueResponse, len(list))
	for i, is := range list {
		out[i] = toResponse(is)
	}
	respond.JSON(w, http.StatusOK, out)
}

// CreateIssue files a report for the signed-in user. Admins may file on
// behalf of another user; everyone else reports as themselves.
func (h *Handler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	s, err := auth.RequireSession(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req createIssueRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	reporter := req.UserID
	if reporter == "" {
		reporter = s.SubjectID
	}
	if !auth.CanAccess(s, reporter) {
		respond.Error(w, r, apperr.AccessDenied("You can only report issues as yourself."))
		return
	}

	d, err := h.Limiter.Allow(r.Context(), s.SubjectID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if !d.Allowed {
		ratelimit.Reject(w, d.RetryAfter)
		return
	}

	status := req.Status
	if status == "" {
		status = issuemap.StatusPending
	}
	is := Issue{
		Title:        req.Title,
		Description:  req.Description,
		PhotoURL:     req.PhotoURL,
		Location:     req.Location,
		Category:     req.Category,
		UrgencyLevel: req.UrgencyLevel,
		Status:       status,
		UserID:       reporter,
	}
	if err := h.Store.Create(r.Context(), &is); err != nil {
		respond.Error(w, r, err)
		return
	}

	events.Emit(r.Context(), h.Events, events.Event{
		Type:    events.IssueReported,
		ID:      is.ID,
		Subject: s.SubjectID,
		Data:    map[string]string{"category": is.Category, "urgencyLevel": is.UrgencyLevel},
	})
	respond.JSON(w, http.StatusCreated, toResponse(is))
}

func (h *Handler) GetIssue(w http.ResponseWriter, r *http.Request) {
	is, err := h.Store.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toResponse(is))
}

func (h *Handler) LikeIssue(w http.ResponseWriter, r *http.Request) {
	s, err := auth.RequireSession(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	n, err := h.Store.Like(r.Context(), chi.URLParam(r, "id"), s.SubjectID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]int{"likeCount": n})
}

// UpdateStatus moves an issue through PENDING, ACCEPTED and RESOLVED.
// Accepting requires the responding organization; moving back to PENDING
// clears it.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	s, err := auth.RequireAdmin(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateStatusRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	current, err := h.Store.FindByID(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	acceptedBy := req.AcceptedByID
	switch req.Status {
	case issuemap.StatusPending:
		acceptedBy = nil
	case issuemap.StatusAccepted, issuemap.StatusResolved:
		if acceptedBy == nil {
			acceptedBy = current.AcceptedByID
		}
		if acceptedBy == nil && req.Status == issuemap.StatusAccepted {
			verr := &apperr.ValidationError{}
			verr.Add("acceptedById", "An organization is required to accept an issue.")
			respond.Error(w, r, verr)
			return
		}
	}

	if acceptedBy != nil {
		if _, err := h.Orgs.FindByID(r.Context(), *acceptedBy); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				err = apperr.NotFound("Organization not found.")
			}
			respond.Error(w, r, err)
			return
		}
	}

	updated, err := h.Store.UpdateStatus(r.Context(), id, req.Status, acceptedBy)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	log.Printf("[issues] %s moved %s from %s to %s", s.Email, id, current.Status, updated.Status)
	events.Emit(r.Context(), h.Events, events.Event{
		Type:    events.IssueStatusChanged,
		ID:      id,
		Subject: s.SubjectID,
		Data:    map[string]string{"from": current.Status, "to": updated.Status},
	})
	respond.JSON(w, http.StatusOK, toResponse(updated))
}
