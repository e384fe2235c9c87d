package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/CityPulse/CityPulse-Backend/internal/respond"
	"github.com/CityPulse/CityPulse-Backend/internal/utils"
)

type Handler struct {
	Users    UserStore
	Codec    *Codec
	Verifier AssertionVerifier
}

type signInRequest struct {
	Assertion string `json:"assertion"`
}

type signInResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (h *Handler) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	id, err := h.Verifier.Verify(req.Assertion)
	if err != nil {
		respond.Message(w, http.StatusUnauthorized, "Invalid sign-in assertion")
		return
	}

	u, err := SignIn(r.Context(), h.Users, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if _, err := h.Codec.Issue(w, r, u.ID); err != nil {
		respond.Error(w, r, err)
		return
	}

	log.Printf("[auth] signed in %s (%s)", u.Email, u.Role)
	respond.JSON(w, http.StatusOK, signInResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role})
}

func (h *Handler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := utils.SessionFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Not signed in")
		return
	}
	respond.JSON(w, http.StatusOK, s)
}

func (h *Handler) SignOutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Codec.Clear(w, r); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenHandler exchanges the current session for a bearer token with the
// same expiry.
func (h *Handler) TokenHandler(w http.ResponseWriter, r *http.Request) {
	s, err := RequireSession(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if s.ExpiresAt.IsZero() {
		respond.Error(w, r, errors.New("session without expiry"))
		return
	}

	token, err := h.Codec.MintToken(s.SubjectID, s.ExpiresAt)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: s.ExpiresAt})
}
