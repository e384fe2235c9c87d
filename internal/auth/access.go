package auth

import (
	"net/http"

	"github.com/CityPulse/CityPulse-Backend/internal/apperr"
	"github.com/CityPulse/CityPulse-Backend/internal/utils"
)

// CanAccess reports whether the session may read a record owned by ownerID.
func CanAccess(s utils.Session, ownerID string) bool {
	return s.IsAdmin() || (s.SubjectID != "" && s.SubjectID == ownerID)
}

// RequireSession returns the session the gate attached to r.
func RequireSession(r *http.Request) (utils.Session, error) {
	s, ok := utils.SessionFromContext(r.Context())
	if !ok {
		return utils.Session{}, apperr.ErrAuthenticationRequired
	}
	return s, nil
}

// RequireAdmin is RequireSession plus an admin role check.
func RequireAdmin(r *http.Request) (utils.Session, error) {
	s, err := RequireSession(r)
	if err != nil {
		return s, err
	}
	if !s.IsAdmin() {
		return s, apperr.AccessDenied("Admin access required")
	}
	return s, nil
}
