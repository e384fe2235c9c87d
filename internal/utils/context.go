package utils

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Session is the resolved identity for one request. The role is always the
// one currently stored on the user record, not the one at sign-in.
type Session struct {
	SubjectID string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

type contextKey string

const ContextSessionKey contextKey = "session"

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ContextSessionKey, s)
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ContextSessionKey).(Session)
	return s, ok
}

// GetUserIDFromContext returns the session subject, if any.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	s, ok := SessionFromContext(ctx)
	if !ok {
		return "", false
	}
	return s.SubjectID, true
}

func GenerateUUID() string {
	return uuid.NewString()
}
