package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/CityPulse/CityPulse-Backend/internal/apperr"
	"github.com/CityPulse/CityPulse-Backend/internal/utils"
)

// Resolver reads the bearer token or session cookie and re-reads the user
// record so the role always reflects what is stored now.
type Resolver struct {
	Users UserStore
	Codec *Codec
}

func NewResolver(users UserStore, codec *Codec) *Resolver {
	return &Resolver{Users: users, Codec: codec}
}

func (res *Resolver) Resolve(r *http.Request) (utils.Session, bool) {
	var (
		subject string
		exp     time.Time
		err     error
	)
	if r.Header.Get("Authorization") != "" {
		subject, exp, err = res.Codec.FromBearer(r)
	} else {
		subject, exp, err = res.Codec.FromCookie(r)
	}
	if err != nil {
		return utils.Session{}, false
	}

	u, err := res.Users.FindByID(r.Context(), subject)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			log.Printf("[auth] resolve session %s: %v", subject, err)
		}
		return utils.Session{}, false
	}

	return utils.Session{
		SubjectID: u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		ExpiresAt: exp,
	}, true
}

// SignIn binds an external identity to a user record, creating one with the
// default role on first sign-in. Existing users keep their stored role.
func SignIn(ctx context.Context, users UserStore, id Identity) (User, error) {
	u, err := users.FindByEmail(ctx, id.Email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return User{}, fmt.Errorf("sign in %s: %w", id.Email, err)
	}

	u = User{
		Email: id.Email,
		Name:  id.Name,
		City:  "Unknown",
		State: "Unknown",
		Role:  utils.RoleUser,
	}
	if err := users.Create(ctx, &u); err != nil {
		// Lost a race with a concurrent first sign-in.
		if errors.Is(err, apperr.ErrConflict) {
			return users.FindByEmail(ctx, id.Email)
		}
		return User{}, fmt.Errorf("create user on sign in: %w", err)
	}
	return u, nil
}
