package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"
)

const sessionCookieName = "citypulse_session"

var errNoSession = errors.New("no session")

// Codec encodes the session subject and expiry into a signed, encrypted
// cookie for browsers and into HS256 bearer tokens for API clients. All keys
// are derived from one secret.
type Codec struct {
	store  *sessions.CookieStore
	jwtKey []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration, secure bool) (*Codec, error) {
	hashKey, err := deriveKey(secret, "citypulse session hash", 64)
	if err != nil {
		return nil, err
	}
	blockKey, err := deriveKey(secret, "citypulse session block", 32)
	if err != nil {
		return nil, err
	}
	jwtKey, err := deriveKey(secret, "citypulse bearer token", 32)
	if err != nil {
		return nil, err
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(ttl.Seconds()))

	return &Codec{store: store, jwtKey: jwtKey, ttl: ttl, now: time.Now}, nil
}

func deriveKey(secret, info string, size int) ([]byte, error) {
	key := make([]byte, size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return key, nil
}

// Issue writes a fresh session cookie for subject and returns its expiry.
func (c *Codec) Issue(w http.ResponseWriter, r *http.Request, subject string) (time.Time, error) {
	sess, _ := c.store.New(r, sessionCookieName)
	exp := c.now().Add(c.ttl)
	sess.Values["sub"] = subject
	sess.Values["exp"] = exp.Unix()
	if err := sess.Save(r, w); err != nil {
		return time.Time{}, fmt.Errorf("save session: %w", err)
	}
	return time.Unix(exp.Unix(), 0), nil
}

// Clear expires the session cookie.
func (c *Codec) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := c.store.New(r, sessionCookieName)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// FromCookie decodes the session cookie. Tampered, malformed and expired
// cookies are all reported as no session.
func (c *Codec) FromCookie(r *http.Request) (string, time.Time, error) {
	if _, err := r.Cookie(sessionCookieName); err != nil {
		return "", time.Time{}, errNoSession
	}
	sess, err := c.store.Get(r, sessionCookieName)
	if err != nil || sess.IsNew {
		return "", time.Time{}, errNoSession
	}

	sub, _ := sess.Values["sub"].(string)
	unix, _ := sess.Values["exp"].(int64)
	if sub == "" || unix == 0 {
		return "", time.Time{}, errNoSession
	}

	exp := time.Unix(unix, 0)
	if !exp.After(c.now()) {
		return "", time.Time{}, errNoSession
	}
	return sub, exp, nil
}

// MintToken signs a bearer token for subject that expires at exp.
func (c *Codec) MintToken(subject string, exp time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(c.now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// FromBearer decodes an "Authorization: Bearer" token.
func (c *Codec) FromBearer(r *http.Request) (string, time.Time, error) {
	raw, ok := bearerToken(r)
	if !ok {
		return "", time.Time{}, errNoSession
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return c.jwtKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || claims.Subject == "" {
		return "", time.Time{}, errNoSession
	}
	return claims.Subject, claims.ExpiresAt.Time, nil
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
