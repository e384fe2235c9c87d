package auth

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidAssertion = errors.New("invalid sign-in assertion")

// Identity is what the identity provider vouches for after a successful
// external sign-in.
type Identity struct {
	Email string
	Name  string
}

type assertionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// AssertionVerifier checks HS256 assertions posted by the identity provider
// integration.
type AssertionVerifier struct {
	key []byte
}

func NewAssertionVerifier(secret string) AssertionVerifier {
	return AssertionVerifier{key: []byte(secret)}
}

func (v AssertionVerifier) Verify(raw string) (Identity, error) {
	claims := &assertionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, ErrInvalidAssertion
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return Identity{}, ErrInvalidAssertion
	}

	name := strings.TrimSpace(claims.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	return Identity{Email: email, Name: name}, nil
}
