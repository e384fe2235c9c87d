package middleware

import (
	"net/http"
	"strings"

	"github.com/CityPulse/CityPulse-Backend/internal/gate"
	"github.com/CityPulse/CityPulse-Backend/internal/respond"
	"github.com/CityPulse/CityPulse-Backend/internal/utils"
)

// SessionResolver turns a request into the caller's session, if any.
type SessionResolver interface {
	Resolve(r *http.Request) (utils.Session, bool)
}

// GateMiddleware resolves the session once, stores it in the request context
// and applies the route decision before any handler runs. API paths get a
// JSON error; pages get a 303 to the target.
func GateMiddleware(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var current *utils.Session
			if s, ok := resolver.Resolve(r); ok {
				current = &s
				r = r.WithContext(utils.WithSession(r.Context(), s))
			}

			d := gate.Decide(r.URL.Path, current)
			if d.Allowed() {
				next.ServeHTTP(w, r)
				return
			}

			if isAPI(r.URL.Path) {
				status, msg := http.StatusUnauthorized, "Authentication required"
				if d.Redirect != gate.LoginPath {
					status, msg = http.StatusForbidden, "Admin access required"
				}
				respond.JSON(w, status, map[string]string{"error": msg, "redirect": d.Redirect})
				return
			}
			http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
		})
	}
}

func isAPI(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

// CORSMiddleware echoes the origin back only when it is on the allow-list.
func CORSMiddleware(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods",
					"GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers",
					"Content-Type, Authorization")
			}

			w.Header().Set("Access-Control-Expose-Headers", "Retry-After")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
