// Package gate classifies request paths and decides, before any handler
// runs, whether the request may proceed or must be sent elsewhere.
package gate

import (
	"strings"

	"github.com/CityPulse/CityPulse-Backend/internal/utils"
)

const (
	LoginPath     = "/Login"
	DashboardPath = "/dashboard"
)

var (
	publicPaths    = []string{"/", "/Login", "/Signin", "/NGO/Signin", "/api/auth"}
	protectedPages = []string{"/dashboard", "/food-donation", "/NGO", "/Report-issue", "/admin"}
	protectedAPI   = []string{"/api/chat", "/api/food-donations", "/api/users", "/api/orgs"}
	adminOnly      = []string{"/admin", "/api/admin"}
)

// Decision is the outcome of Decide. A zero Decision allows the request.
type Decision struct {
	Redirect string
}

func (d Decision) Allowed() bool { return d.Redirect == "" }

func allow() Decision                 { return Decision{} }
func redirectTo(path string) Decision { return Decision{Redirect: path} }

// Decide applies the route rules in order: public paths always pass, then
// anonymous requests to protected paths go to the login page, then signed-in
// non-admins on admin paths go to the dashboard. Everything else passes.
// A nil session means the request is anonymous.
func Decide(path string, session *utils.Session) Decision {
	if IsPublic(path) {
		return allow()
	}
	if session == nil {
		if matchAny(path, protectedPages) || matchAny(path, protectedAPI) {
			return redirectTo(LoginPath)
		}
		return allow()
	}
	if matchAny(path, adminOnly) && !session.IsAdmin() {
		return redirectTo(DashboardPath)
	}
	return allow()
}

// IsPublic reports whether path is on the public list. The root entry only
// matches the root itself.
func IsPublic(path string) bool {
	for _, p := range publicPaths {
		if p == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if hasSegmentPrefix(path, p) {
			return true
		}
	}
	return false
}

func matchAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if hasSegmentPrefix(path, p) {
			return true
		}
	}
	return false
}

// hasSegmentPrefix matches prefix only on a path segment boundary, so
// "/admin" covers "/admin/users" but not "/administrator".
func hasSegmentPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
