package gate_test

import (
	"testing"

	"github.com/CityPulse/CityPulse-Backend/internal/gate"
	"github.com/CityPulse/CityPulse-Backend/internal/utils"
)

func session(role string) *utils.Session {
	return &utils.Session{SubjectID: "u-1", Email: "a@example.org", Role: role}
}

func TestDecide(t *testing.T) {
	cases := []struct {
		name    string
		path    string
		session *utils.Session
		want    string
	}{
		{"root is public", "/", nil, ""},
		{"login page is public", "/Login", nil, ""},
		{"ngo signin is public despite /NGO being protected", "/NGO/Signin", nil, ""},
		{"auth api is public", "/api/auth/session", nil, ""},
		{"anonymous dashboard", "/dashboard", nil, gate.LoginPath},
		{"anonymous ngo page", "/NGO", nil, gate.LoginPath},
		{"anonymous report page", "/Report-issue", nil, gate.LoginPath},
		{"anonymous chat", "/api/chat", nil, gate.LoginPath},
		{"anonymous nested donation", "/api/food-donations/abc", nil, gate.LoginPath},
		{"anonymous admin goes to login not dashboard", "/admin", nil, gate.LoginPath},
		{"anonymous admin subpage", "/admin/users", nil, gate.LoginPath},
		{"anonymous unlisted path", "/about", nil, ""},
		{"anonymous issues api", "/api/issues", nil, ""},
		{"anonymous admin api falls through to handler", "/api/admin/stats", nil, ""},
		{"user on dashboard", "/dashboard", session("user"), ""},
		{"user on admin page", "/admin", session("user"), gate.DashboardPath},
		{"user on admin api", "/api/admin/stats", session("user"), gate.DashboardPath},
		{"admin on admin page", "/admin", session("admin"), ""},
		{"admin on admin api", "/api/admin/stats", session("admin"), ""},
		{"prefix needs a segment boundary", "/administrator", session("user"), ""},
		{"protected prefix needs a segment boundary", "/dashboardx", nil, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := gate.Decide(tc.path, tc.session)
			if got.Redirect != tc.want {
				t.Errorf("Decide(%q) redirect = %q, want %q", tc.path, got.Redirect, tc.want)
			}
			if got.Allowed() != (tc.want == "") {
				t.Errorf("Decide(%q) Allowed() = %v", tc.path, got.Allowed())
			}
		})
	}
}

func TestIsPublic_RootDoesNotCoverEverything(t *testing.T) {
	if gate.IsPublic("/dashboard") {
		t.Error("expected /dashboard to not be public")
	}
	if !gate.IsPublic("/") {
		t.Error("expected / to be public")
	}
}
