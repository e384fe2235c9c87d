package leaderboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CityPulse/CityPulse-Backend/internal/leaderboard"
	"github.com/go-chi/chi/v5"
)

type fixedSource struct {
	ngos     []leaderboard.NGOStat
	citizens []leaderboard.CitizenStat
}

func (f fixedSource) NGOStats(context.Context) ([]leaderboard.NGOStat, error) { return f.ngos, nil }
func (f fixedSource) CitizenStats(context.Context) ([]leaderboard.CitizenStat, error) {
	return f.citizens, nil
}

func TestImpactScores(t *testing.T) {
	if got := leaderboard.NGOImpact(3, 5); got != 63 {
		t.Errorf("NGOImpact(3,5) = %d, want 63", got)
	}
	if got := leaderboard.NGOImpact(10, 40); got != 100 {
		t.Errorf("expected NGO score to cap at 100, got %d", got)
	}
	if got := leaderboard.CitizenImpact(4, 2); got != 54 {
		t.Errorf("CitizenImpact(4,2) = %d, want 54", got)
	}
}

func TestNGORows_RankByImpactThenName(t *testing.T) {
	rows := leaderboard.NGORows([]leaderboard.NGOStat{
		{ID: "a", Name: "Zero Waste", ResolvedIssues: 1},
		{ID: "b", Name: "Blue Rivers", ResolvedIssues: 5, OpenIssues: 2, AcceptedDonations: 1},
		{ID: "c", Name: "akshaya", ResolvedIssues: 1},
	})

	want := []struct {
		id    string
		rank  int
		score int
	}{{"b", 1, 63}, {"c", 2, 52}, {"a", 3, 52}}
	for i, w := range want {
		if rows[i].ID != w.id || rows[i].Rank != w.rank || rows[i].ImpactScore != w.score {
			t.Errorf("row %d = %+v, want id=%s rank=%d score=%d", i, rows[i], w.id, w.rank, w.score)
		}
	}
	if rows[0].ActiveCampaigns != 3 {
		t.Errorf("expected active campaigns 3, got %d", rows[0].ActiveCampaigns)
	}
}

func router(src leaderboard.Source) http.Handler {
	r := chi.NewRouter()
	r.Mount("/api/leaderboard", leaderboard.SetupRoutes(&leaderboard.Handler{Source: src}))
	return r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestLeaderboardEndpoint_Sorting(t *testing.T) {
	src := fixedSource{citizens: []leaderboard.CitizenStat{
		{ID: "1", Name: "Meera", Reports: 10, Resolved: 2},
		{ID: "2", Name: "arjun", Reports: 1},
		{ID: "3", Name: "Kavya", Reports: 5, Resolved: 5},
	}}
	h := router(src)

	rec := get(t, h, "/api/leaderboard/citizens?sort=name&dir=asc")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Sort struct {
			Field     string `json:"field"`
			Direction string `json:"direction"`
		} `json:"sort"`
		Rows []leaderboard.CitizenRow `json:"rows"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Sort.Field != "name" || body.Sort.Direction != "asc" {
		t.Errorf("unexpected sort echo %+v", body.Sort)
	}
	names := []string{body.Rows[0].Name, body.Rows[1].Name, body.Rows[2].Name}
	if names[0] != "arjun" || names[1] != "Kavya" || names[2] != "Meera" {
		t.Errorf("expected case-insensitive name order, got %v", names)
	}

	rec = get(t, h, "/api/leaderboard/citizens")
	body.Rows = nil
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body.Rows[0].Name != "Meera" || body.Rows[0].Rank != 1 {
		t.Errorf("expected Meera ranked first by default, got %+v", body.Rows[0])
	}
}

func TestLeaderboardEndpoint_HeaderClick(t *testing.T) {
	src := fixedSource{citizens: []leaderboard.CitizenStat{
		{ID: "1", Name: "Meera", Reports: 10, Resolved: 2},
		{ID: "2", Name: "arjun", Reports: 1},
	}}
	h := router(src)

	var body struct {
		Sort struct {
			Field     string `json:"field"`
			Direction string `json:"direction"`
		} `json:"sort"`
		Rows []leaderboard.CitizenRow `json:"rows"`
	}
	decode := func(path string) {
		t.Helper()
		rec := get(t, h, path)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
		body.Rows = nil
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
	}

	decode("/api/leaderboard/citizens?sort=name&dir=asc&click=name")
	if body.Sort.Field != "name" || body.Sort.Direction != "desc" {
		t.Errorf("same column: expected name/desc, got %+v", body.Sort)
	}
	if body.Rows[0].Name != "Meera" {
		t.Errorf("expected Meera first in descending name order, got %s", body.Rows[0].Name)
	}

	decode("/api/leaderboard/citizens?sort=name&dir=desc&click=reportsFiled")
	if body.Sort.Field != "reportsFiled" || body.Sort.Direction != "asc" {
		t.Errorf("new column: expected reportsFiled/asc, got %+v", body.Sort)
	}
	if body.Rows[0].Name != "arjun" {
		t.Errorf("expected fewest reports first, got %s", body.Rows[0].Name)
	}

	if rec := get(t, h, "/api/leaderboard/citizens?click=password"); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown clicked column: expected 400, got %d", rec.Code)
	}
}

func TestLeaderboardEndpoint_BadSort(t *testing.T) {
	h := router(fixedSource{})

	if rec := get(t, h, "/api/leaderboard/ngos?sort=password"); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field: expected 400, got %d", rec.Code)
	}
	if rec := get(t, h, "/api/leaderboard/ngos?dir=sideways"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad direction: expected 400, got %d", rec.Code)
	}
}
