package issues_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/CityPulse/CityPulse-Backend/internal/apperr"
	"github.com/CityPulse/CityPulse-Backend/internal/auth"
	"github.com/CityPulse/CityPulse-Backend/internal/db"
	"github.com/CityPulse/CityPulse-Backend/internal/issues"
	"github.com/CityPulse/CityPulse-Backend/internal/orgs"
	"github.com/CityPulse/CityPulse-Backend/internal/ratelimit"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

var dbAvailable bool

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env.local")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		os.Exit(m.Run())
	}

	db.Connect(databaseURL)
	dbAvailable = true
	auth.Init()
	orgs.Init()
	issues.Init()

	os.Exit(m.Run())
}

// Ids that are not uuids never reach Postgres, so the GORM store answers
// them without a connection.
func TestGormStore_MalformedIDIsNotFound(t *testing.T) {
	store := issues.NewGormStore(nil)
	ctx := context.Background()

	if _, err := store.FindByID(ctx, "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("FindByID: expected not found, got %v", err)
	}
	if _, err := store.Like(ctx, "missing", aliceID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Like: expected not found, got %v", err)
	}
	if _, err := store.UpdateStatus(ctx, "missing", "RESOLVED", nil); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("UpdateStatus: expected not found, got %v", err)
	}
}

func TestGetIssue_MalformedIDOverGormStore(t *testing.T) {
	srv := newRouter(issues.NewGormStore(nil), ratelimit.Unlimited{})

	if rec := do(t, srv, http.MethodGet, "/api/issues/missing", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("get: expected 404, got %d; body: %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, srv, http.MethodPost, "/api/issues/missing/like", "", alice); rec.Code != http.StatusNotFound {
		t.Errorf("like: expected 404, got %d; body: %s", rec.Code, rec.Body.String())
	}
}

func requireDB(t *testing.T) *issues.GormStore {
	t.Helper()
	if testing.Short() || !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	return issues.NewGormStore(db.DB)
}

func TestGormStore_UnknownReporterIsValidationError(t *testing.T) {
	store := requireDB(t)

	is := issues.Issue{
		Title:        "Flooded underpass",
		Description:  "Knee-deep water after rain",
		PhotoURL:     "https://cdn.example.org/flood.jpg",
		Location:     "13.0827,80.2707",
		Category:     "water",
		UrgencyLevel: "HIGH",
		Status:       "PENDING",
		UserID:       uuid.NewString(),
	}
	err := store.Create(context.Background(), &is)

	var verr *apperr.ValidationError
	if !errors.As(err, &verr) || len(verr.Fields["userId"]) == 0 {
		t.Fatalf("expected a userId validation error, got %v", err)
	}
	if apperr.Status(err) != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", apperr.Status(err))
	}
}

func TestGormStore_FindByID_Missing(t *testing.T) {
	store := requireDB(t)

	if _, err := store.FindByID(context.Background(), uuid.NewString()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
