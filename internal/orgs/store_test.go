package orgs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/CityPulse/CityPulse-Backend/internal/apperr"
	"github.com/CityPulse/CityPulse-Backend/internal/orgs"
)

func TestGormStore_MalformedIDIsNotFound(t *testing.T) {
	store := orgs.NewGormStore(nil)

	_, err := store.FindByID(context.Background(), "not-a-uuid")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
