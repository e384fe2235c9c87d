// Package admin serves the dashboard totals for administrators.
package admin

import (
	"context"
	"fmt"
	"net/http"

	"github.com/CityPulse/CityPulse-Backend/internal/auth"
	"github.com/CityPulse/CityPulse-Backend/internal/respond"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type Stats struct {
	Users          int64            `json:"users"`
	Organizations  int64            `json:"organizations"`
	Issues         int64            `json:"issues"`
	IssuesByStatus map[string]int64 `json:"issuesByStatus"`
	Donations      int64            `json:"donations"`
	DonatedWeight  float64          `json:"donatedWeight"`
}

type StatsSource interface {
	Stats(ctx context.Context) (Stats, error)
}

type GormStats struct {
	DB *gorm.DB
}

func (g GormStats) Stats(ctx context.Context) (Stats, error) {
	d := g.DB.WithContext(ctx)
	out := Stats{IssuesByStatus: map[string]int64{}}

	if err := d.Table("app_auth.users").Count(&out.Users).Error; err != nil {
		return Stats{}, fmt.Errorf("count users: %w", err)
	}
	if err := d.Table("civic.organizations").Count(&out.Organizations).Error; err != nil {
		return Stats{}, fmt.Errorf("count organizations: %w", err)
	}

	var byStatus []struct {
		Status string
		N      int64
	}
	if err := d.Table("civic.issues").Select("status, COUNT(*) AS n").Group("status").Scan(&byStatus).Error; err != nil {
		return Stats{}, fmt.Errorf("count issues: %w", err)
	}
	for _, row := range byStatus {
		out.IssuesByStatus[row.Status] = row.N
		out.Issues += row.N
	}

	var donations struct {
		N      int64
		Weight float64
	}
	err := d.Table("civic.food_donations").Select("COUNT(*) AS n, COALESCE(SUM(weight), 0) AS weight").Scan(&donations).Error
	if err != nil {
		return Stats{}, fmt.Errorf("count donations: %w", err)
	}
	out.Donations = donations.N
	out.DonatedWeight = donations.Weight

	return out, nil
}

type Handler struct {
	Source StatsSource
}

func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r); err != nil {
		respond.Error(w, r, err)
		return
	}

	stats, err := h.Source.Stats(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/stats", h.StatsHandler)
	return r
}
