// Package leaderboard ranks NGOs and citizens by impact score derived from
// issue and donation activity.
package leaderboard

import (
	"context"

	"github.com/CityPulse/CityPulse-Backend/internal/ranking"
)

// NGOStat is the raw activity of one organization.
type NGOStat struct {
	ID                string
	Name              string
	OpenIssues        int
	ResolvedIssues    int
	AcceptedDonations int
}

// CitizenStat is the raw activity of one reporting user.
type CitizenStat struct {
	ID       string
	Name     string
	Reports  int
	Resolved int
}

type Source interface {
	NGOStats(ctx context.Context) ([]NGOStat, error)
	CitizenStats(ctx context.Context) ([]CitizenStat, error)
}

type NGORow struct {
	Rank            int    `json:"rank"`
	ID              string `json:"id"`
	Name            string `json:"name"`
	ImpactScore     int    `json:"impactScore"`
	ActiveCampaigns int    `json:"activeCampaigns"`
	ResolvedIssues  int    `json:"resolvedIssues"`
}

type CitizenRow struct {
	Rank           int    `json:"rank"`
	ID             string `json:"id"`
	Name           string `json:"name"`
	ImpactScore    int    `json:"impactScore"`
	ReportsFiled   int    `json:"reportsFiled"`
	IssuesResolved int    `json:"issuesResolved"`
}

var NGOColumns = ranking.Columns[NGORow]{
	"rank":            func(r NGORow) ranking.Value { return ranking.Int(r.Rank) },
	"name":            func(r NGORow) ranking.Value { return ranking.Text(r.Name) },
	"impactScore":     func(r NGORow) ranking.Value { return ranking.Int(r.ImpactScore) },
	"activeCampaigns": func(r NGORow) ranking.Value { return ranking.Int(r.ActiveCampaigns) },
	"resolvedIssues":  func(r NGORow) ranking.Value { return ranking.Int(r.ResolvedIssues) },
}

var CitizenColumns = ranking.Columns[CitizenRow]{
	"rank":           func(r CitizenRow) ranking.Value { return ranking.Int(r.Rank) },
	"name":           func(r CitizenRow) ranking.Value { return ranking.Text(r.Name) },
	"impactScore":    func(r CitizenRow) ranking.Value { return ranking.Int(r.ImpactScore) },
	"reportsFiled":   func(r CitizenRow) ranking.Value { return ranking.Int(r.ReportsFiled) },
	"issuesResolved": func(r CitizenRow) ranking.Value { return ranking.Int(r.IssuesResolved) },
}

// NGOImpact scores an organization out of 100.
func NGOImpact(active, resolved int) int {
	return min(100, 50+2*resolved+active)
}

// CitizenImpact scores a reporter out of 100.
func CitizenImpact(reports, resolved int) int {
	return min(100, 40+2*reports+3*resolved)
}

// NGORows scores stats and assigns ranks by impact, highest first. Equal
// scores are ordered by name.
func NGORows(stats []NGOStat) []NGORow {
	rows := make([]NGORow, len(stats))
	for i, s := range stats {
		active := s.OpenIssues + s.AcceptedDonations
		rows[i] = NGORow{
			ID:              s.ID,
			Name:            s.Name,
			ImpactScore:     NGOImpact(active, s.ResolvedIssues),
			ActiveCampaigns: active,
			ResolvedIssues:  s.ResolvedIssues,
		}
	}

	rows = ranking.SortRows(rows, NGOColumns["name"], ranking.Asc)
	rows = ranking.SortRows(rows, NGOColumns["impactScore"], ranking.Desc)
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// CitizenRows is NGORows for reporters.
func CitizenRows(stats []CitizenStat) []CitizenRow {
	rows := make([]CitizenRow, len(stats))
	for i, s := range stats {
		rows[i] = CitizenRow{
			ID:             s.ID,
			Name:           s.Name,
			ImpactScore:    CitizenImpact(s.Reports, s.Resolved),
			ReportsFiled:   s.Reports,
			IssuesResolved: s.Resolved,
		}
	}

	rows = ranking.SortRows(rows, CitizenColumns["name"], ranking.Asc)
	rows = ranking.SortRows(rows, CitizenColumns["impactScore"], ranking.Desc)
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
