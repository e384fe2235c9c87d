package leaderboard

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GormSource aggregates activity straight from the civic tables.
type GormSource struct {
	DB *gorm.DB
}

func NewGormSource(d *gorm.DB) *GormSource {
	return &GormSource{DB: d}
}

const ngoStatsQuery = `
SELECT o.id, o.name,
	COUNT(DISTINCT i.id) FILTER (WHERE i.status = 'ACCEPTED') AS open_issues,
	COUNT(DISTINCT i.id) FILTER (WHERE i.status = 'RESOLVED') AS resolved_issues,
	COUNT(DISTINCT d.id) AS accepted_donations
FROM civic.organizations o
LEFT JOIN civic.issues i ON i.accepted_by_id = o.id
LEFT JOIN civic.food_donations d ON d.accepted_by_org_id = o.id
GROUP BY o.id, o.name`

const citizenStatsQuery = `
SELECT u.id, u.name,
	COUNT(i.id) AS reports,
	COUNT(i.id) FILTER (WHERE i.status = 'RESOLVED') AS resolved
FROM app_auth.users u
JOIN civic.issues i ON i.user_id = u.id
GROUP BY u.id, u.name`

func (s *GormSource) NGOStats(ctx context.Context) ([]NGOStat, error) {
	var out []NGOStat
	if err := s.DB.WithContext(ctx).Raw(ngoStatsQuery).Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("ngo stats: %w", err)
	}
	return out, nil
}

func (s *GormSource) CitizenStats(ctx context.Context) ([]CitizenStat, error) {
	var out []CitizenStat
	if err := s.DB.WithContext(ctx).Raw(citizenStatsQuery).Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("citizen stats: %w", err)
	}
	return out, nil
}
