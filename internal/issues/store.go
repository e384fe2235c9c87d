package issues

import (
	"context"
	"fmt"

	"github.com/CityPulse/CityPulse-Backend/internal/apperr"
	"github.com/CityPulse/CityPulse-Backend/internal/auth"
	"github.com/CityPulse/CityPulse-Backend/internal/db"
	"github.com/CityPulse/CityPulse-Backend/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store interface {
	// List returns issues newest first, optionally limited to reporters in
	// city, with reporter and like counts loaded.
	List(ctx context.Context, city string) ([]Issue, error)
	FindByID(ctx context.Context, id string) (Issue, error)
	Create(ctx context.Context, is *Issue) error
	// Like records userID's like once and returns the issue's like count.
	Like(ctx context.Context, issueID, userID string) (int, error)
	UpdateStatus(ctx context.Context, id, status string, acceptedByID *string) (Issue, error)
}

var errIssueNotFound = apperr.NotFound("Issue not found.")

func errReporterMissing() error {
	verr := &apperr.ValidationError{}
	verr.Add("userId", "User not found.")
	return verr
}

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(d *gorm.DB) *GormStore {
	return &GormStore{DB: d}
}

func (s *GormStore) List(ctx context.Context, city string) ([]Issue, error) {
	q := s.DB.WithContext(ctx).Preload("Reporter").Preload("AcceptedBy").Order("created_at DESC")
	if city != "" {
		q = q.Where("user_id IN (?)", s.DB.Model(&auth.User{}).Select("id").Where("city = ?", city))
	}

	var list []Issue
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	if err := s.attachLikeCounts(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) attachLikeCounts(ctx context.Context, list []Issue) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, len(list))
	for i, is := range list {
		ids[i] = is.ID
	}

	var rows []struct {
		IssueID string
		N       int
	}
	err := s.DB.WithContext(ctx).Model(&Like{}).
		Select("issue_id, COUNT(*) AS n").
		Where("issue_id IN ?", ids).
		Group("issue_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("count likes: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.IssueID] = r.N
	}
	for i := range list {
		list[i].LikeCount = counts[list[i].ID]
	}
	return nil
}

func (s *GormStore) FindByID(ctx context.Context, id string) (Issue, error) {
	if !db.ValidID(id) {
		return Issue{}, errIssueNotFound
	}
	var is Issue
	err := s.DB.WithContext(ctx).Preload("Reporter").Preload("AcceptedBy").First(&is, "id = ?", id).Error
	if db.IsNotFound(err) {
		return Issue{}, errIssueNotFound
	}
	if err != nil {
		return Issue{}, fmt.Errorf("find issue %s: %w", id, err)
	}

	var n int64
	if err := s.DB.WithContext(ctx).Model(&Like{}).Where("issue_id = ?", id).Count(&n).Error; err != nil {
		return Issue{}, fmt.Errorf("count likes: %w", err)
	}
	is.LikeCount = int(n)
	return is, nil
}

func (s *GormStore) Create(ctx context.Context, is *Issue) error {
	if is.ID == "" {
		is.ID = utils.GenerateUUID()
	}
	if err := s.DB.WithContext(ctx).Omit("Reporter", "AcceptedBy").Create(is).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return errReporterMissing()
		}
		return fmt.Errorf("create issue: %w", err)
	}
	return nil
}

func (s *GormStore) Like(ctx context.Context, issueID, userID string) (int, error) {
	if !db.ValidID(issueID) {
		return 0, errIssueNotFound
	}
	var n int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&Issue{}).Where("id = ?", issueID).Count(&exists).Error; err != nil {
			return fmt.Errorf("check issue: %w", err)
		}
		if exists == 0 {
			return errIssueNotFound
		}

		like := Like{IssueID: issueID, UserID: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
			return fmt.Errorf("like issue: %w", err)
		}
		return tx.Model(&Like{}).Where("issue_id = ?", issueID).Count(&n).Error
	})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *GormStore) UpdateStatus(ctx context.Context, id, status string, acceptedByID *string) (Issue, error) {
	if !db.ValidID(id) {
		return Issue{}, errIssueNotFound
	}
	res := s.DB.WithContext(ctx).Model(&Issue{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "accepted_by_id": acceptedByID})
	if res.Error != nil {
		return Issue{}, fmt.Errorf("update issue status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return Issue{}, errIssueNotFound
	}
	return s.FindByID(ctx, id)
}
