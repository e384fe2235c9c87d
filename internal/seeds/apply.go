package seeds

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/CityPulse/CityPulse-Backend/internal/apperr"
	"github.com/CityPulse/CityPulse-Backend/internal/auth"
	"github.com/CityPulse/CityPulse-Backend/internal/donations"
	"github.com/CityPulse/CityPulse-Backend/internal/issuemap"
	"github.com/CityPulse/CityPulse-Backend/internal/issues"
	"github.com/CityPulse/CityPulse-Backend/internal/orgs"
	"gorm.io/gorm"
)

// Result counts the records created by Apply. Records that already exist
// are skipped and not counted.
type Result struct {
	Users         int
	Organizations int
	Issues        int
	Donations     int
	Likes         int
}

// Apply validates f and writes it in a single transaction. Running the same
// file twice creates nothing the second time.
func Apply(ctx context.Context, d *gorm.DB, f File) (Result, error) {
	if err := f.Validate(); err != nil {
		return Result{}, err
	}

	var res Result
	err := d.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userIDs, err := seedUsers(ctx, tx, f.Users, &res)
		if err != nil {
			return err
		}
		orgIDs, err := seedOrganizations(ctx, tx, f.Organizations, &res)
		if err != nil {
			return err
		}
		if err := seedIssues(ctx, tx, f.Issues, userIDs, orgIDs, &res); err != nil {
			return err
		}
		return seedDonations(ctx, tx, f.Donations, userIDs, orgIDs, &res)
	})
	if err != nil {
		return Result{}, err
	}

	log.Printf("[seeds] created %d users, %d organizations, %d issues, %d donations, %d likes",
		res.Users, res.Organizations, res.Issues, res.Donations, res.Likes)
	return res, nil
}

func seedUsers(ctx context.Context, tx *gorm.DB, list []User, res *Result) (map[string]string, error) {
	store := auth.NewGormUserStore(tx)
	ids := make(map[string]string, len(list))

	for _, s := range list {
		existing, err := store.FindByEmail(ctx, s.Email)
		if err == nil {
			log.Printf("[seeds] user exists, skipping: %s", s.Email)
			ids[s.Email] = existing.ID
			continue
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}

		u := auth.User{Email: s.Email, Name: s.Name, City: s.City, State: s.State, Role: s.Role}
		if err := store.Create(ctx, &u); err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", s.Email, err)
		}
		ids[s.Email] = u.ID
		res.Users++
	}
	return ids, nil
}

func seedOrganizations(ctx context.Context, tx *gorm.DB, list []Organization, res *Result) (map[string]string, error) {
	store := orgs.NewGormStore(tx)
	ids := make(map[string]string, len(list))

	for _, s := range list {
		var existing orgs.Organization
		err := tx.WithContext(ctx).Where("email = ?", s.Email).First(&existing).Error
		if err == nil {
			log.Printf("[seeds] organization exists, skipping: %s", s.Name)
			ids[s.Email] = existing.ID
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("DB error on organization %s: %w", s.Name, err)
		}

		o := orgs.Organization{
			Email:       s.Email,
			Name:        s.Name,
			Description: s.Description,
			City:        s.City,
			State:       s.State,
			FocusAreas:  s.FocusAreas,
		}
		if err := store.Create(ctx, &o); err != nil {
			return nil, fmt.Errorf("failed to create organization %s: %w", s.Name, err)
		}
		ids[s.Email] = o.ID
		res.Organizations++
	}
	return ids, nil
}

func seedIssues(ctx context.Context, tx *gorm.DB, list []Issue, userIDs, orgIDs map[string]string, res *Result) error {
	store := issues.NewGormStore(tx)

	for _, s := range list {
		reporter := userIDs[s.Reporter]

		var existing issues.Issue
		err := tx.WithContext(ctx).Where("title = ? AND user_id = ?", s.Title, reporter).First(&existing).Error
		switch {
		case err == nil:
			log.Printf("[seeds] issue exists, skipping: %s", s.Title)
		case errors.Is(err, gorm.ErrRecordNotFound):
			existing = issues.Issue{
				Title:        s.Title,
				Description:  s.Description,
				PhotoURL:     s.PhotoURL,
				Location:     s.Location,
				Category:     s.Category,
				UrgencyLevel: s.Urgency,
				Status:       s.Status,
				UserID:       reporter,
			}
			if existing.Status == "" {
				existing.Status = issuemap.StatusPending
			}
			if s.AcceptedBy != "" {
				id := orgIDs[s.AcceptedBy]
				existing.AcceptedByID = &id
			}
			if err := store.Create(ctx, &existing); err != nil {
				return fmt.Errorf("failed to create issue %s: %w", s.Title, err)
			}
			res.Issues++
		default:
			return fmt.Errorf("DB error on issue %s: %w", s.Title, err)
		}

		for _, email := range s.Likes {
			before, err := countLikes(ctx, tx, existing.ID)
			if err != nil {
				return err
			}
			after, err := store.Like(ctx, existing.ID, userIDs[email])
			if err != nil {
				return fmt.Errorf("failed to like issue %s: %w", s.Title, err)
			}
			res.Likes += after - before
		}
	}
	return nil
}

func countLikes(ctx context.Context, tx *gorm.DB, issueID string) (int, error) {
	var n int64
	if err := tx.WithContext(ctx).Model(&issues.Like{}).Where("issue_id = ?", issueID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return int(n), nil
}

func seedDonations(ctx context.Context, tx *gorm.DB, list []Donation, userIDs, orgIDs map[string]string, res *Result) error {
	store := donations.NewGormStore(tx)

	for _, s := range list {
		donor := userIDs[s.Donor]

		var n int64
		err := tx.WithContext(ctx).Model(&donations.FoodDonation{}).
			Where("donor_user_id = ? AND food_type = ? AND pickup_address = ?", donor, s.FoodType, s.PickupAddress).
			Count(&n).Error
		if err != nil {
			return fmt.Errorf("DB error on donation %s: %w", s.FoodType, err)
		}
		if n > 0 {
			log.Printf("[seeds] donation exists, skipping: %s from %s", s.FoodType, s.Donor)
			continue
		}

		d := donations.FoodDonation{
			FoodType:      s.FoodType,
			Weight:        s.Weight,
			PickupAddress: s.PickupAddress,
			PhotoURL:      s.PhotoURL,
			Description:   s.Description,
			DonorUserID:   donor,
		}
		if s.AcceptedBy != "" {
			id := orgIDs[s.AcceptedBy]
			d.AcceptedByOrgID = &id
		}
		if err := store.Create(ctx, &d); err != nil {
			return fmt.Errorf("failed to create donation %s: %w", s.FoodType, err)
		}
		res.Donations++
	}
	return nil
}
