package donations

import (
	"context"
	"fmt"

	"github.com/CityPulse/CityPulse-Backend/internal/apperr"
	"github.com/CityPulse/CityPulse-Backend/internal/db"
	"github.com/CityPulse/CityPulse-Backend/internal/utils"
	"gorm.io/gorm"
)

type Store interface {
	// List returns donations newest first. An empty donorID lists all.
	List(ctx context.Context, donorID string) ([]FoodDonation, error)
	FindByID(ctx context.Context, id string) (FoodDonation, error)
	Create(ctx context.Context, d *FoodDonation) error
	Accept(ctx context.Context, id, orgID string) (FoodDonation, error)
}

var errDonationNotFound = apperr.NotFound("Food donation not found.")

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(d *gorm.DB) *GormStore {
	return &GormStore{DB: d}
}

func (s *GormStore) List(ctx context.Context, donorID string) ([]FoodDonation, error) {
	q := s.DB.WithContext(ctx).Preload("Donor").Preload("AcceptedByOrg").Order("created_at DESC")
	if donorID != "" {
		q = q.Where("donor_user_id = ?", donorID)
	}

	var list []FoodDonation
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list food donations: %w", err)
	}
	return list, nil
}

func (s *GormStore) FindByID(ctx context.Context, id string) (FoodDonation, error) {
	if !db.ValidID(id) {
		return FoodDonation{}, errDonationNotFound
	}
	var d FoodDonation
	err := s.DB.WithContext(ctx).Preload("Donor").Preload("AcceptedByOrg").First(&d, "id = ?", id).Error
	if db.IsNotFound(err) {
		return FoodDonation{}, errDonationNotFound
	}
	if err != nil {
		return FoodDonation{}, fmt.Errorf("find food donation %s: %w", id, err)
	}
	return d, nil
}

func (s *GormStore) Create(ctx context.Context, d *FoodDonation) error {
	if d.ID == "" {
		d.ID = utils.GenerateUUID()
	}
	if err := s.DB.WithContext(ctx).Omit("Donor", "AcceptedByOrg").Create(d).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			verr := &apperr.ValidationError{}
			verr.Add("donorUserId", "User not found.")
			return verr
		}
		return fmt.Errorf("create food donation: %w", err)
	}
	return nil
}

func (s *GormStore) Accept(ctx context.Context, id, orgID string) (FoodDonation, error) {
	if !db.ValidID(id) {
		return FoodDonation{}, errDonationNotFound
	}
	res := s.DB.WithContext(ctx).Model(&FoodDonation{}).Where("id = ?", id).Update("accepted_by_org_id", orgID)
	if res.Error != nil {
		return FoodDonation{}, fmt.Errorf("accept food donation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return FoodDonation{}, errDonationNotFound
	}
	return s.FindByID(ctx, id)
}
