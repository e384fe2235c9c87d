package orgs

import (
	"context"
	"fmt"

	"github.com/CityPulse/CityPulse-Backend/internal/apperr"
	"github.com/CityPulse/CityPulse-Backend/internal/db"
	"github.com/CityPulse/CityPulse-Backend/internal/utils"
	"gorm.io/gorm"
)

type Store interface {
	List(ctx context.Context) ([]Organization, error)
	FindByID(ctx context.Context, id string) (Organization, error)
	Create(ctx context.Context, o *Organization) error
}

var errDuplicateEmail = apperr.Conflict("Organization with this email already exists.")

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(d *gorm.DB) *GormStore {
	return &GormStore{DB: d}
}

func (s *GormStore) List(ctx context.Context) ([]Organization, error) {
	var list []Organization
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return list, nil
}

func (s *GormStore) FindByID(ctx context.Context, id string) (Organization, error) {
	if !db.ValidID(id) {
		return Organization{}, apperr.NotFound("Organization not found.")
	}
	var o Organization
	err := s.DB.WithContext(ctx).First(&o, "id = ?", id).Error
	if db.IsNotFound(err) {
		return Organization{}, apperr.NotFound("Organization not found.")
	}
	if err != nil {
		return Organization{}, fmt.Errorf("find organization %s: %w", id, err)
	}
	return o, nil
}

func (s *GormStore) Create(ctx context.Context, o *Organization) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&Organization{}).Where("email = ?", o.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("check organization email: %w", err)
	}
	if count > 0 {
		return errDuplicateEmail
	}

	if o.ID == "" {
		o.ID = utils.GenerateUUID()
	}
	if err := s.DB.WithContext(ctx).Create(o).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return errDuplicateEmail
		}
		return fmt.Errorf("create organization: %w", err)
	}
	return nil
}
