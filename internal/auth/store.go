package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/CityPulse/CityPulse-Backend/internal/apperr"
	"github.com/CityPulse/CityPulse-Backend/internal/db"
	"github.com/CityPulse/CityPulse-Backend/internal/utils"
	"gorm.io/gorm"
)

// UserStore is the subset of identity persistence the resolver and sign-in
// flow depend on.
type UserStore interface {
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u *User) error
}

var errDuplicateEmail = apperr.Conflict("User with this email already exists.")

// GormUserStore persists users in app_auth.users.
type GormUserStore struct {
	DB *gorm.DB
}

func NewGormUserStore(d *gorm.DB) *GormUserStore {
	return &GormUserStore{DB: d}
}

func (s *GormUserStore) FindByID(ctx context.Context, id string) (User, error) {
	if !db.ValidID(id) {
		return User{}, apperr.NotFound("User not found.")
	}
	var u User
	err := s.DB.WithContext(ctx).First(&u, "id = ?", id).Error
	if db.IsNotFound(err) {
		return User{}, apperr.NotFound("User not found.")
	}
	if err != nil {
		return User{}, fmt.Errorf("find user %s: %w", id, err)
	}
	return u, nil
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.DB.WithContext(ctx).First(&u, "email = ?", strings.ToLower(email)).Error
	if db.IsNotFound(err) {
		return User{}, apperr.NotFound("User not found.")
	}
	if err != nil {
		return User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// Create inserts u, assigning an id when empty. A duplicate email is
// reported as a conflict whether it is caught by the pre-check or by the
// unique index.
func (s *GormUserStore) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = utils.GenerateUUID()
	}
	if u.Role == "" {
		u.Role = "user"
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	var count int64
	if err := s.DB.WithContext(ctx).Model(&User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("check user email: %w", err)
	}
	if count > 0 {
		return errDuplicateEmail
	}

	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return errDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormUserStore) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetRole changes the stored role. Sessions pick the change up on their
// next request.
func (s *GormUserStore) SetRole(ctx context.Context, email, role string) error {
	res := s.DB.WithContext(ctx).Model(&User{}).Where("email = ?", strings.ToLower(email)).Update("role", role)
	if res.Error != nil {
		return fmt.Errorf("set role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("User not found.")
	}
	return nil
}
