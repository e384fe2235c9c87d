package auth

import "time"

// User is the persisted identity record. Users are created on first sign-in
// and never deleted here.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	City      string    `gorm:"not null;default:'Unknown'" json:"city"`
	State     string    `gorm:"not null;default:'Unknown'" json:"state"`
	Role      string    `gorm:"not null;default:'user'" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (User) TableName() string { return "app_auth.users" }

// Summary is the short form embedded in issue and donation responses.
type Summary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	City  string `json:"city"`
}

func (u User) Summary() Summary {
	return Summary{ID: u.ID, Name: u.Name, Email: u.Email, City: u.City}
}
