package orgs

import (
	"time"

	"github.com/lib/pq"
)

type Organization struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	City        string         `json:"city"`
	State       string         `json:"state"`
	FocusAreas  pq.StringArray `gorm:"type:text[]" json:"focusAreas"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func (Organization) TableName() string { return "civic.organizations" }

// Summary is the short form embedded in issue and donation responses.
type Summary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	City  string `json:"city"`
}

func (o Organization) Summary() Summary {
	return Summary{ID: o.ID, Name: o.Name, Email: o.Email, City: o.City}
}
