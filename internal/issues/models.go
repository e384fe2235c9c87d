package issues

import (
	"time"

	"github.com/CityPulse/CityPulse-Backend/internal/auth"
	"github.com/CityPulse/CityPulse-Backend/internal/issuemap"
	"github.com/CityPulse/CityPulse-Backend/internal/orgs"
)

var (
	Categories    = []string{"waste", "water", "health", "roads", "electricity", "environment", "safety"}
	UrgencyLevels = []string{issuemap.UrgencyHigh, issuemap.UrgencyMedium, issuemap.UrgencyLow}
	Statuses      = []string{issuemap.StatusPending, issuemap.StatusAccepted, issuemap.StatusResolved}
)

type Issue struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"not null" json:"description"`
	PhotoURL     string    `gorm:"column:photo_url;not null" json:"photoURL"`
	Location     string    `gorm:"not null" json:"location"`
	Category     string    `gorm:"not null;index" json:"category"`
	UrgencyLevel string    `gorm:"not null;index" json:"urgencyLevel"`
	Status       string    `gorm:"not null;default:'PENDING';index" json:"status"`
	UserID       string    `gorm:"type:uuid;not null;index" json:"userId"`
	AcceptedByID *string   `gorm:"type:uuid;index" json:"acceptedById"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Reporter   *auth.User         `gorm:"foreignKey:UserID" json:"-"`
	AcceptedBy *orgs.Organization `gorm:"foreignKey:AcceptedByID" json:"-"`
	LikeCount  int                `gorm:"-" json:"-"`
}

func (Issue) TableName() string { return "civic.issues" }

// Like is one user's upvote on an issue. A user likes an issue at most once.
type Like struct {
	IssueID   string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

func (Like) TableName() string { return "civic.issue_likes" }

type issueResponse struct {
	Issue
	User       *auth.Summary `json:"user,omitempty"`
	AcceptedBy *orgs.Summary `json:"acceptedBy,omitempty"`
	LikeCount  int           `json:"likeCount"`
}

func toResponse(is Issue) issueResponse {
	resp := issueResponse{Issue: is, LikeCount: is.LikeCount}
	if is.Reporter != nil {
		s := is.Reporter.Summary()
		resp.User = &s
	}
	if is.AcceptedBy != nil {
		s := is.AcceptedBy.Summary()
		resp.AcceptedBy = &s
	}
	return resp
}

// mapIssue converts a record into the map engine's input.
func mapIssue(is Issue) issuemap.Issue {
	out := issuemap.Issue{
		ID:           is.ID,
		Title:        is.Title,
		Description:  is.Description,
		PhotoURL:     is.PhotoURL,
		Location:     is.Location,
		Category:     is.Category,
		UrgencyLevel: is.UrgencyLevel,
		Status:       is.Status,
		LikeCount:    is.LikeCount,
		CreatedAt:    is.CreatedAt,
	}
	if is.Reporter != nil {
		out.ReporterName = is.Reporter.Name
	}
	return out
}
