// Package seeds loads demo data (users, organizations, issues and food
// donations) from a YAML file into the database.
package seeds

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/CityPulse/CityPulse-Backend/internal/issuemap"
	"github.com/CityPulse/CityPulse-Backend/internal/issues"
	"github.com/goccy/go-yaml"
)

type File struct {
	Users         []User         `yaml:"users"`
	Organizations []Organization `yaml:"organizations"`
	Issues        []Issue        `yaml:"issues"`
	Donations     []Donation     `yaml:"donations"`
}

type User struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
	City  string `yaml:"city"`
	State string `yaml:"state"`
	Role  string `yaml:"role"`
}

type Organization struct {
	Email       string   `yaml:"email"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	City        string   `yaml:"city"`
	State       string   `yaml:"state"`
	FocusAreas  []string `yaml:"focus_areas"`
}

// Issue and Donation reference users and organizations by email.
type Issue struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	PhotoURL    string   `yaml:"photo_url"`
	Location    string   `yaml:"location"`
	Category    string   `yaml:"category"`
	Urgency     string   `yaml:"urgency"`
	Status      string   `yaml:"status"`
	Reporter    string   `yaml:"reporter"`
	AcceptedBy  string   `yaml:"accepted_by"`
	Likes       []string `yaml:"likes"`
}

type Donation struct {
	FoodType      string  `yaml:"food_type"`
	Weight        float64 `yaml:"weight"`
	PickupAddress string  `yaml:"pickup_address"`
	PhotoURL      string  `yaml:"photo_url"`
	Description   string  `yaml:"description"`
	Donor         string  `yaml:"donor"`
	AcceptedBy    string  `yaml:"accepted_by"`
}

func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("could not read %s: %w", path, err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return f, nil
}

// Validate checks enum values, locations and cross references. Every
// problem is reported, not just the first.
func (f File) Validate() error {
	var errs []error

	users := make(map[string]bool, len(f.Users))
	for i, u := range f.Users {
		if u.Email == "" || u.Name == "" {
			errs = append(errs, fmt.Errorf("users[%d]: email and name are required", i))
		}
		if u.Role != "" && u.Role != "user" && u.Role != "admin" {
			errs = append(errs, fmt.Errorf("users[%d]: unknown role %q", i, u.Role))
		}
		users[u.Email] = true
	}

	orgs := make(map[string]bool, len(f.Organizations))
	for i, o := range f.Organizations {
		if o.Email == "" || o.Name == "" {
			errs = append(errs, fmt.Errorf("organizations[%d]: email and name are required", i))
		}
		orgs[o.Email] = true
	}

	for i, is := range f.Issues {
		where := fmt.Sprintf("issues[%d] %q", i, is.Title)
		if !slices.Contains(issues.Categories, is.Category) {
			errs = append(errs, fmt.Errorf("%s: unknown category %q", where, is.Category))
		}
		if !slices.Contains(issues.UrgencyLevels, is.Urgency) {
			errs = append(errs, fmt.Errorf("%s: unknown urgency %q", where, is.Urgency))
		}
		if is.Status != "" && !slices.Contains(issues.Statuses, is.Status) {
			errs = append(errs, fmt.Errorf("%s: unknown status %q", where, is.Status))
		}
		if _, ok := issuemap.ParseLocation(is.Location); !ok {
			errs = append(errs, fmt.Errorf("%s: location %q is not a valid lat,lng", where, is.Location))
		}
		if !users[is.Reporter] {
			errs = append(errs, fmt.Errorf("%s: reporter %q is not a seeded user", where, is.Reporter))
		}
		if is.AcceptedBy != "" && !orgs[is.AcceptedBy] {
			errs = append(errs, fmt.Errorf("%s: organization %q is not seeded", where, is.AcceptedBy))
		}
		if is.Status == issuemap.StatusAccepted && is.AcceptedBy == "" {
			errs = append(errs, fmt.Errorf("%s: accepted issues need accepted_by", where))
		}
		for _, l := range is.Likes {
			if !users[l] {
				errs = append(errs, fmt.Errorf("%s: like from %q who is not a seeded user", where, l))
			}
		}
	}

	for i, d := range f.Donations {
		where := fmt.Sprintf("donations[%d] %q", i, d.FoodType)
		if d.Weight <= 0 {
			errs = append(errs, fmt.Errorf("%s: weight must be positive", where))
		}
		if !users[d.Donor] {
			errs = append(errs, fmt.Errorf("%s: donor %q is not a seeded user", where, d.Donor))
		}
		if d.AcceptedBy != "" && !orgs[d.AcceptedBy] {
			errs = append(errs, fmt.Errorf("%s: organization %q is not seeded", where, d.AcceptedBy))
		}
	}

	return errors.Join(errs...)
}
