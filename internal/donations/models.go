package donations

import (
	"time"

	"github.com/CityPulse/CityPulse-Backend/internal/auth"
	"github.com/CityPulse/CityPulse-Backend/internal/orgs"
)

// FoodDonation is owned by its donor. Only the donor and admins may read it.
type FoodDonation struct {
	ID              string    `gorm:"type:uuid;primaryKey" json:"id"`
	FoodType        string    `gorm:"not null" json:"foodType"`
	Weight          float64   `gorm:"not null" json:"weight"`
	PickupAddress   string    `gorm:"not null" json:"pickupAddress"`
	PhotoURL        string    `gorm:"column:photo_url;not null" json:"photoURL"`
	Description     string    `gorm:"not null" json:"description"`
	DonorUserID     string    `gorm:"type:uuid;not null;index" json:"donorUserId"`
	AcceptedByOrgID *string   `gorm:"type:uuid;index" json:"acceptedByOrgId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	Donor         *auth.User         `gorm:"foreignKey:DonorUserID" json:"-"`
	AcceptedByOrg *orgs.Organization `gorm:"foreignKey:AcceptedByOrgID" json:"-"`
}

func (FoodDonation) TableName() string { return "civic.food_donations" }

type donationResponse struct {
	FoodDonation
	Donor         *auth.Summary `json:"donor,omitempty"`
	AcceptedByOrg *orgs.Summary `json:"acceptedByOrg,omitempty"`
}

func toResponse(d FoodDonation) donationResponse {
	resp := donationResponse{FoodDonation: d}
	if d.Donor != nil {
		s := d.Donor.Summary()
		resp.Donor = &s
	}
	if d.AcceptedByOrg != nil {
		s := d.AcceptedByOrg.Summary()
		resp.AcceptedByOrg = &s
	}
	return resp
}
