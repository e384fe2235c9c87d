package donations

import (
	"log"

	"github.com/CityPulse/CityPulse-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "civic"); err != nil {
		log.Fatal("Failed to ensure schema civic: ", err)
	}

	if err := db.DB.AutoMigrate(&FoodDonation{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
