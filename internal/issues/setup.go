package issues

import (
	"log"

	"github.com/CityPulse/CityPulse-Backend/internal/db"
)

// Init migrates the issue tables. auth.Init and orgs.Init must run first so
// the foreign keys have targets.
func Init() {
	if err := db.EnsureSchema(db.DB, "civic"); err != nil {
		log.Fatal("Failed to ensure schema civic: ", err)
	}

	if err := db.DB.AutoMigrate(&Issue{}, &Like{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
