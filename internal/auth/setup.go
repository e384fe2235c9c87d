package auth

import (
	"log"

	"github.com/CityPulse/CityPulse-Backend/internal/db"
)

// Init migrates app_auth.users. Emails are unique regardless of case, since
// identity providers do not agree on casing.
func Init() {
	if err := db.EnsureSchema(db.DB, "app_auth"); err != nil {
		log.Fatal("Failed to ensure schema app_auth: ", err)
	}

	if err := db.DB.AutoMigrate(&User{}); err != nil {
		log.Fatal("Failed to auto-migrate app_auth.users: ", err)
	}

	err := db.DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON app_auth.users (lower(email))`).Error
	if err != nil {
		log.Fatal("Failed to create email index: ", err)
	}
	log.Println("[auth] identity tables ready")
}
