package storage

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/models"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Booking{},
		&models.PropertyReview{},
		&models.UserReview{},
		&models.ForumPost{},
		&models.ForumComment{},
		&models.Report{},
		&models.Notification{},
	)

	// A tenant may hold at most one room booking in a non-terminal state.
	// The handler pre-check gives a friendly message; this index is the
	// guard that holds under concurrent creates.
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_single_active
		ON bookings (tenant_id)
		WHERE booking_type = 'booking'
		  AND status IN ('pending', 'approved', 'active')
		  AND deleted_at IS NULL;`)
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)
	return db
}
