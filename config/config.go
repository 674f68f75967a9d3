package config

import (
	"log"
	"os"

	"covoiturage-api/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens, read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "covoiturage_super_secret_2024"))

// UploadDir is where trip and profile photos land
var UploadDir = getEnv("UPLOAD_DIR", "uploads")

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(getEnv("DB_PATH", "covoiturage.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated successfully")
}

// Migrate applies the schema; also used by tests against in-memory DBs
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.Booking{},
		&models.TripRequest{},
		&models.Notification{},
		&models.Feedback{},
	)
}

// EnsureAdmin seeds the admin account from env. The register endpoint
// refuses the admin role, so this is the only way one comes to exist.
func EnsureAdmin(db *gorm.DB) error {
	email := getEnv("ADMIN_EMAIL", "admin@covoiturage.local")
	password := getEnv("ADMIN_PASSWORD", "")
	if password == "" {
		return nil
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	return db.Create(&admin).Error
}
