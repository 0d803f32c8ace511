package config

import (
	"log"
	"os"
	"strconv"

	"github.com/asharbutt0314/foodexpress/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret []byte

// SMTP holds the outbound mail settings.
type SMTP struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

var Mail SMTP

// UploadDir is where product and restaurant images land.
var UploadDir string

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// Load reads .env (if present) and populates the package-level settings.
func Load() {
	_ = godotenv.Load()

	JWTSecret = []byte(getEnv("JWT_SECRET", "foodexpress_super_secret_2024"))
	UploadDir = getEnv("UPLOAD_DIR", "uploads")

	Mail = SMTP{
		Host: getEnv("SMTP_HOST", "smtp.gmail.com"),
		Port: getEnvInt("SMTP_PORT", 587),
		User: os.Getenv("EMAIL_USER"),
		Pass: os.Getenv("EMAIL_PASS"),
		From: getEnv("EMAIL_FROM", os.Getenv("EMAIL_USER")),
	}
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(getEnv("DB_PATH", "foodexpress.db")), &gorm.Config{
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

// Migrate applies the schema. Split out so tests can run it against
// an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
}
