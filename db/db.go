package db

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/TomTom4/kin/models"
)

var DB *gorm.DB

func GetDB() *gorm.DB {
	return DB
}

// Init establishes the DB connection. Only user accounts live in
// postgres; the appointment book is in-memory and never touches the
// database.
func Init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	DB = db
	log.Println("Database connection established")
}

// Migrate runs AutoMigrate for the account tables.
func Migrate() {
	if DB == nil {
		Init()
	}
	if err := DB.AutoMigrate(&models.User{}); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}
	log.Println("Migrations applied")
}
