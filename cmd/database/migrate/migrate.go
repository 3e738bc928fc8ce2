package migration

import (
	entities2 "NutriMind-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities2.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.DietProfile{}); err != nil {
		log.Fatalf("Error migrating diet profile database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.DietRecommendation{}); err != nil {
		log.Fatalf("Error migrating diet recommendation database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.UserUsage{}); err != nil {
		log.Fatalf("Error migrating user usage database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.Subscriber{}); err != nil {
		log.Fatalf("Error migrating subscriber database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.Transaction{}); err != nil {
		log.Fatalf("Error migrating transaction database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
