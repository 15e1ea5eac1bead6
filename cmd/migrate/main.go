package main

import (
	"log"

	"rotape-service/configs"
	"rotape-service/configs/database"
)

func main() {
	cfg := configs.Load()

	db, err := database.NewMySQLDB(cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")
}
