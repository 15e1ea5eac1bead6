package main

import (
	"log"
	"time"

	"rotape-service/configs"
	"rotape-service/configs/database"
	"rotape-service/internal/ports/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a finished demo event with four paid participants, ready for
// preference submission and match resolution.
func main() {
	cfg := configs.Load()

	db, err := database.NewMySQLDB(cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	event := models.Event{
		Title:    "Friday Rotation Night",
		Venue:    "Gangnam Lounge",
		StartsAt: time.Now().Add(-5 * time.Hour),
		EndsAt:   time.Now().Add(-1 * time.Hour),
	}
	if err := db.Create(&event).Error; err != nil {
		log.Fatalf("Failed to seed event: %v", err)
	}

	organizerHash, _ := bcrypt.GenerateFromPassword([]byte("organizer-pass"), bcrypt.DefaultCost)
	organizer := models.User{
		Username: "organizer",
		Email:    "organizer@example.com",
		Password: string(organizerHash),
		Role:     models.RoleOrganizer,
		IsActive: true,
	}
	if err := db.Create(&organizer).Error; err != nil {
		log.Fatalf("Failed to seed organizer: %v", err)
	}

	participants := []struct {
		username string
		gender   string
	}{
		{"alice", models.GenderFemale},
		{"bob", models.GenderMale},
		{"clara", models.GenderFemale},
		{"dan", models.GenderMale},
	}

	for _, p := range participants {
		hash, _ := bcrypt.GenerateFromPassword([]byte(p.username+"-pass"), bcrypt.DefaultCost)
		user := models.User{
			Username: p.username,
			Email:    p.username + "@example.com",
			Password: string(hash),
			Role:     models.RoleParticipant,
			IsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to seed user %s: %v", p.username, err)
		}

		app := models.Application{
			AppKey:  uuid.NewString(),
			EventID: event.ID,
			UID:     user.ID,
			Gender:  p.gender,
			Status:  models.StatusPaid,
		}
		if err := db.Create(&app).Error; err != nil {
			log.Fatalf("Failed to seed application for %s: %v", p.username, err)
		}
	}

	log.Printf("Seeded event %d with %d paid participants", event.ID, len(participants))
}
