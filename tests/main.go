// Seed tool: populates the local database with a demo user and a week of
// bookings for manual testing. Run with `go run ./tests`.
package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"slotbook/config"
	"slotbook/database"
	"slotbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadConfig()
	database.InitDB()
	client := database.MongoClient
	db := client.Database("slotbook")
	userColl := db.Collection("users")
	bookingColl := db.Collection("bookings")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Clear previous seed data.
	if _, err := userColl.DeleteMany(ctx, bson.M{"email": "demo@slotbook.dev"}); err != nil {
		log.Fatalf("Failed to clear demo user: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	now := time.Now().UTC()
	demoUser := models.User{
		ID:           uuid.New().String(),
		Email:        "demo@slotbook.dev",
		Name:         "Demo User",
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := userColl.InsertOne(ctx, demoUser); err != nil {
		log.Fatalf("Failed to insert demo user: %v", err)
	}

	if _, err := bookingColl.DeleteMany(ctx, bson.M{"user_id": demoUser.ID}); err != nil {
		log.Fatalf("Failed to clear demo bookings: %v", err)
	}

	// Seed a few non-overlapping bookings per day for the coming week.
	names := []string{"Standup", "Design Review", "1:1", "Focus Block", "Planning"}
	var seeded int
	for day := 1; day <= 7; day++ {
		date := now.AddDate(0, 0, day).Truncate(24 * time.Hour)
		hour := 9
		for i := 0; i < 3; i++ {
			duration := time.Duration(30+rand.Intn(3)*30) * time.Minute
			start := date.Add(time.Duration(hour) * time.Hour)
			booking := models.Booking{
				ID:        uuid.New().String(),
				UserID:    demoUser.ID,
				Name:      names[rand.Intn(len(names))],
				Start:     start,
				End:       start.Add(duration),
				CreatedAt: now,
			}
			if _, err := bookingColl.InsertOne(ctx, booking); err != nil {
				log.Fatalf("Failed to insert booking: %v", err)
			}
			seeded++
			hour += 2
		}
	}

	log.Printf("Seeded demo user %s with %d bookings", demoUser.Email, seeded)
}
