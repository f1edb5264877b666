package credentialRepo

import (
	"context"
	"fmt"
	"time"

	"slotbook/database"
	"slotbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCredentialRepo implements CredentialRepository against the users collection.
type MongoCredentialRepo struct {
	coll *mongo.Collection
}

// NewMongoCredentialRepo creates a new instance of CredentialRepository using MongoDB.
func NewMongoCredentialRepo() CredentialRepository {
	coll := database.MongoClient.Database("slotbook").Collection("users")
	return &MongoCredentialRepo{coll: coll}
}

// Get retrieves the calendar credential fields for a user.
func (r *MongoCredentialRepo) Get(ctx context.Context, userID string) (*models.CalendarCredential, error) {
	var cred models.CalendarCredential
	err := r.coll.FindOne(ctx, bson.M{"id": userID}).Decode(&cred)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user %s not found", userID)
		}
		return nil, fmt.Errorf("failed to fetch credential for user %s: %w", userID, err)
	}
	cred.UserID = userID
	return &cred, nil
}

// SaveTokens writes back a refreshed or newly exchanged token set atomically.
func (r *MongoCredentialRepo) SaveTokens(ctx context.Context, userID, accessToken, refreshToken string, expiresAt time.Time) error {
	set := bson.M{
		"google_access_token":       accessToken,
		"google_token_expires_at":   expiresAt,
		"google_calendar_connected": true,
	}
	if refreshToken != "" {
		set["google_refresh_token"] = refreshToken
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": userID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to save tokens for user %s: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", userID)
	}
	return nil
}

// Clear removes token material and marks the calendar disconnected.
func (r *MongoCredentialRepo) Clear(ctx context.Context, userID string) error {
	update := bson.M{
		"$set": bson.M{"google_calendar_connected": false},
		"$unset": bson.M{
			"google_access_token":     "",
			"google_refresh_token":    "",
			"google_token_expires_at": "",
		},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to clear credential for user %s: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", userID)
	}
	return nil
}
