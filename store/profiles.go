package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jupiter/models"
)

type ProfileStore struct {
	coll *mongo.Collection
}

// Get returns the learned profile for a user. A user without a persisted row
// gets a well-defined empty profile; this never fails for an existing user.
func (s *ProfileStore) Get(ctx context.Context, userID primitive.ObjectID) (models.AgentProfile, error) {
	var profile models.AgentProfile
	err := s.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return models.AgentProfile{UserID: userID}, nil
	}
	if err != nil {
		return models.AgentProfile{}, fmt.Errorf("find agent profile: %w", err)
	}
	return profile, nil
}

// Put replaces the whole profile row in one write. Last writer wins when a
// relearn overlaps with another one.
func (s *ProfileStore) Put(ctx context.Context, profile models.AgentProfile) error {
	profile.UpdatedAt = time.Now().Unix()

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"userId": profile.UserID}, profile, opts); err != nil {
		return fmt.Errorf("upsert agent profile: %w", err)
	}
	return nil
}

// Candidates returns every other user whose agent has learned at least one
// field.
func (s *ProfileStore) Candidates(ctx context.Context, exclude primitive.ObjectID) ([]models.AgentProfile, error) {
	filter := bson.M{
		"userId": bson.M{"$ne": exclude},
		"$or": []bson.M{
			{"personalitySummary": bson.M{"$ne": ""}},
			{"interests": bson.M{"$ne": ""}},
			{"coreValues": bson.M{"$ne": ""}},
			{"communicationStyle": bson.M{"$ne": ""}},
			{"lookingFor": bson.M{"$ne": ""}},
			{"dealBreakers": bson.M{"$ne": ""}},
			{"rawNotes": bson.M{"$ne": ""}},
		},
	}

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []models.AgentProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return profiles, nil
}
