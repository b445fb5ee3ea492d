package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jupiter/matching"
	"jupiter/models"
)

type MatchStore struct {
	coll *mongo.Collection
}

func (s *MatchStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Match, error) {
	var record models.Match
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find match: %w", err)
	}
	return &record, nil
}

// ForPair finds the record for an unordered pair, whichever order it was
// stored in.
func (s *MatchStore) ForPair(ctx context.Context, x, y primitive.ObjectID) (*models.Match, error) {
	filter := bson.M{"$or": []bson.M{
		{"userAId": x, "userBId": y},
		{"userAId": y, "userBId": x},
	}}

	var record models.Match
	err := s.coll.FindOne(ctx, filter).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find match for pair: %w", err)
	}
	return &record, nil
}

// Create inserts a new match record. Callers pass the pair in canonical
// order so the unique index collides for concurrent creates of the same
// unordered pair, whichever side runs first.
func (s *MatchStore) Create(ctx context.Context, m *models.Match) error {
	now := time.Now().Unix()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return matching.ErrDuplicatePair
		}
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

// SetApproval flips one slot's approval flag to true, then confirms the match
// with a guarded update that only fires when both flags are true and the
// record is not yet confirmed. The guard makes confirmation happen exactly
// once even when both sides' passes race, and never un-confirms.
func (s *MatchStore) SetApproval(ctx context.Context, id primitive.ObjectID, slot models.MatchSlot) (*models.Match, bool, error) {
	field := "agentAApproves"
	if slot == models.SlotB {
		field = "agentBApproves"
	}
	now := time.Now().Unix()

	if _, err := s.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{field: true, "updatedAt": now}}); err != nil {
		return nil, false, fmt.Errorf("set approval: %w", err)
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "agentAApproves": true, "agentBApproves": true, "confirmed": false},
		bson.M{"$set": bson.M{"confirmed": true, "updatedAt": now}},
	)
	if err != nil {
		return nil, false, fmt.Errorf("confirm match: %w", err)
	}
	confirmedNow := res.ModifiedCount == 1

	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if record == nil {
		return nil, false, fmt.Errorf("match %s missing after approval", id.Hex())
	}
	return record, confirmedNow, nil
}

// ListForUser returns the user's match records, confirmed ones first, newest
// activity first.
func (s *MatchStore) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Match, error) {
	filter := bson.M{"$or": []bson.M{
		{"userAId": userID},
		{"userBId": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "confirmed", Value: -1}, {Key: "updatedAt", Value: -1}})

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.Match
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}
	return records, nil
}
