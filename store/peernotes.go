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

type PeerNoteStore struct {
	coll *mongo.Collection
}

// Get returns the note for the ordered (agent, subject) pair, or nil when the
// agent has never evaluated that user.
func (s *PeerNoteStore) Get(ctx context.Context, agentID, aboutID primitive.ObjectID) (*models.PeerNote, error) {
	var note models.PeerNote
	err := s.coll.FindOne(ctx, bson.M{"agentUserId": agentID, "aboutUserId": aboutID}).Decode(&note)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find peer note: %w", err)
	}
	return &note, nil
}

// Record upserts the note keyed on the ordered pair. The $inc runs on insert
// and update alike, so the evaluation counter starts at 1 and grows by
// exactly one per recorded evaluation.
func (s *PeerNoteStore) Record(ctx context.Context, note *models.PeerNote) error {
	filter := bson.M{"agentUserId": note.AgentUserID, "aboutUserId": note.AboutUserID}
	update := bson.M{
		"$set": bson.M{
			"score":      note.Score,
			"rationale":  note.Rationale,
			"recommends": note.Recommends,
			"updatedAt":  time.Now().Unix(),
		},
		"$inc": bson.M{"evaluationCount": 1},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := s.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("upsert peer note: %w", err)
	}
	return nil
}
