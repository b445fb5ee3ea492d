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

type DirectMessageStore struct {
	coll *mongo.Collection
}

func (s *DirectMessageStore) Create(ctx context.Context, matchID, senderID primitive.ObjectID, content string) (models.DirectMessage, error) {
	msg := models.DirectMessage{
		ID:        primitive.NewObjectID(),
		MatchID:   matchID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now().Unix(),
	}

	if _, err := s.coll.InsertOne(ctx, msg); err != nil {
		return models.DirectMessage{}, fmt.Errorf("insert direct message: %w", err)
	}
	return msg, nil
}

func (s *DirectMessageStore) ListForMatch(ctx context.Context, matchID primitive.ObjectID) ([]models.DirectMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := s.coll.Find(ctx, bson.M{"matchId": matchID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find direct messages: %w", err)
	}
	defer cursor.Close(ctx)

	messages := []models.DirectMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("decode direct messages: %w", err)
	}
	return messages, nil
}
