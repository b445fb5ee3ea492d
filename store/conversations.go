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

type ConversationStore struct {
	coll *mongo.Collection
}

func (s *ConversationStore) Append(ctx context.Context, userID primitive.ObjectID, role, content string) (models.ChatMessage, error) {
	msg := models.ChatMessage{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().Unix(),
	}

	if _, err := s.coll.InsertOne(ctx, msg); err != nil {
		return models.ChatMessage{}, fmt.Errorf("insert chat message: %w", err)
	}
	return msg, nil
}

// List returns the user's whole conversation, oldest first.
func (s *ConversationStore) List(ctx context.Context, userID primitive.ObjectID) ([]models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	defer cursor.Close(ctx)

	messages := []models.ChatMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("decode conversation: %w", err)
	}
	return messages, nil
}

// Recent returns the last n messages in chronological order.
func (s *ConversationStore) Recent(ctx context.Context, userID primitive.ObjectID, n int) ([]models.ChatMessage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(n))

	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find recent conversation: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []models.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("decode recent conversation: %w", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *ConversationStore) Count(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("count conversation: %w", err)
	}
	return count, nil
}
