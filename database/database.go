package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB bundles the Mongo client with the collections the service uses. It is
// created once at startup and injected into the stores.
type DB struct {
	client *mongo.Client

	Users          *mongo.Collection
	Conversations  *mongo.Collection
	AgentProfiles  *mongo.Collection
	PeerNotes      *mongo.Collection
	Matches        *mongo.Collection
	Notifications  *mongo.Collection
	DirectMessages *mongo.Collection
}

func Connect(ctx context.Context, uri, name string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(name)
	return &DB{
		client:         client,
		Users:          db.Collection("users"),
		Conversations:  db.Collection("conversations"),
		AgentProfiles:  db.Collection("agent_profiles"),
		PeerNotes:      db.Collection("peer_notes"),
		Matches:        db.Collection("matches"),
		Notifications:  db.Collection("notifications"),
		DirectMessages: db.Collection("direct_messages"),
	}, nil
}

// EnsureIndexes creates the indexes the stores rely on. The unique compound
// indexes on peer notes and matches are load-bearing: they keep each ordered
// pair singular and surface create races as duplicate-key errors.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{db.Users, mongo.IndexModel{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique}},
		{db.Users, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{db.AgentProfiles, mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}}, Options: unique}},
		{db.PeerNotes, mongo.IndexModel{
			Keys:    bson.D{{Key: "agentUserId", Value: 1}, {Key: "aboutUserId", Value: 1}},
			Options: unique,
		}},
		{db.Matches, mongo.IndexModel{
			Keys:    bson.D{{Key: "userAId", Value: 1}, {Key: "userBId", Value: 1}},
			Options: unique,
		}},
		{db.Conversations, mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}}}},
		{db.Notifications, mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isRead", Value: 1}, {Key: "createdAt", Value: -1}}}},
		{db.DirectMessages, mongo.IndexModel{Keys: bson.D{{Key: "matchId", Value: 1}, {Key: "createdAt", Value: 1}}}},
	}

	for _, idx := range indexes {
		if _, err := idx.coll.Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.coll.Name(), err)
		}
	}
	return nil
}

func (db *DB) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return db.client.Disconnect(ctx)
}
