package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn in a user's conversation with their own agent.
type ChatMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Role      string             `bson:"role" json:"role"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
}

// DirectMessage is a user-to-user message within a confirmed match's thread.
type DirectMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MatchID   primitive.ObjectID `bson:"matchId" json:"matchId"`
	SenderID  primitive.ObjectID `bson:"senderId" json:"senderId"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
}
