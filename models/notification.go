package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	NotificationMatchProposal  = "match_proposal"
	NotificationMatchConfirmed = "match_confirmed"
)

// Notification is an immutable event record owned by its recipient; only the
// read flag ever changes after creation.
type Notification struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID  `bson:"userId" json:"userId"`
	Type          string              `bson:"type" json:"type"`
	Title         string              `bson:"title" json:"title"`
	Message       string              `bson:"message" json:"message"`
	RelatedUserID *primitive.ObjectID `bson:"relatedUserId,omitempty" json:"relatedUserId,omitempty"`
	IsRead        bool                `bson:"isRead" json:"isRead"`
	CreatedAt     int64               `bson:"createdAt" json:"createdAt"`
}
