package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// PeerNote is one agent's private assessment of another user. There is at most
// one note per ordered (agent, subject) pair; re-evaluations overwrite it and
// bump EvaluationCount by one.
type PeerNote struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AgentUserID     primitive.ObjectID `bson:"agentUserId" json:"agentUserId"`
	AboutUserID     primitive.ObjectID `bson:"aboutUserId" json:"aboutUserId"`
	Score           float64            `bson:"score" json:"score"`
	Rationale       string             `bson:"rationale" json:"rationale"`
	Recommends      bool               `bson:"recommends" json:"recommends"`
	EvaluationCount int                `bson:"evaluationCount" json:"evaluationCount"`
	UpdatedAt       int64              `bson:"updatedAt" json:"updatedAt"`
}
