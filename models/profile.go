package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AgentProfile is what a user's agent has learned about them from conversation.
// All fields are free text; empty means "not yet known". Only the profile
// learner writes these fields.
type AgentProfile struct {
	UserID             primitive.ObjectID `bson:"userId" json:"userId"`
	PersonalitySummary string             `bson:"personalitySummary" json:"personalitySummary"`
	Interests          string             `bson:"interests" json:"interests"`
	CoreValues         string             `bson:"coreValues" json:"coreValues"`
	CommunicationStyle string             `bson:"communicationStyle" json:"communicationStyle"`
	LookingFor         string             `bson:"lookingFor" json:"lookingFor"`
	DealBreakers       string             `bson:"dealBreakers" json:"dealBreakers"`
	RawNotes           string             `bson:"rawNotes" json:"rawNotes"`
	UpdatedAt          int64              `bson:"updatedAt" json:"updatedAt"`
}

// HasSignal reports whether the agent has learned anything at all. Matching
// refuses to run for a user whose agent knows nothing.
func (p *AgentProfile) HasSignal() bool {
	fields := []string{
		p.PersonalitySummary,
		p.Interests,
		p.CoreValues,
		p.CommunicationStyle,
		p.LookingFor,
		p.DealBreakers,
		p.RawNotes,
	}
	for _, f := range fields {
		if f != "" {
			return true
		}
	}
	return false
}
