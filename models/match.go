package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MatchSlot identifies which side of a match record a user occupies.
type MatchSlot int

const (
	SlotA MatchSlot = iota
	SlotB
)

// Match is the shared pairwise state between two users' agents. The pair is
// stored in canonical order (see OrderPair); with that ordering the unique
// index on (userAId, userBId) keeps each unordered pair singular. Confirmed
// is sticky: once both approval flags are true it is set and never cleared.
type Match struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserAID        primitive.ObjectID `bson:"userAId" json:"userAId"`
	UserBID        primitive.ObjectID `bson:"userBId" json:"userBId"`
	AgentAApproves bool               `bson:"agentAApproves" json:"agentAApproves"`
	AgentBApproves bool               `bson:"agentBApproves" json:"agentBApproves"`
	Confirmed      bool               `bson:"confirmed" json:"confirmed"`
	CreatedAt      int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt      int64              `bson:"updatedAt" json:"updatedAt"`

	// Populated in responses only.
	OtherUser *PublicUser `bson:"-" json:"otherUser,omitempty"`
}

// OrderPair returns two user ids in canonical storage order (smaller id
// first). Match records always store the pair this way, so both sides of a
// racing create produce the same ordered pair and the unique index on
// (userAId, userBId) collides instead of admitting a mirrored duplicate.
func OrderPair(x, y primitive.ObjectID) (primitive.ObjectID, primitive.ObjectID) {
	if x.Hex() <= y.Hex() {
		return x, y
	}
	return y, x
}

// SlotOf returns which slot the given user occupies. A record has no inherent
// direction, so callers must branch on membership rather than assume a role.
func (m *Match) SlotOf(userID primitive.ObjectID) (MatchSlot, bool) {
	switch userID {
	case m.UserAID:
		return SlotA, true
	case m.UserBID:
		return SlotB, true
	default:
		return 0, false
	}
}

// OtherUserID returns the user on the opposite side of the record.
func (m *Match) OtherUserID(userID primitive.ObjectID) (primitive.ObjectID, bool) {
	slot, ok := m.SlotOf(userID)
	if !ok {
		return primitive.NilObjectID, false
	}
	if slot == SlotA {
		return m.UserBID, true
	}
	return m.UserAID, true
}

// CanMessage reports whether the user may read or post to this match's direct
// message thread: the match must be confirmed and the user a participant.
func (m *Match) CanMessage(userID primitive.ObjectID) bool {
	if !m.Confirmed {
		return false
	}
	_, ok := m.SlotOf(userID)
	return ok
}
