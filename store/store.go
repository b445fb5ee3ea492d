package store

import (
	"errors"

	"jupiter/database"
)

// ErrNotFound is returned when a lookup matches no document the caller is
// entitled to.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique index.
var ErrDuplicate = errors.New("already exists")

// Store bundles every mongo-backed store behind one injection point.
type Store struct {
	Users          *UserStore
	Profiles       *ProfileStore
	PeerNotes      *PeerNoteStore
	Matches        *MatchStore
	Notifications  *NotificationStore
	Conversations  *ConversationStore
	DirectMessages *DirectMessageStore
}

func New(db *database.DB) *Store {
	return &Store{
		Users:          &UserStore{coll: db.Users},
		Profiles:       &ProfileStore{coll: db.AgentProfiles},
		PeerNotes:      &PeerNoteStore{coll: db.PeerNotes},
		Matches:        &MatchStore{coll: db.Matches},
		Notifications:  &NotificationStore{coll: db.Notifications},
		Conversations:  &ConversationStore{coll: db.Conversations},
		DirectMessages: &DirectMessageStore{coll: db.DirectMessages},
	}
}
