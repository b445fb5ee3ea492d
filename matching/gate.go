package matching

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"jupiter/models"
)

// ErrNotAuthorized covers every gate failure: missing match, unconfirmed
// match, or a sender outside the pair. Callers must not be able to tell
// which case they hit.
var ErrNotAuthorized = errors.New("not authorized for this conversation")

// AuthorizeThread checks that the user may read or post to the direct-message
// thread of the given match.
func AuthorizeThread(ctx context.Context, matches MatchStore, matchID, userID primitive.ObjectID) (*models.Match, error) {
	record, err := matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if record == nil || !record.CanMessage(userID) {
		return nil, ErrNotAuthorized
	}
	return record, nil
}
