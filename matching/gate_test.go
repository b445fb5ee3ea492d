package matching

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"jupiter/models"
)

func TestAuthorizeThreadConfirmedParticipant(t *testing.T) {
	matches := &fakeMatches{records: make(map[primitive.ObjectID]*models.Match)}
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	id := matches.seed(models.Match{
		UserAID:        a,
		UserBID:        b,
		AgentAApproves: true,
		AgentBApproves: true,
		Confirmed:      true,
	})

	for _, user := range []primitive.ObjectID{a, b} {
		record, err := AuthorizeThread(context.Background(), matches, id, user)
		if err != nil {
			t.Fatalf("participant %s should be authorized: %v", user.Hex(), err)
		}
		if record.ID != id {
			t.Fatalf("wrong record returned: %+v", record)
		}
	}
}

func TestAuthorizeThreadUnconfirmedMatch(t *testing.T) {
	matches := &fakeMatches{records: make(map[primitive.ObjectID]*models.Match)}
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	id := matches.seed(models.Match{UserAID: a, UserBID: b, AgentAApproves: true})

	for _, user := range []primitive.ObjectID{a, b} {
		if _, err := AuthorizeThread(context.Background(), matches, id, user); !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("proposed match must stay locked, got %v", err)
		}
	}
}

func TestAuthorizeThreadStranger(t *testing.T) {
	matches := &fakeMatches{records: make(map[primitive.ObjectID]*models.Match)}
	id := matches.seed(models.Match{
		UserAID:        primitive.NewObjectID(),
		UserBID:        primitive.NewObjectID(),
		AgentAApproves: true,
		AgentBApproves: true,
		Confirmed:      true,
	})

	if _, err := AuthorizeThread(context.Background(), matches, id, primitive.NewObjectID()); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("stranger must be rejected, got %v", err)
	}
}

func TestAuthorizeThreadMissingMatch(t *testing.T) {
	matches := &fakeMatches{records: make(map[primitive.ObjectID]*models.Match)}

	if _, err := AuthorizeThread(context.Background(), matches, primitive.NewObjectID(), primitive.NewObjectID()); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("missing match must look identical to denial, got %v", err)
	}
}
