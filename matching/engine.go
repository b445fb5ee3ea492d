package matching

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"jupiter/agent"
	"jupiter/models"
)

// ErrInsufficientSignal is returned when the acting user's agent has not
// learned anything about them yet.
var ErrInsufficientSignal = errors.New("agent profile has no signal yet")

// ErrDuplicatePair is returned by MatchStore.Create when a record for the
// ordered pair already exists. The engine treats it as losing a create race
// and falls back to the update path.
var ErrDuplicatePair = errors.New("match record already exists for pair")

// Oracle judges compatibility between the acting user and one candidate.
type Oracle interface {
	Evaluate(ctx context.Context, client, candidate models.AgentProfile, prior *models.PeerNote) (agent.Assessment, error)
}

// ProfileStore provides learned profiles. Get returns an empty default for
// users without a persisted row; Candidates returns every other user whose
// profile has at least one learned field.
type ProfileStore interface {
	Get(ctx context.Context, userID primitive.ObjectID) (models.AgentProfile, error)
	Candidates(ctx context.Context, exclude primitive.ObjectID) ([]models.AgentProfile, error)
}

// PeerNoteStore persists directed evaluation notes. Record upserts by the
// ordered (agent, subject) pair and increments the evaluation counter by one.
type PeerNoteStore interface {
	Get(ctx context.Context, agentID, aboutID primitive.ObjectID) (*models.PeerNote, error)
	Record(ctx context.Context, note *models.PeerNote) error
}

// MatchStore persists pairwise match records. Records are always created in
// canonical pair order (models.OrderPair), which makes the ordered-pair
// unique index an unordered-pair constraint. ForPair looks the pair up in
// either order and returns nil when absent. SetApproval flips one slot's flag
// to true and reports whether that write confirmed the match (both flags true
// for the first time).
type MatchStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Match, error)
	ForPair(ctx context.Context, x, y primitive.ObjectID) (*models.Match, error)
	Create(ctx context.Context, m *models.Match) error
	SetApproval(ctx context.Context, id primitive.ObjectID, slot models.MatchSlot) (*models.Match, bool, error)
}

// NotificationStore is the engine's side-effect sink.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
}

// UserDirectory resolves display names for notification copy.
type UserDirectory interface {
	DisplayName(ctx context.Context, id primitive.ObjectID) (string, error)
}

// Status aggregates one matching pass.
type Status struct {
	Evaluated          int `json:"evaluated"`
	NewRecommendations int `json:"newRecommendations"`
	NewMatches         int `json:"newMatches"`
}

// Engine runs one user's agent against all candidate users and advances the
// pairwise match state machine. Each candidate is an independent unit of
// work: oracle failures skip the candidate, storage failures abort the pass.
type Engine struct {
	profiles ProfileStore
	notes    PeerNoteStore
	matches  MatchStore
	notify   NotificationStore
	users    UserDirectory
	oracle   Oracle
	logger   *zap.Logger
}

func NewEngine(profiles ProfileStore, notes PeerNoteStore, matches MatchStore, notify NotificationStore, users UserDirectory, oracle Oracle, logger *zap.Logger) *Engine {
	return &Engine{
		profiles: profiles,
		notes:    notes,
		matches:  matches,
		notify:   notify,
		users:    users,
		oracle:   oracle,
		logger:   logger,
	}
}

// Run evaluates every candidate for the acting user. No lock is held across
// oracle calls; each candidate's writes stand alone, so an interrupted pass
// is resumable by simply running again.
func (e *Engine) Run(ctx context.Context, actingUser primitive.ObjectID) (Status, error) {
	var status Status

	profile, err := e.profiles.Get(ctx, actingUser)
	if err != nil {
		return status, fmt.Errorf("load acting profile: %w", err)
	}
	if !profile.HasSignal() {
		return status, ErrInsufficientSignal
	}

	candidates, err := e.profiles.Candidates(ctx, actingUser)
	if err != nil {
		return status, fmt.Errorf("load candidates: %w", err)
	}

	for _, candidate := range candidates {
		if candidate.UserID == actingUser {
			continue
		}

		prior, err := e.notes.Get(ctx, actingUser, candidate.UserID)
		if err != nil {
			return status, fmt.Errorf("load peer note: %w", err)
		}

		assessment, err := e.oracle.Evaluate(ctx, profile, candidate, prior)
		if err != nil {
			e.logger.Warn("compatibility evaluation failed, skipping candidate",
				zap.String("acting_user", actingUser.Hex()),
				zap.String("candidate", candidate.UserID.Hex()),
				zap.Error(err),
			)
			continue
		}
		status.Evaluated++

		note := &models.PeerNote{
			AgentUserID: actingUser,
			AboutUserID: candidate.UserID,
			Score:       assessment.Score,
			Rationale:   assessment.Rationale,
			Recommends:  assessment.Recommend,
		}
		if err := e.notes.Record(ctx, note); err != nil {
			return status, fmt.Errorf("record peer note: %w", err)
		}

		if !assessment.Recommend {
			continue
		}
		status.NewRecommendations++

		confirmed, err := e.advanceMatch(ctx, actingUser, candidate.UserID, assessment.Score)
		if err != nil {
			return status, err
		}
		if confirmed {
			status.NewMatches++
		}
	}

	return status, nil
}

// advanceMatch moves the pair's record one step: create-and-propose when the
// pair has no record, otherwise approve the acting user's own slot. Returns
// whether this call confirmed the match.
func (e *Engine) advanceMatch(ctx context.Context, actingUser, otherUser primitive.ObjectID, score float64) (bool, error) {
	record, err := e.matches.ForPair(ctx, actingUser, otherUser)
	if err != nil {
		return false, fmt.Errorf("load match record: %w", err)
	}

	if record == nil {
		a, b := models.OrderPair(actingUser, otherUser)
		record = &models.Match{UserAID: a, UserBID: b}
		if a == actingUser {
			record.AgentAApproves = true
		} else {
			record.AgentBApproves = true
		}
		err := e.matches.Create(ctx, record)
		if err == nil {
			return false, e.notifyProposal(ctx, actingUser, otherUser, score)
		}
		if !errors.Is(err, ErrDuplicatePair) {
			return false, fmt.Errorf("create match record: %w", err)
		}

		// Lost the race against the other side's pass; the record exists
		// now, so take the update path.
		record, err = e.matches.ForPair(ctx, actingUser, otherUser)
		if err != nil {
			return false, fmt.Errorf("reload match record: %w", err)
		}
		if record == nil {
			return false, fmt.Errorf("match record for %s/%s missing after duplicate-pair conflict", actingUser.Hex(), otherUser.Hex())
		}
	}

	slot, ok := record.SlotOf(actingUser)
	if !ok {
		return false, fmt.Errorf("acting user %s does not occupy either slot of match %s", actingUser.Hex(), record.ID.Hex())
	}

	_, confirmedNow, err := e.matches.SetApproval(ctx, record.ID, slot)
	if err != nil {
		return false, fmt.Errorf("set approval: %w", err)
	}

	if confirmedNow {
		if err := e.notifyConfirmed(ctx, actingUser, otherUser); err != nil {
			return true, err
		}
	}
	return confirmedNow, nil
}

func (e *Engine) notifyProposal(ctx context.Context, actingUser, otherUser primitive.ObjectID, score float64) error {
	actingName := e.displayName(ctx, actingUser)

	n := &models.Notification{
		UserID:        otherUser,
		Type:          models.NotificationMatchProposal,
		Title:         "New Match Suggestion!",
		Message:       fmt.Sprintf("Your agent has been contacted by %s's agent. They think you might be a great match! (Compatibility: %.0f%%)", actingName, score*100),
		RelatedUserID: &actingUser,
	}
	if err := e.notify.Create(ctx, n); err != nil {
		return fmt.Errorf("emit proposal notification: %w", err)
	}
	return nil
}

func (e *Engine) notifyConfirmed(ctx context.Context, actingUser, otherUser primitive.ObjectID) error {
	actingName := e.displayName(ctx, actingUser)
	otherName := e.displayName(ctx, otherUser)

	pairs := []struct {
		recipient primitive.ObjectID
		related   primitive.ObjectID
		name      string
	}{
		{actingUser, otherUser, otherName},
		{otherUser, actingUser, actingName},
	}

	for _, p := range pairs {
		related := p.related
		n := &models.Notification{
			UserID:        p.recipient,
			Type:          models.NotificationMatchConfirmed,
			Title:         "It's a Match!",
			Message:       fmt.Sprintf("Both agents agree: you and %s could be amazing together! You can now chat directly.", p.name),
			RelatedUserID: &related,
		}
		if err := e.notify.Create(ctx, n); err != nil {
			return fmt.Errorf("emit confirmation notification: %w", err)
		}
	}
	return nil
}

func (e *Engine) displayName(ctx context.Context, id primitive.ObjectID) string {
	name, err := e.users.DisplayName(ctx, id)
	if err != nil || name == "" {
		return "Someone"
	}
	return name
}
