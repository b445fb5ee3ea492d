package agent

import (
	"context"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"jupiter/models"
)

func TestLearnerUpdatesProfile(t *testing.T) {
	gen := &stubGenerator{response: `{
		"personality_summary": "outgoing and direct",
		"interests": "rock climbing, sourdough baking",
		"core_values": "honesty",
		"communication_style": "playful",
		"looking_for": "someone adventurous",
		"deal_breakers": "smoking",
		"raw_notes": "mentioned a trip to Peru"
	}`}
	learner := NewLearner(gen, zap.NewNop())

	current := models.AgentProfile{UserID: primitive.NewObjectID()}
	history := []models.ChatMessage{
		{Role: models.RoleUser, Content: "I spent the weekend climbing"},
		{Role: models.RoleAssistant, Content: "How did it go?"},
	}

	got, err := learner.Learn(context.Background(), current, history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != current.UserID {
		t.Fatalf("user id must carry over, got %s", got.UserID.Hex())
	}
	if got.PersonalitySummary != "outgoing and direct" || got.DealBreakers != "smoking" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	prompt := gen.lastReq.Messages[0].Content
	if !strings.Contains(prompt, "I spent the weekend climbing") {
		t.Fatalf("conversation missing from prompt:\n%s", prompt)
	}
	if gen.lastReq.Temperature != 0.3 {
		t.Fatalf("unexpected temperature %v", gen.lastReq.Temperature)
	}
}

func TestLearnerKeepsFieldsTheModelOmits(t *testing.T) {
	gen := &stubGenerator{response: `{"interests": "chess"}`}
	learner := NewLearner(gen, zap.NewNop())

	current := models.AgentProfile{
		UserID:             primitive.NewObjectID(),
		PersonalitySummary: "reserved",
		LookingFor:         "quiet evenings",
	}

	got, err := learner.Learn(context.Background(), current, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Interests != "chess" {
		t.Fatalf("new field should be taken, got %q", got.Interests)
	}
	if got.PersonalitySummary != "reserved" || got.LookingFor != "quiet evenings" {
		t.Fatalf("omitted fields must keep previous values: %+v", got)
	}
}

func TestLearnerFencedResponse(t *testing.T) {
	gen := &stubGenerator{response: "```json\n{\"raw_notes\": \"likes dogs\"}\n```"}
	learner := NewLearner(gen, zap.NewNop())

	got, err := learner.Learn(context.Background(), models.AgentProfile{UserID: primitive.NewObjectID()}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RawNotes != "likes dogs" {
		t.Fatalf("unexpected notes: %q", got.RawNotes)
	}
}

func TestLearnerMalformedResponse(t *testing.T) {
	gen := &stubGenerator{response: "they seem nice"}
	learner := NewLearner(gen, zap.NewNop())

	if _, err := learner.Learn(context.Background(), models.AgentProfile{}, nil); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLearnerWindowsHistory(t *testing.T) {
	gen := &stubGenerator{response: `{}`}
	learner := NewLearner(gen, zap.NewNop())

	history := make([]models.ChatMessage, learnerWindow+10)
	for i := range history {
		history[i] = models.ChatMessage{Role: models.RoleUser, Content: "filler"}
	}
	history[0].Content = "ancient history"
	history[len(history)-1].Content = "latest news"

	if _, err := learner.Learn(context.Background(), models.AgentProfile{}, history); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := gen.lastReq.Messages[0].Content
	if strings.Contains(prompt, "ancient history") {
		t.Fatal("messages beyond the window must be dropped")
	}
	if !strings.Contains(prompt, "latest news") {
		t.Fatal("the newest message must be kept")
	}
}
