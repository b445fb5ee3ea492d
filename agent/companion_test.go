package agent

import (
	"context"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"jupiter/models"
)

func TestCompanionReplyUsesProfile(t *testing.T) {
	gen := &stubGenerator{response: "Tell me more about that!"}
	companion := NewCompanion(gen, zap.NewNop())

	profile := models.AgentProfile{
		UserID:             primitive.NewObjectID(),
		PersonalitySummary: "thoughtful introvert",
		Interests:          "astronomy",
	}

	reply, err := companion.Reply(context.Background(), profile, nil, "I saw Saturn last night")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Tell me more about that!" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	if !strings.Contains(gen.lastReq.System, "thoughtful introvert") || !strings.Contains(gen.lastReq.System, "astronomy") {
		t.Fatalf("learned profile missing from system prompt:\n%s", gen.lastReq.System)
	}
	if gen.lastReq.Temperature != 0.8 {
		t.Fatalf("unexpected temperature %v", gen.lastReq.Temperature)
	}

	last := gen.lastReq.Messages[len(gen.lastReq.Messages)-1]
	if last.Role != models.RoleUser || last.Content != "I saw Saturn last night" {
		t.Fatalf("user message must come last: %+v", last)
	}
}

func TestCompanionReplyEmptyProfile(t *testing.T) {
	gen := &stubGenerator{response: "Nice to meet you!"}
	companion := NewCompanion(gen, zap.NewNop())

	_, err := companion.Reply(context.Background(), models.AgentProfile{UserID: primitive.NewObjectID()}, nil, "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gen.lastReq.System, "Not yet known") {
		t.Fatalf("blank profile fields should render as unknown:\n%s", gen.lastReq.System)
	}
}

func TestCompanionReplyWindowsHistory(t *testing.T) {
	gen := &stubGenerator{response: "ok"}
	companion := NewCompanion(gen, zap.NewNop())

	history := make([]models.ChatMessage, companionWindow+5)
	for i := range history {
		history[i] = models.ChatMessage{Role: models.RoleUser, Content: "filler"}
	}

	if _, err := companion.Reply(context.Background(), models.AgentProfile{}, history, "new message"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(gen.lastReq.Messages); got != companionWindow+1 {
		t.Fatalf("expected %d messages after windowing, got %d", companionWindow+1, got)
	}
}
