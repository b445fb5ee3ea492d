package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"jupiter/models"
)

// learnerWindow bounds how much recent conversation the learner re-reads.
const learnerWindow = 30

// Learner re-derives a user's learned profile from their conversation with
// their agent. Fields the model omits keep their previous values; the result
// replaces the profile row in one write.
type Learner struct {
	gen    textGenerator
	logger *zap.Logger
}

func NewLearner(gen textGenerator, logger *zap.Logger) *Learner {
	return &Learner{gen: gen, logger: logger}
}

func (l *Learner) Learn(ctx context.Context, current models.AgentProfile, history []models.ChatMessage) (models.AgentProfile, error) {
	if len(history) > learnerWindow {
		history = history[len(history)-learnerWindow:]
	}

	var transcript strings.Builder
	for _, msg := range history {
		transcript.WriteString(msg.Role)
		transcript.WriteString(": ")
		transcript.WriteString(msg.Content)
		transcript.WriteString("\n")
	}

	prompt := buildLearnerPrompt(current, transcript.String())

	raw, err := l.gen.Generate(ctx, Request{
		System:      "You are a profile analysis AI. You extract personality traits, interests, values, and preferences from conversations. Always respond with valid JSON only.",
		Messages:    []Message{{Role: models.RoleUser, Content: prompt}},
		Temperature: 0.3,
		MaxTokens:   2048,
	})
	if err != nil {
		return models.AgentProfile{}, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return models.AgentProfile{}, fmt.Errorf("parse profile update: %w", err)
	}

	l.logger.Debug("profile relearned", zap.String("user", current.UserID.Hex()))

	return models.AgentProfile{
		UserID:             current.UserID,
		PersonalitySummary: stringField(data, "personality_summary", current.PersonalitySummary),
		Interests:          stringField(data, "interests", current.Interests),
		CoreValues:         stringField(data, "core_values", current.CoreValues),
		CommunicationStyle: stringField(data, "communication_style", current.CommunicationStyle),
		LookingFor:         stringField(data, "looking_for", current.LookingFor),
		DealBreakers:       stringField(data, "deal_breakers", current.DealBreakers),
		RawNotes:           stringField(data, "raw_notes", current.RawNotes),
	}, nil
}
