package agent

import (
	"context"

	"go.uber.org/zap"

	"jupiter/models"
)

// companionWindow is how many recent turns the companion sees on each reply.
const companionWindow = 20

// Companion is the user-facing conversational agent.
type Companion struct {
	gen    textGenerator
	logger *zap.Logger
}

func NewCompanion(gen textGenerator, logger *zap.Logger) *Companion {
	return &Companion{gen: gen, logger: logger}
}

// Reply generates the agent's next message given the learned profile, recent
// history and the user's new message.
func (c *Companion) Reply(ctx context.Context, profile models.AgentProfile, history []models.ChatMessage, userMessage string) (string, error) {
	if len(history) > companionWindow {
		history = history[len(history)-companionWindow:]
	}

	messages := make([]Message, 0, len(history)+1)
	for _, msg := range history {
		messages = append(messages, Message{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, Message{Role: models.RoleUser, Content: userMessage})

	c.logger.Debug("companion reply request",
		zap.String("user", profile.UserID.Hex()),
		zap.Int("history", len(history)),
	)

	return c.gen.Generate(ctx, Request{
		System:      buildCompanionSystem(profile),
		Messages:    messages,
		Temperature: 0.8,
		MaxTokens:   1024,
	})
}
