package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"jupiter/models"
)

// recommendThreshold is the score at which a recommendation is derived when
// the model omits the explicit flag.
const recommendThreshold = 0.65

type textGenerator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Assessment is the oracle's verdict on one candidate.
type Assessment struct {
	Score     float64
	Rationale string
	Recommend bool
}

// Oracle asks the model to judge compatibility between the client's learned
// profile and a candidate's, optionally primed with the agent's prior note on
// that candidate.
type Oracle struct {
	gen    textGenerator
	logger *zap.Logger
}

func NewOracle(gen textGenerator, logger *zap.Logger) *Oracle {
	return &Oracle{gen: gen, logger: logger}
}

func (o *Oracle) Evaluate(ctx context.Context, client, candidate models.AgentProfile, prior *models.PeerNote) (Assessment, error) {
	prompt := buildOraclePrompt(client, candidate, prior)

	raw, err := o.gen.Generate(ctx, Request{
		System:      "You are a compatibility evaluation AI for a dating app. Be thorough but fair. Respond with JSON only.",
		Messages:    []Message{{Role: models.RoleUser, Content: prompt}},
		Temperature: 0.4,
		MaxTokens:   1024,
	})
	if err != nil {
		return Assessment{}, err
	}

	o.logger.Debug("compatibility response",
		zap.String("candidate", candidate.UserID.Hex()),
		zap.Int("response_length", len(raw)),
	)

	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return Assessment{}, fmt.Errorf("parse compatibility response: %w", err)
	}

	score := clamp01(coerceFloat(data["score"]))

	recommend := score >= recommendThreshold
	if v, ok := data["recommend"]; ok {
		recommend = coerceBool(v)
	}

	return Assessment{
		Score:     score,
		Rationale: stringField(data, "rationale", ""),
		Recommend: recommend,
	}, nil
}
