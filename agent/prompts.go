package agent

import (
	"fmt"
	"strings"

	_ "embed"

	"jupiter/models"
)

//go:embed prompts/companion.md
var companionTemplate string

//go:embed prompts/learner.md
var learnerTemplate string

//go:embed prompts/oracle.md
var oracleTemplate string

const notYetKnown = "Not yet known"

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return notYetKnown
	}
	return s
}

func buildCompanionSystem(profile models.AgentProfile) string {
	notes := profile.RawNotes
	if strings.TrimSpace(notes) == "" {
		notes = "None yet"
	}

	r := strings.NewReplacer(
		"{{PERSONALITY}}", orUnknown(profile.PersonalitySummary),
		"{{INTERESTS}}", orUnknown(profile.Interests),
		"{{VALUES}}", orUnknown(profile.CoreValues),
		"{{COMMUNICATION_STYLE}}", orUnknown(profile.CommunicationStyle),
		"{{LOOKING_FOR}}", orUnknown(profile.LookingFor),
		"{{DEAL_BREAKERS}}", orUnknown(profile.DealBreakers),
		"{{NOTES}}", notes,
	)
	return r.Replace(companionTemplate)
}

func buildLearnerPrompt(profile models.AgentProfile, transcript string) string {
	r := strings.NewReplacer(
		"{{PERSONALITY}}", profile.PersonalitySummary,
		"{{INTERESTS}}", profile.Interests,
		"{{VALUES}}", profile.CoreValues,
		"{{COMMUNICATION_STYLE}}", profile.CommunicationStyle,
		"{{LOOKING_FOR}}", profile.LookingFor,
		"{{DEAL_BREAKERS}}", profile.DealBreakers,
		"{{NOTES}}", profile.RawNotes,
		"{{CONVERSATION}}", transcript,
	)
	return r.Replace(learnerTemplate)
}

func buildOraclePrompt(client, candidate models.AgentProfile, prior *models.PeerNote) string {
	previous := "\nThis is the first evaluation."
	if prior != nil {
		previous = fmt.Sprintf(
			"\nPrevious evaluation notes: %s\nPrevious compatibility score: %.0f%%\nTimes evaluated: %d",
			prior.Rationale, prior.Score*100, prior.EvaluationCount,
		)
	}

	r := strings.NewReplacer(
		"{{CLIENT_PERSONALITY}}", client.PersonalitySummary,
		"{{CLIENT_INTERESTS}}", client.Interests,
		"{{CLIENT_VALUES}}", client.CoreValues,
		"{{CLIENT_COMMUNICATION_STYLE}}", client.CommunicationStyle,
		"{{CLIENT_LOOKING_FOR}}", client.LookingFor,
		"{{CLIENT_DEAL_BREAKERS}}", client.DealBreakers,
		"{{CANDIDATE_PERSONALITY}}", candidate.PersonalitySummary,
		"{{CANDIDATE_INTERESTS}}", candidate.Interests,
		"{{CANDIDATE_VALUES}}", candidate.CoreValues,
		"{{CANDIDATE_COMMUNICATION_STYLE}}", candidate.CommunicationStyle,
		"{{CANDIDATE_LOOKING_FOR}}", candidate.LookingFor,
		"{{CANDIDATE_DEAL_BREAKERS}}", candidate.DealBreakers,
		"{{PREVIOUS_CONTEXT}}", previous,
	)
	return r.Replace(oracleTemplate)
}
