package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"
)

const (
	minScore = 0
	maxScore = 10

	// Low temperature keeps the rubric output stable across calls.
	scoringTemperature float32 = 0.2
)

var scorePattern = regexp.MustCompile(`(?i)score\s*:\s*(-?[0-9]+)`)

type ScorerService interface {
	Score(ctx context.Context, resumeText, requirementText string) (int, error)
}

type scorerService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
}

func NewScorerService(gemini GeminiService) ScorerService {
	return &scorerService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
	}
}

// Score asks the model for a 0-10 compatibility score and parses it out
// of the response. Transport errors and unparseable responses propagate
// to the caller; retry policy belongs to the caller, not here.
func (s *scorerService) Score(ctx context.Context, resumeText, requirementText string) (int, error) {
	prompt := s.promptBuilder.BuildMatchScoringPrompt(resumeText, requirementText)

	response, err := s.gemini.GenerateText(ctx, prompt, scoringTemperature)
	if err != nil {
		return 0, fmt.Errorf("scoring request failed: %w", err)
	}

	score, ok := parseScore(response)
	if !ok {
		return 0, fmt.Errorf("scoring response missing score pattern: %q", truncateForLog(response, 120))
	}

	return score, nil
}

// parseScore finds the first score:<integer> occurrence anywhere in the
// response and clamps it into [0,10].
func parseScore(response string) (int, bool) {
	m := scorePattern.FindStringSubmatch(response)
	if m == nil {
		return 0, false
	}

	score, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	if score < minScore {
		score = minScore
	}
	if score > maxScore {
		score = maxScore
	}

	return score, true
}

func truncateForLog(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Back up to a rune boundary so the cut never produces invalid UTF-8.
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
