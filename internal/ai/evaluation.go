package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/hirestage/hirestage/internal/models"
)

// Evaluation is the per-answer verdict returned by the LLM.
type Evaluation struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Score    int    `json:"score"` // 0..10
	Feedback string `json:"feedback"`
}

func BuildEvaluationPrompt(answers []models.Answer) string {
	items, _ := json.MarshalIndent(answers, "", "  ")

	var b strings.Builder
	b.WriteString(`You're an expert interviewer.
Score each answer below from 0 to 10 and give one-line feedback.

Respond with:
[
  {
    "question": "...",
    "answer": "...",
    "score": 8,
    "feedback": "Good clarity, but missing details."
  }
]
`)
	b.WriteString("\n")
	b.Write(items)
	return b.String()
}

func BuildSummaryPrompt(jobTitle string, evals []Evaluation) string {
	items, _ := json.MarshalIndent(evals, "", "  ")

	var b strings.Builder
	fmt.Fprintf(&b, "Write a short third-person summary (3-4 sentences) of how a candidate performed in a mock interview for the role %q, based on these scored answers. Mention strengths first, then areas to improve.\n\n", jobTitle)
	b.Write(items)
	return b.String()
}

func ParseEvaluations(raw string) ([]Evaluation, error) {
	var evals []Evaluation
	if err := json.Unmarshal([]byte(StripFences(raw)), &evals); err != nil {
		return nil, fmt.Errorf("malformed evaluation payload: %w", err)
	}
	if len(evals) == 0 {
		return nil, errors.New("no evaluations in payload")
	}
	for i := range evals {
		if evals[i].Score < 0 {
			evals[i].Score = 0
		}
		if evals[i].Score > 10 {
			evals[i].Score = 10
		}
	}
	return evals, nil
}

// OverallScore folds 0..10 per-answer scores into the portal's 1..5
// performance score.
func OverallScore(evals []Evaluation) int {
	if len(evals) == 0 {
		return 0
	}
	sum := 0
	for _, e := range evals {
		sum += e.Score
	}
	avg := float64(sum) / float64(len(evals)) // 0..10
	score := int(math.Round(avg / 2))
	if score < 1 {
		score = 1
	}
	if score > 5 {
		score = 5
	}
	return score
}

func ScoreLabel(score int) string {
	switch {
	case score >= 5:
		return "Excellent"
	case score >= 4:
		return "Good"
	case score >= 3:
		return "Average"
	default:
		return "Poor"
	}
}

// FeedbackDigest joins per-answer feedback into the free-text feedback
// field stored on the interview.
func FeedbackDigest(evals []Evaluation) string {
	lines := make([]string, 0, len(evals))
	for i, e := range evals {
		if strings.TrimSpace(e.Feedback) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("Q%d: %s", i+1, e.Feedback))
	}
	return strings.Join(lines, "\n")
}
