package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvaluationsClampsScores(t *testing.T) {
	raw := `[
		{"question": "q1", "answer": "a1", "score": 15, "feedback": "great"},
		{"question": "q2", "answer": "a2", "score": -3, "feedback": "weak"}
	]`

	evals, err := ParseEvaluations(raw)
	require.NoError(t, err)
	require.Len(t, evals, 2)
	assert.Equal(t, 10, evals[0].Score)
	assert.Equal(t, 0, evals[1].Score)
}

func TestParseEvaluationsRejectsEmpty(t *testing.T) {
	_, err := ParseEvaluations(`[]`)
	assert.Error(t, err)

	_, err = ParseEvaluations("nonsense")
	assert.Error(t, err)
}

func TestOverallScore(t *testing.T) {
	mk := func(scores ...int) []Evaluation {
		out := make([]Evaluation, len(scores))
		for i, s := range scores {
			out[i].Score = s
		}
		return out
	}

	assert.Equal(t, 0, OverallScore(nil))
	// Averages of 0..10 map onto 1..5.
	assert.Equal(t, 5, OverallScore(mk(10, 10, 9)))
	assert.Equal(t, 4, OverallScore(mk(8, 7, 8)))
	assert.Equal(t, 3, OverallScore(mk(5, 6)))
	assert.Equal(t, 1, OverallScore(mk(0, 0, 1)))
	// Even a zero average lands on the floor of 1.
	assert.Equal(t, 1, OverallScore(mk(0)))
}

func TestScoreLabel(t *testing.T) {
	assert.Equal(t, "Excellent", ScoreLabel(5))
	assert.Equal(t, "Good", ScoreLabel(4))
	assert.Equal(t, "Average", ScoreLabel(3))
	assert.Equal(t, "Poor", ScoreLabel(2))
	assert.Equal(t, "Poor", ScoreLabel(1))
}

func TestFeedbackDigest(t *testing.T) {
	evals := []Evaluation{
		{Feedback: "Clear and concise."},
		{Feedback: "   "},
		{Feedback: "Needs more depth."},
	}
	digest := FeedbackDigest(evals)
	assert.Equal(t, "Q1: Clear and concise.\nQ3: Needs more depth.", digest)
}
