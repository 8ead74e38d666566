// Package ai builds the prompts sent to the LLM provider and parses its
// JSON replies for question generation and answer evaluation.
package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hirestage/hirestage/internal/models"
)

// DefaultQuestionCount questions are generated per resume unless the job
// context asks for more.
const DefaultQuestionCount = 5

// JobContext carries the posting details woven into the question prompt.
type JobContext struct {
	Title        string
	Company      string
	Description  string
	TechStack    []string
	Requirements []string
}

func BuildQuestionPrompt(resumeText string, job JobContext, count int) string {
	if count <= 0 {
		count = DefaultQuestionCount
	}

	var b strings.Builder
	b.WriteString("You are an experienced technical interviewer.\n")
	fmt.Fprintf(&b, "Generate %d interview questions from the following resume.\n", count)
	b.WriteString("Include type: technical, behavioral, or situational.\n\n")

	if job.Title != "" {
		b.WriteString("Job context:\n")
		fmt.Fprintf(&b, "Job Title: %s\n", job.Title)
		fmt.Fprintf(&b, "Company: %s\n", job.Company)
		fmt.Fprintf(&b, "Job Description: %s\n", job.Description)
		fmt.Fprintf(&b, "Tech Stack: %s\n", strings.Join(job.TechStack, ", "))
		fmt.Fprintf(&b, "Requirements: %s\n\n", strings.Join(job.Requirements, ", "))
	}

	fmt.Fprintf(&b, "Resume:\n\"\"\"%s\"\"\"\n\n", resumeText)
	b.WriteString(`Respond in JSON format like:
{
  "questions": [
    {
      "question": "What is your experience with Django?",
      "type": "technical"
    }
  ]
}`)
	return b.String()
}

// StripFences removes a surrounding ```json ... ``` fence, which Gemini
// tends to add despite the prompt asking for bare JSON.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func ParseQuestions(raw string) ([]models.Question, error) {
	var payload struct {
		Questions []models.Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(StripFences(raw)), &payload); err != nil {
		return nil, fmt.Errorf("malformed question payload: %w", err)
	}

	out := make([]models.Question, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		q.Question = strings.TrimSpace(q.Question)
		if q.Question == "" {
			continue
		}
		switch q.Type {
		case models.QuestionTechnical, models.QuestionBehavioral, models.QuestionSituational:
		default:
			q.Type = models.QuestionTechnical
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		return nil, errors.New("no questions in payload")
	}
	return out, nil
}
