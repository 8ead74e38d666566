// Package workers holds the background consumers fed by redis streams.
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hirestage/hirestage/internal/ai"
	"github.com/hirestage/hirestage/internal/models"
	"github.com/hirestage/hirestage/internal/providers/llm"
	pgrepo "github.com/hirestage/hirestage/internal/repositories/postgres"
	"github.com/hirestage/hirestage/internal/services"
)

// EvaluationWorkerPool scores completed interviews off the evaluation
// stream so the completion request never waits on the LLM.
type EvaluationWorkerPool struct {
	Redis      *redis.Client
	Interviews pgrepo.InterviewRepository
	Jobs       pgrepo.JobRepository
	NumWorkers int

	LLM llm.Provider

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *EvaluationWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Interviews == nil || p.Jobs == nil || p.LLM == nil {
		return errors.New("EvaluationWorkerPool missing dependency: Redis/Interviews/Jobs/LLM must be set")
	}
	if p.Stream == "" {
		p.Stream = services.EvaluationStream
	}
	if p.Group == "" {
		p.Group = "evaluation-workers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "eval"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *EvaluationWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    5,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

func (p *EvaluationWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	getStr := func(k string) string {
		v, ok := msg.Values[k]
		if !ok || v == nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}

	interviewID := getStr("interview_id")
	if interviewID == "" {
		return
	}

	log := p.Logger.WithFields(logrus.Fields{
		"redis_id":     msg.ID,
		"interview_id": interviewID,
	})

	iv, err := p.Interviews.GetByID(ctx, interviewID)
	if err != nil {
		log.WithError(err).Warn("interview lookup failed")
		return
	}
	if iv.Status != models.StatusCompleted || len(iv.Answers) == 0 {
		log.Warn("interview not ready for evaluation, skipping")
		return
	}
	// Retried stream entries after a crash land here; scoring is
	// idempotent enough to redo, but skip the common duplicate case.
	if iv.PerformanceScore > 0 {
		return
	}

	eventsCh := services.InterviewEventsChannel(interviewID)
	p.publish(ctx, eventsCh, map[string]any{
		"type":   "evaluation_status",
		"status": "processing",
	})

	raw, err := p.LLM.Complete(ctx, ai.BuildEvaluationPrompt(iv.Answers))
	if err != nil {
		log.WithError(err).Error("evaluation failed")
		p.publish(ctx, eventsCh, map[string]any{
			"type":   "evaluation_status",
			"status": "failed",
		})
		return
	}
	evals, err := ai.ParseEvaluations(raw)
	if err != nil {
		log.WithError(err).Error("evaluation reply unusable")
		p.publish(ctx, eventsCh, map[string]any{
			"type":   "evaluation_status",
			"status": "failed",
		})
		return
	}

	score := ai.OverallScore(evals)
	feedback := ai.FeedbackDigest(evals)

	jobTitle := ""
	if job, err := p.Jobs.GetByID(ctx, iv.JobID); err == nil {
		jobTitle = job.Title
	}

	// Stream the summary out as it is generated.
	chunks, errs := p.LLM.StreamAnswer(ctx, ai.BuildSummaryPrompt(jobTitle, evals))

	full := strings.Builder{}
	seq := int64(0)
	for chunk := range chunks {
		seq++
		full.WriteString(chunk)
		p.publish(ctx, eventsCh, map[string]any{
			"type":  "summary_chunk",
			"seq":   seq,
			"chunk": chunk,
		})
	}

	var streamErr error
	select {
	case streamErr = <-errs:
	default:
	}
	summary := strings.TrimSpace(full.String())
	if streamErr != nil || summary == "" {
		if streamErr != nil {
			log.WithError(streamErr).Error("summary stream failed")
		}
		summary = ai.ScoreLabel(score) + " overall performance."
	}

	if err := p.Interviews.SetEvaluation(ctx, interviewID, summary, score, feedback); err != nil {
		log.WithError(err).Error("failed to store evaluation")
		p.publish(ctx, eventsCh, map[string]any{
			"type":   "evaluation_status",
			"status": "failed",
		})
		return
	}

	p.publish(ctx, eventsCh, map[string]any{
		"type":              "evaluation_complete",
		"performance_score": score,
		"ai_summary":        summary,
		"feedback":          feedback,
	})
	log.WithField("performance_score", score).Info("interview evaluated")
}

func (p *EvaluationWorkerPool) publish(ctx context.Context, channel string, payload map[string]any) {
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = p.Redis.Publish(ctx, channel, string(b)).Err()
}
