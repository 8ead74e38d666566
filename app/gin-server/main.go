package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/hirestage/hirestage/config"
	"github.com/hirestage/hirestage/internal/api/handlers"
	"github.com/hirestage/hirestage/internal/api/middleware"
	"github.com/hirestage/hirestage/internal/api/routes"
	"github.com/hirestage/hirestage/internal/cache"
	"github.com/hirestage/hirestage/internal/logger"
	"github.com/hirestage/hirestage/internal/providers/llm"
	"github.com/hirestage/hirestage/internal/providers/stt"
	"github.com/hirestage/hirestage/internal/providers/tts"
	mongorepo "github.com/hirestage/hirestage/internal/repositories/mongo"
	pgrepo "github.com/hirestage/hirestage/internal/repositories/postgres"
	"github.com/hirestage/hirestage/internal/services"
	"github.com/hirestage/hirestage/internal/storage"
	"github.com/hirestage/hirestage/internal/workers"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	lg := logger.New()

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.MigratePostgres(); err != nil {
		log.Fatalf("PostgreSQL migrate error: %v", err)
	}
	lg.Info("PostgreSQL connected")

	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	lg.Info("MongoDB connected")

	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	lg.Info("Redis connected")

	ctx := context.Background()

	gemini, err := llm.NewVertexGemini(ctx,
		os.Getenv("GCP_PROJECT_ID"),
		env("GCP_LOCATION", "us-central1"),
		env("GEMINI_MODEL", "gemini-1.5-flash"),
	)
	if err != nil {
		log.Fatalf("Vertex init error: %v", err)
	}
	defer gemini.Close()

	speech, err := stt.NewGoogleSpeech(ctx)
	if err != nil {
		log.Fatalf("Speech init error: %v", err)
	}
	defer speech.Close()

	voice, err := tts.NewGoogleTTS(ctx)
	if err != nil {
		log.Fatalf("TTS init error: %v", err)
	}
	defer voice.Close()

	bucket := os.Getenv("GCS_BUCKET")
	gcs, err := storage.NewGCSUploader(ctx, bucket)
	if err != nil {
		log.Fatalf("GCS init error: %v", err)
	}
	defer gcs.Close()

	// repositories
	userRepo := pgrepo.NewUserRepo(config.PostgresDB)
	jobRepo := pgrepo.NewJobRepo(config.PostgresDB)
	interviewRepo := pgrepo.NewInterviewRepo(config.PostgresDB)
	resumeRepo := pgrepo.NewResumeFileRepo(config.PostgresDB)

	mongoDB := config.MongoClient.Database(env("MONGO_DB", "hirestage"))
	transcriptRepo := mongorepo.NewTranscriptRepo(mongoDB)
	activityRepo := mongorepo.NewActivityRepo(mongoDB)

	redisCache := cache.NewRedisCache(config.RedisClient)

	// services
	activitySvc := services.NewActivityService(activityRepo)
	authSvc := services.NewAuthService(userRepo, activitySvc,
		[]byte(os.Getenv("JWT_SECRET")), 24*time.Hour)
	jobSvc := services.NewJobService(jobRepo, redisCache, time.Minute, activitySvc)
	interviewSvc := services.NewInterviewService(interviewRepo, jobRepo, activitySvc)
	transcriptSvc := services.NewTranscriptService(transcriptRepo)
	roomSvc := services.NewRoomService(interviewRepo, jobRepo, resumeRepo,
		transcriptSvc, activitySvc, gemini, speech, voice, gcs, gcs, config.RedisClient, lg)
	analyticsSvc := services.NewAnalyticsService(interviewRepo, userRepo, redisCache)

	// background evaluation workers
	pool := &workers.EvaluationWorkerPool{
		Redis:      config.RedisClient,
		Interviews: interviewRepo,
		Jobs:       jobRepo,
		LLM:        gemini,
		Logger:     lg,
	}
	if err := pool.Start(ctx); err != nil {
		log.Fatalf("Worker start error: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(lg))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:      handlers.NewAuthHandler(authSvc),
		Job:       handlers.NewJobHandler(jobSvc),
		Interview: handlers.NewInterviewHandler(interviewSvc, transcriptSvc),
		Room:      handlers.NewRoomHandler(roomSvc, interviewSvc),
		Analytics: handlers.NewAnalyticsHandler(analyticsSvc, activitySvc),
		Activity:  handlers.NewActivityHandler(activitySvc),
		WS:        handlers.NewWSHandler(interviewSvc, roomSvc, config.RedisClient),
	})

	port := env("PORT", "8080")
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
