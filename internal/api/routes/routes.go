package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hirestage/hirestage/internal/api/handlers"
	"github.com/hirestage/hirestage/internal/api/middleware"
)

type Deps struct {
	Auth      *handlers.AuthHandler
	Job       *handlers.JobHandler
	Interview *handlers.InterviewHandler
	Room      *handlers.RoomHandler
	Analytics *handlers.AnalyticsHandler
	Activity  *handlers.ActivityHandler
	WS        *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/auth/register", d.Auth.Register)
	r.POST("/auth/login", d.Auth.Login)

	// Job board is readable without a token.
	r.GET("/jobs", d.Job.List)
	r.GET("/jobs/:job_id", d.Job.Get)

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.GET("/auth/profile", d.Auth.GetProfile)
	auth.PUT("/auth/profile", d.Auth.UpdateProfile)

	auth.POST("/interviews", d.Interview.Schedule)
	auth.GET("/interviews", d.Interview.List)
	auth.GET("/interviews/:interview_id", d.Interview.Get)
	auth.POST("/interviews/:interview_id/cancel", d.Interview.Cancel)
	auth.POST("/interviews/:interview_id/complete", d.Interview.Complete)
	auth.GET("/interviews/:interview_id/messages", d.Interview.Messages)
	auth.POST("/interviews/:interview_id/messages", d.Interview.PostMessage)

	auth.POST("/interviews/:interview_id/upload-resume", d.Room.UploadResume)
	auth.GET("/interviews/:interview_id/resume", d.Room.ResumeURL)
	auth.POST("/interviews/:interview_id/start", d.Room.Start)
	auth.POST("/interviews/:interview_id/next-question", d.Room.NextQuestion)
	auth.POST("/interviews/:interview_id/stt", d.Room.Transcribe)
	auth.POST("/interviews/:interview_id/tts", d.Room.Speak)

	auth.GET("/activities", d.Activity.List)

	// WebSocket
	auth.GET("/ws/interviews/:interview_id", d.WS.RoomWS)

	// Admin-only
	admin := auth.Group("/")
	admin.Use(middleware.RequireAdmin())

	admin.POST("/jobs", d.Job.Create)
	admin.PUT("/jobs/:job_id", d.Job.Update)
	admin.DELETE("/jobs/:job_id", d.Job.Delete)

	admin.GET("/admin/analytics/interviews", d.Analytics.InterviewAnalytics)
	admin.GET("/admin/candidates", d.Analytics.ListCandidates)
	admin.GET("/admin/activities", d.Analytics.ListActivities)
}
