package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/api/handlers"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/api/middleware"
)

type Deps struct {
	Auth        *handlers.AuthHandler
	Job         *handlers.JobHandler
	Application *handlers.ApplicationHandler
	WalkIn      *handlers.WalkInHandler
	Dashboard   *handlers.DashboardHandler
	Profile     *handlers.ProfileHandler
	Feed        *handlers.FeedHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/auth/signup", d.Auth.SignUp)
	r.POST("/auth/signin", d.Auth.SignIn)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.GET("/auth/me", d.Auth.Me)
	auth.GET("/ws/feed", d.Feed.FeedWS)

	candidate := auth.Group("/candidate", middleware.RequireCandidate())
	candidate.GET("/jobs", d.Job.ListOpen)
	candidate.GET("/jobs/:job_id", d.Job.Get)
	candidate.POST("/jobs/:job_id/apply", d.Application.Apply)
	candidate.POST("/jobs/:job_id/apply-external", d.Application.ApplyExternally)
	candidate.GET("/applications", d.Application.ListMine)
	candidate.GET("/walk-ins", d.WalkIn.ListOpen)
	candidate.POST("/walk-ins/:drive_id/join", d.WalkIn.Join)
	candidate.GET("/attendance", d.WalkIn.ListMyAttendance)
	candidate.GET("/dashboard", d.Dashboard.Candidate)
	candidate.GET("/profile", d.Profile.Me)
	candidate.PUT("/profile", d.Profile.Update)

	recruiter := auth.Group("/recruiter", middleware.RequireRecruiter())
	recruiter.POST("/jobs", d.Job.Create)
	recruiter.GET("/jobs", d.Job.ListMine)
	recruiter.PUT("/jobs/:job_id", d.Job.Update)
	recruiter.PATCH("/jobs/:job_id/status", d.Job.SetStatus)
	recruiter.DELETE("/jobs/:job_id", d.Job.Delete)
	recruiter.GET("/applications", d.Application.ListForRecruiter)
	recruiter.PATCH("/applications/:application_id/status", d.Application.AdvanceStatus)
	recruiter.POST("/walk-ins", d.WalkIn.CreateDrive)
	recruiter.GET("/walk-ins", d.WalkIn.ListMine)
	recruiter.PUT("/walk-ins/:drive_id", d.WalkIn.UpdateDrive)
	recruiter.PATCH("/walk-ins/:drive_id/status", d.WalkIn.SetDriveStatus)
	recruiter.DELETE("/walk-ins/:drive_id", d.WalkIn.DeleteDrive)
	recruiter.GET("/walk-ins/:drive_id/attendees", d.WalkIn.ListAttendees)
	recruiter.GET("/dashboard", d.Dashboard.Recruiter)
}
