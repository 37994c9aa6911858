package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/DISAMCHARLAPRABHAS/hire-flow/config"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/api/handlers"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/api/middleware"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/api/routes"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/cache"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/logger"
	mongorepo "github.com/DISAMCHARLAPRABHAS/hire-flow/internal/repositories/mongo"
	pgrepo "github.com/DISAMCHARLAPRABHAS/hire-flow/internal/repositories/postgres"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/services"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/workers"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()

	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	l.Info("MongoDB connected")

	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.MigratePostgres(); err != nil {
		log.Fatalf("PostgreSQL migrate error: %v", err)
	}
	l.Info("PostgreSQL connected")

	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	l.Info("Redis connected")

	db := config.MongoDatabase()

	// repositories
	userRepo := pgrepo.NewUserRepo(config.PostgresDB)
	profileRepo := pgrepo.NewProfileRepo(config.PostgresDB)
	jobRepo := mongorepo.NewJobRepo(db)
	appRepo := mongorepo.NewApplicationRepo(config.MongoClient, db)
	walkInRepo := mongorepo.NewWalkInRepo(config.MongoClient, db)

	rcache := cache.NewRedisCache(config.RedisClient)
	recount := &workers.RecountQueue{Redis: config.RedisClient}

	// services
	authSvc := services.NewAuthService(userRepo)
	profileSvc := services.NewProfileService(profileRepo)
	jobSvc := services.NewJobService(jobRepo, rcache)
	appSvc := services.NewApplicationService(appRepo, jobRepo, userRepo, recount, rcache)
	walkInSvc := services.NewWalkInService(walkInRepo, userRepo, recount)
	dashSvc := services.NewDashboardService(jobRepo, appRepo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// background workers
	watcher := &workers.FeedWatcher{Mongo: db, Redis: config.RedisClient, Logger: l}
	if err := watcher.Start(ctx); err != nil {
		log.Fatalf("feed watcher error: %v", err)
	}
	reconciler := &workers.RecountWorkerPool{
		Redis:   config.RedisClient,
		Jobs:    jobRepo,
		Apps:    appRepo,
		WalkIns: walkInRepo,
		Logger:  l,
	}
	if err := reconciler.Start(ctx); err != nil {
		log.Fatalf("reconciler error: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:        handlers.NewAuthHandler(authSvc),
		Job:         handlers.NewJobHandler(jobSvc),
		Application: handlers.NewApplicationHandler(appSvc),
		WalkIn:      handlers.NewWalkInHandler(walkInSvc),
		Dashboard:   handlers.NewDashboardHandler(dashSvc),
		Profile:     handlers.NewProfileHandler(profileSvc),
		Feed:        handlers.NewFeedHandler(jobSvc, appSvc, walkInSvc, config.RedisClient, l),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()
	l.WithField("port", port).Info("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.WithError(err).Error("shutdown error")
	}
	_ = config.MongoClient.Disconnect(shutdownCtx)
}
