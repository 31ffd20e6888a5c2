package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/projectanchor/scheduler/internal/config"
	"github.com/projectanchor/scheduler/internal/dlq"
	"github.com/projectanchor/scheduler/internal/notify"
	"github.com/projectanchor/scheduler/internal/recompute"
	"github.com/projectanchor/scheduler/internal/storage"
	"github.com/projectanchor/scheduler/pkg/api/dto"
	"github.com/projectanchor/scheduler/pkg/api/handlers"
	"github.com/projectanchor/scheduler/pkg/api/middleware"
)

const version = "1.0.0"

func main() {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	log.Printf("Starting Project Anchor scheduler API v%s", version)

	projectStore, err := storage.NewFileProjectStore(cfg.ProjectDir)
	if err != nil {
		log.Fatalf("failed to initialize project store at %s: %v", cfg.ProjectDir, err)
	}

	var watcher *storage.ProjectWatcher
	if cfg.WatchFiles {
		watcher, err = storage.NewProjectWatcher(cfg.ProjectDir)
		if err != nil {
			log.Printf("warning: project file watcher disabled: %v", err)
		} else {
			defer watcher.Close()
			go func() {
				for id := range watcher.Changed {
					logrus.WithField("project_id", id).Debug("project file changed externally")
				}
			}()
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Printf("warning: redis unavailable at %s: %v", cfg.RedisAddr, err)
	}
	cancel()

	natsConn, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		log.Printf("warning: nats unavailable at %s: %v", cfg.NATSURL, err)
	} else {
		defer natsConn.Close()
	}

	publishers := []notify.Publisher{notify.NewRedisPublisher(redisClient)}
	if natsConn != nil {
		publishers = append(publishers, notify.NewNATSPublisher(natsConn))
	}
	publisher := notify.NewMultiPublisher(publishers...)

	failures := dlq.NewManager(dlq.NewMemoryQueue(), cfg.DLQThreshold)
	failures.OnThresholdReached(func(count int) {
		logrus.WithField("count", count).Warn("recompute failure queue reached its alert threshold")
	})

	daemon := recompute.New(projectStore, publisher, failures)
	if err := daemon.Schedule(cfg.RecomputeCron); err != nil {
		log.Fatalf("failed to schedule recompute job: %v", err)
	}
	daemon.Start()
	defer daemon.Stop()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Env == "development" {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	projectHandler := handlers.NewProjectHandler(projectStore)
	scheduleHandler := handlers.NewScheduleHandler()

	router.GET("/health", func(c *gin.Context) {
		redisHealthy := redisClient.Ping(c.Request.Context()).Err() == nil

		resp := dto.HealthResponse{
			Status: "healthy",
			Services: map[string]string{
				"redis": "healthy",
				"nats":  "healthy",
			},
		}
		if !redisHealthy {
			resp.Status = "degraded"
			resp.Services["redis"] = "unhealthy"
		}
		if natsConn == nil || !natsConn.IsConnected() {
			resp.Status = "degraded"
			resp.Services["nats"] = "unhealthy"
		}

		c.JSON(200, resp)
	})

	jwtConfig := middleware.DefaultJWTConfig()

	api := router.Group("/api/v1")
	api.Use(middleware.OptionalAuth(jwtConfig))
	api.Use(rateLimiter.RateLimit())

	projects := api.Group("/projects")
	{
		projects.POST("", projectHandler.CreateProject)
		projects.POST("/import", projectHandler.ImportProject)
		projects.GET("", projectHandler.ListProjects)
		projects.GET("/:id", projectHandler.GetProject)
		projects.PUT("/:id", projectHandler.SaveProject)
		projects.DELETE("/:id", projectHandler.DeleteProject)
		projects.GET("/:id/schedule", projectHandler.GetProjectSchedule)
		projects.GET("/:id/status", projectHandler.GetProjectStatus)
	}

	api.POST("/schedule", scheduleHandler.ComputeSchedule)

	log.Printf("Server listening on port %s in %s mode", cfg.Port, cfg.Env)
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
