// Command recompute runs the batch schedule recompute as a standalone
// process, separate from the API server, so it can be deployed and scaled
// independently (or triggered once from a one-shot job runner).
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/projectanchor/scheduler/internal/config"
	"github.com/projectanchor/scheduler/internal/dlq"
	"github.com/projectanchor/scheduler/internal/notify"
	"github.com/projectanchor/scheduler/internal/recompute"
	"github.com/projectanchor/scheduler/internal/storage"
)

const version = "1.0.0"

func main() {
	cfg, err := config.LoadRecomputeConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	log.Printf("Starting Project Anchor recompute daemon v%s", version)

	projectStore, err := storage.NewFileProjectStore(cfg.ProjectDir)
	if err != nil {
		log.Fatalf("failed to initialize project store at %s: %v", cfg.ProjectDir, err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

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

	failures := dlq.NewManager(dlq.NewMemoryQueue(), cfg.DLQCapacity)
	failures.OnThresholdReached(func(count int) {
		logrus.WithField("count", count).Warn("recompute failure queue reached its alert threshold")
	})

	daemon := recompute.New(projectStore, publisher, failures)

	if cfg.RunOnceAndExit {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		daemon.RunOnce(ctx)
		log.Println("recompute run complete, exiting")
		return
	}

	if err := daemon.Schedule(cfg.CronExpr); err != nil {
		log.Fatalf("invalid recompute schedule %q: %v", cfg.CronExpr, err)
	}
	daemon.Start()
	log.Printf("recompute daemon started, schedule=%q", cfg.CronExpr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("shutting down, waiting for in-flight recompute to finish")
	shutdownDone := make(chan struct{})
	go func() {
		daemon.Stop()
		close(shutdownDone)
	}()

	select {
	case <-shutdownDone:
		log.Println("recompute daemon stopped gracefully")
	case <-time.After(cfg.ShutdownTimeout):
		log.Println("recompute daemon shutdown timed out")
	}
}
