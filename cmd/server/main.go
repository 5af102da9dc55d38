package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/airpong/backend/internal/api"
	"github.com/airpong/backend/internal/config"
	"github.com/airpong/backend/internal/game"
	"github.com/airpong/backend/internal/redis"
	"github.com/airpong/backend/internal/ws"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize the match
	engine, err := game.NewEngine(game.Config{
		Match:  cfg.MatchConfig(),
		Params: cfg.PhysicsParams(),
	})
	if err != nil {
		log.Fatalf("Failed to create match: %v", err)
	}
	runner := game.NewRunner(engine, cfg.RunnerConfig())

	hub := ws.NewHub(runner)
	go hub.Run(ctx)

	// Publish match events to Redis (if configured)
	var publisher *redis.Publisher
	if cfg.RedisURL != "" {
		rdb, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()

		publisher = redis.NewPublisher(rdb, cfg.MatchEventsChannel)
		publisher.Start(ctx)
	} else {
		log.Printf("[REDIS] REDIS_URL not set - match events will not be published")
	}

	runner.OnSnapshot(hub.BroadcastSnapshot)
	runner.OnEvent(func(ev game.MatchEvent) {
		hub.BroadcastEvent(ev)
		if publisher != nil {
			publisher.Publish(ev)
		}
	})
	go runner.Run(ctx)

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	api.SetupRoutes(router, runner, hub, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		log.Printf("Starting Air Pong server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
