package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"auth-backend/core"
)

func main() {
	cfg, err := core.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	// A missing signing secret is fatal at startup, not a request error.
	tokens, err := core.NewTokenService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("failed to init token service: %v", err)
	}

	db, err := core.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	var users core.UserRepository = core.NewPgUserRepository(db)

	if cfg.RedisURL != "" {
		redisClient, err := core.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer redisClient.Close()
		ttl := time.Duration(cfg.UsersCacheTTLSeconds) * time.Second
		users = core.NewCachedUserDirectory(users, redisClient, ttl)
	}

	authService := core.NewRepositoryAuthService(users, tokens)

	if err := core.BootstrapUser(ctx, users, cfg); err != nil {
		log.Fatalf("bootstrap user failed: %v", err)
	}

	router := core.NewRouter(cfg, authService, tokens, users)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("starting api server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
