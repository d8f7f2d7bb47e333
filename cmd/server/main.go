package main

import (
	"context" // context package is needed for Redis operations

	"cashcard_system/internal/api"        // Custom package for API handlers
	"cashcard_system/internal/config"     // Custom package for configuration
	"cashcard_system/internal/db"         // Custom package for database setup
	"cashcard_system/internal/repository" // Custom package for persistence
	"cashcard_system/internal/utils"      // Attempt limiter

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	// SQLite databases are local, so create the schema on the spot
	if cfg.DBDriver == config.DriverSQLite {
		if err := db.Migrate(gdb); err != nil {
			logrus.Fatalf("migration failed: %v", err)
		}
	}

	// Failed-login lockout is only enabled with Redis
	var limiter utils.AttemptLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		limiter = utils.NewRedisAttemptLimiter(redisClient, cfg.AuthMaxFailures, cfg.AuthLockoutWindow)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r, api.Dependencies{
		DB:          gdb,
		CashCards:   repository.NewCashCardRepository(gdb),
		Users:       repository.NewUserRepository(gdb),
		Limiter:     limiter,
		JWTSecret:   cfg.JWTSecret,
		JWTTTL:      cfg.JWTTTL,
		MaxPageSize: cfg.MaxPageSize,
	})

	logrus.WithFields(logrus.Fields{
		"port":           cfg.AppPort,
		"driver":         cfg.DBDriver,
		"bearer_tokens":  cfg.JWTSecret != "",
		"attempt_limits": limiter != nil,
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
