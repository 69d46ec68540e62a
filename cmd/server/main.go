package main

import (
	"context"                      // Context for startup checks
	"log"                          // log package is needed for logging
	"privypay/internal/api"        // Custom package for API handlers
	"privypay/internal/chain"      // Custom package for the JSON-RPC client
	"privypay/internal/config"     // Custom package for configuration
	"privypay/internal/core"       // Custom package for the consistency core
	"privypay/internal/mail"       // Custom package for invitation email
	"privypay/internal/store"      // Custom package for the document store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup the document store
	var st store.Store
	if cfg.StoreDriver == "memory" {
		logrus.Warn("Running on the in-memory store; data will not survive a restart")
		st = store.NewMemory()
	} else {
		mongoStore, err := store.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logrus.Fatalf("failed to connect to MongoDB: %v", err) // Fatal error if the store is unreachable
		}
		st = mongoStore
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Setup the invitation email sender
	sender := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)

	// Setup the JSON-RPC client for balance lookups; optional
	var chainClient chain.Client
	if cfg.RPCURL != "" {
		rpc, err := chain.Dial(cfg.RPCURL)
		if err != nil {
			logrus.Fatalf("failed to connect to RPC endpoint: %v", err)
		}
		chainClient = rpc
	} else {
		logrus.Warn("RPC_URL not set; balances endpoint disabled")
	}

	// Build the consistency core over its collaborators
	svc := core.NewService(st, sender, cfg.AppURL)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Register all routes
	api.RegisterRoutes(r, svc, st, redisClient, chainClient, cfg.JWTSecret)

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
