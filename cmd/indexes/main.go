package main

import (
	"context"                  // Context for index builds
	"privypay/internal/config" // Custom import path (Config)
	"privypay/internal/store"  // Custom import path (Document store)

	"github.com/sirupsen/logrus" // Logging library
)

// Main entry point for index creation. The unique indexes on users.email,
// users.walletAddress and transactions.hash are the backstop for the
// concurrency races the application-level guards cannot close.
func main() {
	cfg := config.LoadConfig() // Load configuration

	mongoStore, err := store.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logrus.Fatalf("failed to connect to MongoDB: %v", err) // Fatal error if connection fails
	}
	if err := mongoStore.EnsureIndexes(context.Background()); err != nil {
		logrus.Fatalf("index creation failed: %v", err) // Fatal error if index build fails
	}
	logrus.Info("Indexes ensured.") // Log successful index build
}
