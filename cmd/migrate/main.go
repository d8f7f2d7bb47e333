package main

import (
	"context" // Context for seeding

	"cashcard_system/internal/config" // Custom import path (Config)
	"cashcard_system/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	// Demo identities and cards
	if cfg.SeedDemoData {
		if err := db.SeedDemo(context.Background(), gdb); err != nil {
			logrus.Fatalf("seeding failed: %v", err)
		}
	}
}
