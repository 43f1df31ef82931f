package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/wonny/vcreview/backend/pkg/config"
)

func TestNewInvalidURL(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			URL:      "not-a-valid-url",
			MaxConns: 5,
			MinConns: 1,
		},
	}

	_, err := New(cfg)
	if err == nil {
		t.Error("Expected error for invalid database URL, got nil")
	}
}

// TestIntegration requires a running PostgreSQL (DATABASE_URL set).
// go test -short skips it.
func TestIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			URL:             url,
			MaxConns:        5,
			MinConns:        1,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: 30 * time.Minute,
		},
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}

	status, err := db.HealthCheck(ctx)
	if err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}
	if !status.Healthy {
		t.Error("Expected database to be healthy")
	}
}
