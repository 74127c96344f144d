package server

import (
	"context"
	"testing"
	"time"

	"github.com/khonsu303/estudio/internal/server/activity"
	"github.com/khonsu303/estudio/internal/server/auth"
	"github.com/khonsu303/estudio/internal/server/config"
	"github.com/khonsu303/estudio/internal/server/storage"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = MemoryDSN
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCHealthAddr = "127.0.0.1:0"
	c.LogLevel = "error"
	return c
}

func TestNewApp_MemoryBackendDefaults(t *testing.T) {
	c := memoryConfig()

	app, err := NewApp(context.Background(), c, "test")
	if err != nil {
		t.Fatalf("NewApp error: %v", err)
	}

	if c.SecretKey == "" {
		t.Fatal("expected a generated secret key")
	}
	if app.db != nil {
		t.Fatal("memory backend must not open a database")
	}
	if app.health == nil {
		t.Fatal("expected health server to be configured")
	}
	if len(app.closers) != 0 {
		t.Fatalf("expected no integrations to close, got %d", len(app.closers))
	}
}

func TestNewApp_OptionalIntegrationsDisabled(t *testing.T) {
	app := &App{config: memoryConfig()}

	if _, isNoop := app.activityPublisher(context.Background()).(activity.Noop); !isNoop {
		t.Fatal("expected noop publisher without brokers")
	}

	rev, err := app.revoker(context.Background())
	if err != nil {
		t.Fatalf("revoker error: %v", err)
	}
	if _, isNoop := rev.(auth.NoopRevoker); !isNoop {
		t.Fatal("expected noop revoker without redis")
	}

	av, err := app.avatarStore(context.Background())
	if err != nil {
		t.Fatalf("avatarStore error: %v", err)
	}
	if _, off := av.(storage.Disabled); !off {
		t.Fatal("expected disabled avatar store without bucket")
	}
}

func TestNewApp_BadLogBackend(t *testing.T) {
	c := memoryConfig()
	c.LogBackend = "syslog"

	if _, err := NewApp(context.Background(), c, "test"); err == nil {
		t.Fatal("expected error for unknown log backend")
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig(), "test")
	if err != nil {
		t.Fatalf("NewApp error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}
