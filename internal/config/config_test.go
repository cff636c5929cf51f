package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:          "8082",
		DataBackend:   "json",
		DataDir:       "./data",
		SQLiteDBPath:  "./data/rate.db",
		SyncBatchSize: 10,
		SyncInterval:  30 * time.Second,
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	for _, port := range []string{"", "abc", "0", "70000"} {
		cfg := validConfig()
		cfg.Port = port
		if err := cfg.Validate(); err == nil {
			t.Fatalf("port %q should be rejected", port)
		}
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := validConfig()
	cfg.DataBackend = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown backend should be rejected")
	}
}

func TestValidateRejectsBadAMQPURL(t *testing.T) {
	cfg := validConfig()
	cfg.AMQPURL = "http://localhost:5672"
	cfg.AMQPExchange = "rate"
	cfg.AMQPQueue = "sync_purchases"
	if err := cfg.Validate(); err == nil {
		t.Fatal("non-amqp scheme should be rejected")
	}
}

func TestValidateRejectsNegativeCreditLimit(t *testing.T) {
	cfg := validConfig()
	cfg.CreditLimit.Cents = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative credit limit should be rejected")
	}
}

func TestValidateWorkerBounds(t *testing.T) {
	cfg := validConfig()
	cfg.SyncBatchSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero batch size should be rejected")
	}

	cfg = validConfig()
	cfg.SyncInterval = 100 * time.Millisecond
	if err := cfg.Validate(); err == nil {
		t.Fatal("sub-second sync interval should be rejected")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8082" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if cfg.DataBackend != "json" {
		t.Fatalf("default backend = %q", cfg.DataBackend)
	}
	if cfg.CreditLimit.Cents != 500_000 {
		t.Fatalf("default credit limit = %d", cfg.CreditLimit.Cents)
	}
}
