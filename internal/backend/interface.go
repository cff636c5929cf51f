package backend

import (
	"context"

	"rate/internal/services"
	"rate/internal/store"
)

// Type selects which backing store the application runs on.
type Type string

const (
	JSONBackend   Type = "json"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case JSONBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases a backend's resources.
type CleanupFunc func() error

// Result bundles what a created backend gives the application: the store,
// an optional sync publisher (SQLite + AMQP only), and a cleanup hook.
type Result struct {
	Store     store.Store
	Publisher services.SyncPublisher
	Cleanup   CleanupFunc
}

// Factory creates backends from configuration.
type Factory interface {
	CreateBackend(ctx context.Context, cfg Config) (*Result, error)
}

// Config holds what backend creation needs, decoupled from the app config.
type Config struct {
	Type Type

	// JSON backend
	DataDir string

	// SQLite backend
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}
