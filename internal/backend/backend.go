// Package backend selects and wires a customer store implementation from
// configuration.
package backend

import (
	"fmt"

	"cobranca/internal/config"
	"cobranca/internal/customers"
)

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result pairs a ready store with its cleanup.
type Result struct {
	Store   customers.Store
	Cleanup CleanupFunc
}

// Type names a store backend.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Config holds what backend construction needs, decoupled from the full
// application config.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Event publishing (optional, sqlite backend only)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// FromAppConfig converts the application config to a backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         backendType,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
	}, nil
}
