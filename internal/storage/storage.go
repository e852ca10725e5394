package storage

import (
	"gosweep/internal/config"
	"gosweep/internal/domain"
)

// Storage persists and loads sweep results (e.g. for the failures viewer).
type Storage interface {
	Save(output *domain.RunOutput) error
	Load() (*domain.RunOutput, error)
}

// ForConfig picks the storage backend: the JSON file store always, with
// MySQL run history layered on top when a DSN is configured.
func ForConfig(cfg *config.Config) Storage {
	jsonStore := NewJSONStorage(cfg)
	if dsn := cfg.DatabaseDSN(); dsn != "" {
		return NewHistoryStorage(jsonStore, dsn)
	}
	return jsonStore
}
