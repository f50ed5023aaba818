package config

import (
	"fmt"

	"timeclock/internal/store"
	"timeclock/internal/store/jsonstore"
	"timeclock/internal/store/sqlite"
)

// CreateStore creates a store instance for the configured backend
func CreateStore(config *Config) (store.Store, error) {
	switch config.Store.Backend {
	case BackendSQLite:
		st, err := sqlite.New(config.GetSQLitePath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return st, nil
	case BackendJSON:
		st, err := jsonstore.New(config.Store.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize data directory: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", config.Store.Backend)
	}
}
