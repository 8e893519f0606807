package store

import (
	"fmt"

	"git.sr.ht/~jakintosh/tasklist/internal/config"
	"git.sr.ht/~jakintosh/tasklist/internal/domain"
)

// Open builds the session store cfg asks for. The returned close func is
// always safe to call.
func Open(cfg *config.Config) (domain.Store, func() error, error) {
	ids, err := NewIDGenerator(cfg.IDScheme)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Store {
	case config.StoreMemory:
		return NewInMemoryStore(ids), func() error { return nil }, nil
	case config.StoreSQLite:
		s, err := NewSQLiteStore(cfg.SQLiteDSN, ids)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported store %q", cfg.Store)
}

func NewIDGenerator(scheme string) (domain.IDGenerator, error) {
	switch scheme {
	case config.IDSchemeUUID:
		return domain.UUIDGenerator{}, nil
	case config.IDSchemeCounter:
		return &domain.CounterGenerator{}, nil
	}
	return nil, fmt.Errorf("unsupported id scheme %q", scheme)
}
