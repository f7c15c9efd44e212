package settings

import (
	"context"
	"fmt"
	"sync"

	"uptimebar/internal/domain"
	"uptimebar/internal/logger"
)

// Provider is the read side of the store. The status service takes one
// snapshot per request through it.
type Provider interface {
	Get() domain.DisplaySettings
}

type Store struct {
	repo domain.SettingsRepository
	log  logger.Logger

	mu  sync.RWMutex
	cur domain.DisplaySettings
}

// NewStore loads the persisted settings, seeding defaults on first run. A
// constructed store always answers Get with a populated snapshot, so
// consumers can start as soon as construction returns.
func NewStore(ctx context.Context, repo domain.SettingsRepository, log logger.Logger) (*Store, error) {
	cur, found, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if found {
		cur = Normalize(cur)
	} else {
		cur = domain.DefaultDisplaySettings()
		if err := repo.Save(ctx, cur); err != nil {
			return nil, fmt.Errorf("failed to seed default settings: %w", err)
		}
		log.Info("settings: seeded defaults")
	}

	return &Store{repo: repo, log: log, cur: cur}, nil
}

func (s *Store) Get() domain.DisplaySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Save applies the patch, persists the result and refreshes the snapshot.
// On a persistence error the snapshot keeps its previous value.
func (s *Store) Save(ctx context.Context, patch domain.SettingsPatch) (domain.DisplaySettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Apply(s.cur, patch)
	if err := s.repo.Save(ctx, next); err != nil {
		return s.cur, fmt.Errorf("failed to save settings: %w", err)
	}

	s.cur = next
	s.log.Debug("settings: saved",
		"poll_interval_seconds", next.PollIntervalSeconds,
		"display_format", next.DisplayFormat,
		"debug", next.Debug,
	)

	return next, nil
}
