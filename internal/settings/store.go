// Package settings is the process-wide runtime settings store. Values are
// persisted write-through and mirrored in memory; subscribers are notified
// on every change. Reads before Init return the zero value, never stale
// cross-process state.
package settings

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/repository"
)

// Well-known keys.
const (
	KeyIntakeEnabled = "intake.enabled"
	KeyPublicUploads = "uploads.public"
	KeyBannerText    = "banner.text"
)

// IsKnownKey reports whether key is one of the well-known settings.
func IsKnownKey(key string) bool {
	switch key {
	case KeyIntakeEnabled, KeyPublicUploads, KeyBannerText:
		return true
	}
	return false
}

// Subscriber receives the key and new value after a change is persisted.
type Subscriber func(key, value string)

// Store mirrors the persisted settings in memory.
type Store struct {
	repo   *repository.SettingsRepository
	logger *zap.Logger

	mu          sync.RWMutex
	values      map[string]string
	loaded      bool
	subscribers map[int]Subscriber
	nextSubID   int
}

// NewStore creates a store. Call Init before serving requests.
func NewStore(repo *repository.SettingsRepository, logger *zap.Logger) *Store {
	return &Store{
		repo:        repo,
		logger:      logger,
		values:      make(map[string]string),
		subscribers: make(map[int]Subscriber),
	}
}

// Init loads the persisted settings into memory. Explicit rather than lazy:
// a failure is a startup error, not a silent empty store.
func (s *Store) Init(ctx context.Context) error {
	settings, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string, len(settings))
	for _, setting := range settings {
		s.values[setting.Key] = setting.Value
	}
	s.loaded = true

	s.logger.Info("settings loaded", zap.Int("count", len(settings)))
	return nil
}

// Get returns the value for key, "" when unset.
func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// GetBool interprets the stored value as a boolean flag.
func (s *Store) GetBool(key string) bool {
	v := s.Get(key)
	return v == "true" || v == "1"
}

// GetBoolDefault is GetBool with a fallback for unset keys.
func (s *Store) GetBoolDefault(key string, def bool) bool {
	s.mu.RLock()
	v, ok := s.values[key]
	s.mu.RUnlock()
	if !ok || v == "" {
		return def
	}
	return v == "true" || v == "1"
}

// All returns a copy of every current setting.
func (s *Store) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Set persists a value and updates the mirror. Subscribers run after the
// write succeeds; a persistence failure leaves the mirror untouched.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return fmt.Errorf("failed to persist setting %s: %w", key, err)
	}

	s.mu.Lock()
	s.values[key] = value
	subs := make([]Subscriber, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(key, value)
	}
	return nil
}

// Clear removes every setting, persisted and in memory.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}

	s.mu.Lock()
	s.values = make(map[string]string)
	s.mu.Unlock()
	return nil
}

// Subscribe registers a change listener and returns an unsubscribe func.
func (s *Store) Subscribe(sub Subscriber) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = sub
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}
