// Package store defines the durable key-value substrate the tracking engine
// persists into, plus JSON helpers shared by its components.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Persisted keys.
const (
	KeyActiveTask        = "fluxion-active-task"
	KeyElapsedSeconds    = "fluxion-elapsed-seconds"
	KeyTimerPaused       = "fluxion-timer-paused"
	KeyTimerStart        = "fluxion-timer-start"
	KeyFocusSessions     = "fluxion-focus-sessions"
	KeyRoutineCompletion = "fluxion-routine-completions"

	// KeyPrefix is shared by every persisted key.
	KeyPrefix = "fluxion-"
)

// PersistedKeys lists every key the engine and ledger own.
var PersistedKeys = []string{
	KeyActiveTask,
	KeyElapsedSeconds,
	KeyTimerPaused,
	KeyTimerStart,
	KeyFocusSessions,
	KeyRoutineCompletion,
}

// IsPersistedKey reports whether key is one of PersistedKeys.
func IsPersistedKey(key string) bool {
	for _, k := range PersistedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Store is a minimal durable key-value store. Get reports ok=false for a
// missing key; only I/O failures are returned as errors.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// GetJSON decodes the value under key into dst. It returns false when the
// key is missing or its value is not valid JSON for dst, leaving dst
// untouched so callers keep their defaults.
func GetJSON[T any](ctx context.Context, s Store, key string, dst *T) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return false, nil
	}
	*dst = v
	return true, nil
}

// SetJSON encodes v and writes it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
