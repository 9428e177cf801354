package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/alexanderramin/fluxion/internal/repository"
	"github.com/alexanderramin/fluxion/internal/store"
	"github.com/alexanderramin/fluxion/internal/timer"
)

// StateStore is the key-value store plus prefix listing.
type StateStore interface {
	store.Store
	List(ctx context.Context, prefix string) ([]repository.KVEntry, error)
}

type stateService struct {
	kv       StateStore
	engine   *timer.Engine
	observer UseCaseObserver
}

func NewStateService(kv StateStore, engine *timer.Engine, observers ...UseCaseObserver) StateService {
	return &stateService{
		kv:       kv,
		engine:   engine,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Export writes every persisted key as a flat JSON object of string values,
// the same shape a browser localStorage dump has.
func (s *stateService) Export(ctx context.Context, w io.Writer) (n int, err error) {
	startedAt := time.Now()
	defer func() {
		observeUseCase(ctx, s.observer, "export-state", startedAt, map[string]any{"keys": n}, err)
	}()

	entries, err := s.kv.List(ctx, store.KeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("listing state: %w", err)
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		if store.IsPersistedKey(e.Key) {
			out[e.Key] = e.Value
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err = enc.Encode(out); err != nil {
		return 0, fmt.Errorf("encoding state: %w", err)
	}
	return len(out), nil
}

// Import replaces the persisted state with a localStorage-style dump and
// reloads the timer. Values may be JSON-encoded strings (as browsers export
// them) or inline JSON. Unknown keys are ignored; known keys missing from the
// dump are removed.
func (s *stateService) Import(ctx context.Context, r io.Reader) (keys []string, err error) {
	startedAt := time.Now()
	defer func() {
		observeUseCase(ctx, s.observer, "import-state", startedAt, map[string]any{"keys": len(keys)}, err)
	}()

	var dump map[string]json.RawMessage
	if err = json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("decoding state dump: %w", err)
	}

	for _, key := range store.PersistedKeys {
		raw, ok := dump[key]
		if !ok || string(raw) == "null" {
			if err = s.kv.Remove(ctx, key); err != nil {
				return nil, err
			}
			continue
		}
		value := string(raw)
		var str string
		if json.Unmarshal(raw, &str) == nil {
			value = str
		}
		if err = s.kv.Set(ctx, key, value); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if err = s.engine.Load(ctx); err != nil {
		return keys, fmt.Errorf("reloading timer: %w", err)
	}
	return keys, nil
}
