package persist

import (
	"context"
	"log/slog"
	"sync"
)

// SaveState mirrors a snapshot to the store. Persistence is best-effort:
// failures are logged and swallowed so they can never take down the game.
func SaveState(ctx context.Context, store Store, state State) {
	body, errEncode := Encode(state)
	if errEncode != nil {
		slog.Warn("Failed to encode snapshot", slog.String("error", errEncode.Error()))

		return
	}

	if err := store.SaveSnapshot(ctx, body); err != nil {
		slog.Warn("Failed to save snapshot", slog.String("error", err.Error()))
	}
}

// LoadState reads and normalizes the stored snapshot. Absence and corruption
// both come back as (defaults, false), never as an error.
func LoadState(ctx context.Context, store Store) (State, bool) {
	body, err := store.LoadSnapshot(ctx)
	if err != nil {
		return Default(), false
	}

	return Decode(body)
}

// MemoryStore is the in-memory Store stand-in used by tests and ephemeral
// games that should leave no trace.
type MemoryStore struct {
	mu       sync.Mutex
	snapshot []byte
	audit    []AuditRow
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadSnapshot(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil, ErrNoSnapshot
	}

	return s.snapshot, nil
}

func (s *MemoryStore) SaveSnapshot(_ context.Context, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = append([]byte(nil), body...)

	return nil
}

func (s *MemoryStore) AppendAction(_ context.Context, row AuditRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, row)

	return nil
}

func (s *MemoryStore) RecentActions(_ context.Context, limit int) ([]AuditRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []AuditRow
	for i := len(s.audit) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.audit[i])
	}

	return out, nil
}
