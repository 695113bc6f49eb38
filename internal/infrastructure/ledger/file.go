package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/shoplens/backend/internal/domain"
)

// FileStore keeps the whole click ledger in memory and mirrors it to a
// JSON file after every mutation. The file is read once at startup and is
// authoritative in memory afterwards; no other process is expected to
// write it. A mutex serializes the read-modify-write-persist cycle, so
// overlapping redirect requests cannot corrupt the ledger.
type FileStore struct {
	path string

	mu      sync.Mutex
	entries map[string]*domain.UserClicks
}

// Open loads the ledger at path, starting empty when the file does not
// exist yet. A present but undecodable file is an error; silently dropping
// recorded clicks would be worse than refusing to start.
func Open(path string) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		entries: make(map[string]*domain.UserClicks),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("decode ledger %s: %w", path, err)
	}
	for _, e := range s.entries {
		if e.ByProduct == nil {
			e.ByProduct = make(map[string]int)
		}
	}
	return s, nil
}

// Increment records one click for userID on product. The product key is
// normalized to lowercase. The full ledger is rewritten to disk before
// returning (write-through); a failed write is logged and the in-memory
// state kept, so the triggering redirect still succeeds in degraded mode.
func (s *FileStore) Increment(userID, product string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entries[userID]
	if entry == nil {
		entry = &domain.UserClicks{ByProduct: make(map[string]int)}
		s.entries[userID] = entry
	}

	entry.Total++
	entry.ByProduct[strings.ToLower(product)]++

	if err := s.persistLocked(); err != nil {
		log.Printf("[Ledger] persist failed, keeping in-memory state: %v", err)
	}
	return nil
}

// Snapshot returns a deep copy of the ledger.
func (s *FileStore) Snapshot() domain.LedgerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(domain.LedgerSnapshot, len(s.entries))
	for userID, entry := range s.entries {
		byProduct := make(map[string]int, len(entry.ByProduct))
		for product, count := range entry.ByProduct {
			byProduct[product] = count
		}
		out[userID] = domain.UserClicks{Total: entry.Total, ByProduct: byProduct}
	}
	return out
}

// persistLocked rewrites the whole ledger via a temp file and rename, so a
// crash mid-write never leaves a truncated ledger behind. Callers must
// hold mu.
func (s *FileStore) persistLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}
