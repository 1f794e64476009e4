// Package state implements the client's persistent keyword -> chain-head
// map: get/set/clear with atomic write-then-rename persistence, grounded
// on the original's EnhancedClient._save_state (plain json.dump) upgraded
// to crash-safe atomic replace.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	clientDomain "github.com/dsse/forwardpriv/internal/client/domain"
)

// Store is the process-wide client state handle: a keyword -> Head map
// with a strict single-writer discipline. It is passed explicitly to
// callers rather than exposed as module-level mutable state.
type Store struct {
	path string

	mu    sync.RWMutex
	heads map[string]clientDomain.Head

	// keywordLocks holds one mutex per keyword: uploads for the same
	// keyword within a session must be totally ordered.
	keywordLocks sync.Map // string -> *sync.Mutex
}

// NewStore loads state from path if it exists, or starts empty.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, heads: make(map[string]clientDomain.Head)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read client state: %w", err)
	}

	var raw map[string][2]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse client state: %w", err)
	}
	for keyword, pair := range raw {
		s.heads[keyword] = clientDomain.Head{KeyHex: pair[0], AddressHex: pair[1]}
	}

	return s, nil
}

// Get returns the current head for keyword, or false if none exists.
func (s *Store) Get(keyword string) (clientDomain.Head, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	head, ok := s.heads[keyword]
	return head, ok
}

// Set atomically updates the head for keyword and persists the whole map.
func (s *Store) Set(keyword string, head clientDomain.Head) error {
	s.mu.Lock()
	s.heads[keyword] = head
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	return s.persist(snapshot)
}

// Clear removes every keyword's state and persists the empty map.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.heads = make(map[string]clientDomain.Head)
	s.mu.Unlock()

	return s.persist(map[string][2]string{})
}

// Keywords returns every keyword currently tracked in client state — the
// "list all keywords" operation the original's EnhancedClient has no
// direct equivalent for.
func (s *Store) Keywords() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keywords := make([]string, 0, len(s.heads))
	for keyword := range s.heads {
		keywords = append(keywords, keyword)
	}
	return keywords
}

// Lock returns the mutex that serializes uploads for keyword within this
// session. Callers must Lock/Unlock it around the read-modify-write of a
// keyword's head during upload.
func (s *Store) Lock(keyword string) *sync.Mutex {
	lock, _ := s.keywordLocks.LoadOrStore(keyword, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *Store) snapshotLocked() map[string][2]string {
	raw := make(map[string][2]string, len(s.heads))
	for keyword, head := range s.heads {
		raw[keyword] = [2]string{head.KeyHex, head.AddressHex}
	}
	return raw
}

// persist writes raw to disk via a temp-file-then-rename in the same
// directory as the state file, so a crash mid-write never corrupts the
// previously committed state — only the in-flight update is lost.
func (s *Store) persist(raw map[string][2]string) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to serialize client state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create client state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp client state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write client state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close client state temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize client state file: %w", err)
	}

	return nil
}
