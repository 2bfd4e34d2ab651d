package registry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// ErrNotFound is returned when a connection id is not in the store.
var ErrNotFound = fmt.Errorf("server connection not found")

// storeFile is the on-disk shape: the full connection list under one key.
type storeFile struct {
	Servers []ServerConnection `json:"servers"`
}

// Store persists server connections as a single JSON document and
// notifies watchers after every mutation.
type Store struct {
	mu          sync.RWMutex
	fs          afero.Fs
	persistPath string
	servers     []ServerConnection
	watchers    []chan []ServerConnection
	logger      *slog.Logger
}

// NewStore creates a store backed by the given file path. A nil fs
// falls back to the OS filesystem.
func NewStore(fs afero.Fs, persistPath string, logger *slog.Logger) (*Store, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		fs:          fs,
		persistPath: persistPath,
		logger:      logger.With("component", "registry"),
	}

	if err := s.load(); err != nil {
		return nil, fmt.Errorf("load server connections: %w", err)
	}

	return s, nil
}

// List returns a snapshot of all stored connections.
func (s *Store) List() []ServerConnection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Get returns the connection with the given id.
func (s *Store) Get(id string) (ServerConnection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conn := range s.servers {
		if conn.ID == id {
			return conn, nil
		}
	}
	return ServerConnection{}, ErrNotFound
}

// Add stores a new connection, assigning its id and creation time, and
// returns the stored record.
func (s *Store) Add(conn ServerConnection) (ServerConnection, error) {
	if err := conn.Validate(); err != nil {
		return ServerConnection{}, fmt.Errorf("invalid connection: %w", err)
	}

	conn.ID = uuid.NewString()
	conn.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	next := append(s.snapshot(), conn)
	if err := s.save(next); err != nil {
		s.mu.Unlock()
		return ServerConnection{}, err
	}
	s.servers = next
	list := s.snapshot()
	s.mu.Unlock()

	s.logger.Info("added server connection",
		"id", conn.ID,
		"name", conn.Name,
		"kind", conn.Kind)
	s.notify(list)

	return conn, nil
}

// Update replaces the stored record with the same id.
func (s *Store) Update(conn ServerConnection) error {
	if err := conn.Validate(); err != nil {
		return fmt.Errorf("invalid connection: %w", err)
	}

	s.mu.Lock()
	next := s.snapshot()
	found := false
	for i := range next {
		if next[i].ID == conn.ID {
			// Creation time is immutable across edits
			conn.CreatedAt = next[i].CreatedAt
			next[i] = conn
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return ErrNotFound
	}
	if err := s.save(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.servers = next
	list := s.snapshot()
	s.mu.Unlock()

	s.logger.Info("updated server connection", "id", conn.ID, "name", conn.Name)
	s.notify(list)

	return nil
}

// Delete removes the connection with the given id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	next := s.snapshot()
	found := false
	for i := range next {
		if next[i].ID == id {
			next = append(next[:i], next[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return ErrNotFound
	}
	if err := s.save(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.servers = next
	list := s.snapshot()
	s.mu.Unlock()

	s.logger.Info("deleted server connection", "id", id)
	s.notify(list)

	return nil
}

// Watch returns a channel that receives the full connection list after
// every mutation, and a cancel function that releases it. A slow
// receiver only ever sees the most recent list.
func (s *Store) Watch() (<-chan []ServerConnection, func()) {
	ch := make(chan []ServerConnection, 1)

	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, w := range s.watchers {
			if w == ch {
				s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
				break
			}
		}
	}

	return ch, cancel
}

// snapshot copies the current list; callers must hold at least a read lock.
func (s *Store) snapshot() []ServerConnection {
	list := make([]ServerConnection, len(s.servers))
	copy(list, s.servers)
	return list
}

func (s *Store) notify(list []ServerConnection) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.watchers {
		// Drop a stale pending list rather than block the mutator
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- list:
		default:
		}
	}
}

// save writes the given connection list to disk; callers must hold the
// write lock and only commit the list to s.servers after save returns
// nil, so a failed persist never leaves a record visible in memory.
// Writes go through a temp file and rename so a crash mid-write never
// corrupts the store.
func (s *Store) save(servers []ServerConnection) error {
	doc := storeFile{Servers: servers}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal connections: %w", err)
	}

	tmpPath := s.persistPath + ".tmp"
	if err := afero.WriteFile(s.fs, tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := s.fs.Rename(tmpPath, s.persistPath); err != nil {
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	s.logger.Debug("persisted server connections", "path", s.persistPath, "count", len(servers))
	return nil
}

// load restores connections from disk; a missing file is not an error.
func (s *Store) load() error {
	data, err := afero.ReadFile(s.fs, s.persistPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read file: %w", err)
	}

	var doc storeFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal connections: %w", err)
	}

	s.mu.Lock()
	s.servers = doc.Servers
	s.mu.Unlock()

	s.logger.Debug("loaded server connections", "path", s.persistPath, "count", len(doc.Servers))
	return nil
}
