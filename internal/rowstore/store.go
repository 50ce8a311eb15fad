// Package rowstore is the data-fetch collaborator of the gridview CLI.
//
// Datasets are JSONL files in the data directory, one JSON object per line.
// On first use a dataset is loaded into SQLite, which serves filtered
// fetches; the JSONL file stays the source of truth and is rewritten
// atomically after a delete. Lines that are not JSON objects are skipped on
// load and written back unchanged.
package rowstore

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DefaultIDField names the record field that holds a row's identity.
const DefaultIDField = "id"

// datasetExt is the file extension of a dataset.
const datasetExt = ".jsonl"

// dbFile is the SQLite cache file inside the data directory.
const dbFile = "gridview.db"

// Config configures a Store.
type Config struct {
	DataDir string
	IDField string
	Logger  *slog.Logger
}

// Store serves datasets from a data directory.
type Store struct {
	mu       sync.RWMutex
	attached bool
	dataDir  string
	idField  string
	log      *slog.Logger
	db       *sql.DB
	loaded   map[string]*dataset
}

// dataset is what the store remembers about a loaded dataset. Its field
// unparsed holds the lines that are not JSON objects, keyed by position.
type dataset struct {
	path     string
	fields   []string
	count    int
	unparsed map[int][]byte
}

// New creates a detached Store. Call Attach before use.
func New() *Store {
	return &Store{loaded: make(map[string]*dataset)}
}

// Attach opens the SQLite cache in cfg.DataDir, creating the directory when
// needed. Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return ErrAlreadyAttached
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The cache is rebuilt from JSONL on every attach.
	dbPath := filepath.Join(dataDir, dbFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	s.db = db
	s.dataDir = dataDir
	s.idField = cfg.IDField
	if s.idField == "" {
		s.idField = DefaultIDField
	}
	s.log = cfg.Logger
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	s.loaded = make(map[string]*dataset)
	s.attached = true
	return nil
}

// Detach closes the SQLite cache. Detach is idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}
	s.attached = false
	s.loaded = make(map[string]*dataset)
	return nil
}

// IDField returns the record field used as row identity.
func (s *Store) IDField() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idField
}

// Datasets lists the dataset names in the data directory, sorted.
func (s *Store) Datasets() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, ErrDetached
	}
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("reading data dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), datasetExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), datasetExt))
	}
	slices.Sort(names)
	return names, nil
}

// Path returns the JSONL path of a dataset.
func (s *Store) Path(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pathLocked(name), nil
}

// validateName rejects names that would escape the data directory.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidDataset, name)
	}
	return nil
}

// generateID returns a new UUID v7 for records without an identity.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
