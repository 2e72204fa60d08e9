package highscore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// FileStore keeps the table in a plain text file, one entry per line.
type FileStore struct {
	path   string
	limit  int
	logger *log.Logger
	mu     sync.Mutex
}

// NewFileStore returns a store backed by the file at path. The file and
// its directory are created on the first Record.
func NewFileStore(path string, limit int, logger *log.Logger) *FileStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = log.Default()
	}
	return &FileStore{path: path, limit: limit, logger: logger}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load implements Store.
func (s *FileStore) Load() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("highscore: cannot read %s: %w", s.path, err)
	}
	return decode(data, s.limit, s.logger), nil
}

// Record implements Store.
func (s *FileStore) Record(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries = Rank(append(entries, e), s.limit)
	return s.write(Format(entries))
}

// Reset implements Store.
func (s *FileStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("highscore: cannot remove %s: %w", s.path, err)
	}
	return nil
}

// write replaces the file through a temp file and rename.
func (s *FileStore) write(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("highscore: cannot create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".scores-*")
	if err != nil {
		return fmt.Errorf("highscore: cannot create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("highscore: cannot write scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("highscore: cannot write scores: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("highscore: cannot replace %s: %w", s.path, err)
	}
	return nil
}

// decode parses, logs skipped lines and ranks.
func decode(data []byte, limit int, logger *log.Logger) []Entry {
	entries, bad := Parse(data)
	for _, err := range bad {
		var le *LineError
		if errors.As(err, &le) {
			logger.Warn("skipping corrupt high-score line", "line", le.Line, "text", le.Text)
		}
	}
	return Rank(entries, limit)
}
