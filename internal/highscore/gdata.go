package highscore

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
)

const (
	gdataObject   = "breakout"
	gdataProperty = "high_scores"
)

// GdataStore keeps the table in the platform's save-data location
// (XDG data dir, AppData, browser storage) using the text file format.
type GdataStore struct {
	mgr    *gdata.Manager
	limit  int
	logger *log.Logger
	mu     sync.Mutex
}

// OpenGdata opens the save-data manager for appName.
func OpenGdata(appName string, limit int, logger *log.Logger) (*GdataStore, error) {
	mgr, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("highscore: cannot open save data: %w", err)
	}
	return NewGdataStore(mgr, limit, logger), nil
}

// NewGdataStore wraps an existing manager.
func NewGdataStore(mgr *gdata.Manager, limit int, logger *log.Logger) *GdataStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = log.Default()
	}
	return &GdataStore{mgr: mgr, limit: limit, logger: logger}
}

// Load implements Store.
func (s *GdataStore) Load() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *GdataStore) load() ([]Entry, error) {
	if !s.mgr.ObjectPropExists(gdataObject, gdataProperty) {
		return nil, nil
	}
	data, err := s.mgr.LoadObjectProp(gdataObject, gdataProperty)
	if err != nil {
		return nil, fmt.Errorf("highscore: cannot load save data: %w", err)
	}
	return decode(data, s.limit, s.logger), nil
}

// Record implements Store.
func (s *GdataStore) Record(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries = Rank(append(entries, e), s.limit)
	if err := s.mgr.SaveObjectProp(gdataObject, gdataProperty, Format(entries)); err != nil {
		return fmt.Errorf("highscore: cannot save save data: %w", err)
	}
	return nil
}

// Reset implements Store.
func (s *GdataStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mgr.SaveObjectProp(gdataObject, gdataProperty, nil); err != nil {
		return fmt.Errorf("highscore: cannot clear save data: %w", err)
	}
	return nil
}
