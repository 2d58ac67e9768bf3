// Package session ties one CLI invocation to its task file:
// Open loads the store, Close writes it back.
package session

import (
	"github.com/charmbracelet/log"

	"tasklist/internal/logging"
	"tasklist/internal/store"
)

// Session owns the task store for a single run.
type Session struct {
	path   string
	store  *store.Store
	logger *log.Logger
}

// Open loads the task file at path.
// Load errors are never fatal: a missing or unreadable file starts the
// session with whatever could be read, usually nothing.
func Open(path string, logger *log.Logger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}

	st, err := store.Load(path)
	if err != nil {
		logger.Debug("ignoring load error", "path", path, "err", err)
	}
	logger.Debug("loaded tasks", "path", path, "count", st.Len())

	return &Session{
		path:   path,
		store:  st,
		logger: logger,
	}
}

// Store returns the session's task store.
func (s *Session) Store() *store.Store { return s.store }

// Path returns the task file path.
func (s *Session) Path() string { return s.path }

// Logger returns the session logger.
func (s *Session) Logger() *log.Logger { return s.logger }

// Close saves the store to the task file.
func (s *Session) Close() error {
	if err := store.Save(s.path, s.store); err != nil {
		return err
	}
	s.logger.Debug("saved tasks", "path", s.path, "count", s.store.Len())
	return nil
}
