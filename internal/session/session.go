// Package session holds the per-upload state of the interactive workflow:
// the parsed upload source and the Dataset selected from it. A session owns
// its Dataset exclusively; chart resolution never mutates it, and a failed
// chart request leaves the session untouched.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"datavista/internal/dataset"
)

// Session is one upload and its active dataset. Once a session is published
// in a Store, its Dataset field is guarded by the store mutex: readers go
// through Store.ActiveDataset rather than the field.
type Session struct {
	ID        string
	Source    *dataset.Source
	Dataset   *dataset.Dataset
	CreatedAt time.Time
}

// Store is an in-memory registry of active sessions keyed by id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session for the parsed upload and returns it. For
// CSV uploads (and single-sheet workbooks) the active dataset is populated
// immediately; multi-sheet workbooks wait for a sheet selection.
func (s *Store) Create(src *dataset.Source) (*Session, error) {
	sess := &Session{
		ID:        uuid.New().String(),
		Source:    src,
		CreatedAt: time.Now(),
	}
	if src.Format == dataset.FormatCSV || len(src.SheetNames()) == 1 {
		ds, err := src.Dataset("")
		if err != nil {
			return nil, err
		}
		sess.Dataset = ds
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess, nil
}

// Get returns the session with the given id, or nil when it does not exist.
func (s *Store) Get(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// ActiveDataset returns the session and its active dataset under the store
// lock. The dataset is nil when the session exists but is still waiting for
// a sheet selection.
func (s *Store) ActiveDataset(id string) (*Session, *dataset.Dataset) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := s.sessions[id]
	if sess == nil {
		return nil, nil
	}
	return sess, sess.Dataset
}

// SelectSheet parses the named sheet of the session's workbook and makes it
// the active dataset.
func (s *Store) SelectSheet(id, sheet string) (*dataset.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	ds, err := sess.Source.Dataset(sheet)
	if err != nil {
		return nil, err
	}
	sess.Dataset = ds
	return ds, nil
}

// Delete removes a session and releases its upload source. It reports
// whether the session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok && sess.Source != nil {
		sess.Source.Close()
	}
	return ok
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
