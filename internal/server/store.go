package server

import (
	"sync"

	"github.com/klimeurt/portfolio-collector/internal/collector"
	"github.com/klimeurt/portfolio-collector/internal/models"
	"github.com/klimeurt/portfolio-collector/internal/project"
)

// Store keeps the most recent snapshot for the HTTP handlers.
type Store struct {
	mu       sync.RWMutex
	snapshot *collector.Snapshot
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Update replaces the held snapshot unless s was generated before it.
// It reports whether s was kept.
func (st *Store) Update(s *collector.Snapshot) bool {
	if s == nil {
		return false
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.snapshot != nil && s.GeneratedAt.Before(st.snapshot.GeneratedAt) {
		return false
	}
	st.snapshot = s
	return true
}

// Projects returns the latest project result, or a loading result when no
// snapshot has arrived yet.
func (st *Store) Projects() project.Result {
	st.mu.RLock()
	defer st.mu.RUnlock()

	if st.snapshot == nil {
		return project.Loading()
	}
	return st.snapshot.Projects
}

// Profile returns the profile of the latest snapshot.
func (st *Store) Profile() (*models.Profile, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	if st.snapshot == nil || st.snapshot.Profile == nil {
		return nil, false
	}
	return st.snapshot.Profile, true
}

// Latest returns the held snapshot, if any.
func (st *Store) Latest() (*collector.Snapshot, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.snapshot, st.snapshot != nil
}
