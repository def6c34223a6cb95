// Package draft owns the durable persistence of in-progress listing drafts.
// Storage moves through a small per-session state machine
// (empty -> pending -> restored|discarded -> empty) so the recovery prompt is
// offered exactly once and reads/writes never scatter through the UI layer.
package draft

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"nestlist/internal/domain"
	"nestlist/internal/repos"
)

var ErrCorrupt = errors.New("saved draft could not be read")

// ShouldPersist is the minimum-viable-draft predicate: identity, address,
// price and year must all be present before anything is written, so
// near-empty drafts never hit storage.
func ShouldPersist(d *domain.Draft) bool {
	for _, s := range []string{d.Type, d.Name, d.StreetAddress, d.City, d.Price, d.YearBuilt} {
		if strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}

type state int

const (
	stateEmpty state = iota
	statePending
	stateSettled // restored or discarded this session
)

// Store is the single owner of stored drafts. Writes are last-writer-wins;
// there is no schema version and no expiry — a draft persists until restored,
// discarded, or superseded by a successful submission.
type Store struct {
	repo *repos.DraftRepo

	mu     sync.Mutex
	states map[string]state
}

func NewStore(repo *repos.DraftRepo) *Store {
	return &Store{repo: repo, states: map[string]state{}}
}

// Save serializes the draft for the session, skipping drafts that do not yet
// satisfy ShouldPersist. Fire-and-forget from the caller's point of view.
func (s *Store) Save(sessionID string, d *domain.Draft) error {
	if !ShouldPersist(d) {
		return nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	if err := s.repo.Put(sessionID, string(b)); err != nil {
		return err
	}
	s.mu.Lock()
	if s.states[sessionID] == stateEmpty {
		s.states[sessionID] = statePending
	}
	s.mu.Unlock()
	return nil
}

// Pending reports whether a stored draft exists that the user has not yet
// been asked about this session.
func (s *Store) Pending(sessionID string) bool {
	s.mu.Lock()
	st, known := s.states[sessionID]
	s.mu.Unlock()
	if known {
		return st == statePending
	}
	_, ok, err := s.repo.Get(sessionID)
	if err != nil || !ok {
		return false
	}
	s.mu.Lock()
	s.states[sessionID] = statePending
	s.mu.Unlock()
	return true
}

// Restore deserializes the stored draft. On parse failure the stored value is
// dropped and ErrCorrupt returned; the caller keeps its defaults.
func (s *Store) Restore(sessionID string) (*domain.Draft, error) {
	payload, ok, err := s.repo.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("no saved draft")
	}
	var d domain.Draft
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		_ = s.repo.Delete(sessionID)
		s.setSettled(sessionID)
		return nil, ErrCorrupt
	}
	s.setSettled(sessionID)
	return &d, nil
}

// Discard deletes the stored draft and keeps defaults.
func (s *Store) Discard(sessionID string) error {
	s.setSettled(sessionID)
	return s.repo.Delete(sessionID)
}

// Clear deletes the stored draft unconditionally after a successful
// submission and resets the session's cycle.
func (s *Store) Clear(sessionID string) error {
	s.mu.Lock()
	delete(s.states, sessionID)
	s.mu.Unlock()
	return s.repo.Delete(sessionID)
}

func (s *Store) setSettled(sessionID string) {
	s.mu.Lock()
	s.states[sessionID] = stateSettled
	s.mu.Unlock()
}
