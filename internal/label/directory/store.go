// Package directory maintains an optional cross-meeting directory of known
// people. The labeling workflow uses it to canonicalize typed names ("did you
// mean...") and to carry email/role information into label entries.
//
// The directory is strictly optional: a pipeline run with no configured
// backend uses an in-memory store seeded from the config attendee roster.
package directory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned by Lookup when no person with the given name exists.
var ErrNotFound = errors.New("directory: person not found")

// Person is one directory entry. Name is the canonical display name and the
// primary key; matching against it is case-insensitive.
type Person struct {
	Name  string
	Email string
	Role  string

	// FirstSeen is when the person was first recorded.
	FirstSeen time.Time

	// LastSeen is updated every time a label commits against this person.
	LastSeen time.Time
}

// Store is the persistence abstraction for the directory.
// Implementations must be safe for concurrent use.
type Store interface {
	// Lookup returns the person with the given canonical name
	// (case-insensitive), or [ErrNotFound].
	Lookup(ctx context.Context, name string) (*Person, error)

	// List returns all people ordered by canonical name.
	List(ctx context.Context) ([]Person, error)

	// Upsert inserts the person or, when a person with the same canonical
	// name exists, refreshes LastSeen and fills in any empty Email/Role
	// fields. Existing non-empty fields are never overwritten.
	Upsert(ctx context.Context, p Person) error
}

// MemStore is an in-memory [Store]. The zero value is not usable; call
// [NewMemStore].
type MemStore struct {
	mu     sync.RWMutex
	people map[string]Person // keyed by lowercase name
	now    func() time.Time
}

var _ Store = (*MemStore)(nil)

// NewMemStore returns an empty MemStore, optionally seeded with the given
// people (e.g., the config attendee roster).
func NewMemStore(seed ...Person) *MemStore {
	s := &MemStore{
		people: make(map[string]Person, len(seed)),
		now:    time.Now,
	}
	for _, p := range seed {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		s.people[strings.ToLower(p.Name)] = p
	}
	return s
}

// Lookup implements [Store].
func (s *MemStore) Lookup(_ context.Context, name string) (*Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.people[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// List implements [Store].
func (s *MemStore) List(_ context.Context) ([]Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	people := make([]Person, 0, len(s.people))
	for _, p := range s.people {
		people = append(people, p)
	}
	sort.Slice(people, func(i, j int) bool { return people[i].Name < people[j].Name })
	return people, nil
}

// Upsert implements [Store].
func (s *MemStore) Upsert(_ context.Context, p Person) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return errors.New("directory: person name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(name)
	now := s.now()
	existing, ok := s.people[key]
	if !ok {
		p.Name = name
		p.FirstSeen = now
		p.LastSeen = now
		s.people[key] = p
		return nil
	}
	if existing.Email == "" {
		existing.Email = p.Email
	}
	if existing.Role == "" {
		existing.Role = p.Role
	}
	existing.LastSeen = now
	s.people[key] = existing
	return nil
}
