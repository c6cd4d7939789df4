// Package theme holds the process-wide light/dark preference.
//
// A Store reads the persisted value once when it is created and writes every
// change straight back. Views that care about the theme subscribe instead of
// polling.
package theme

import (
	"context"
	"fmt"
	"sync"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Default applies when nothing valid was persisted.
const Default = Dark

// Parse maps a persisted value to a Theme; anything unknown is Default.
func Parse(s string) Theme {
	switch Theme(s) {
	case Light:
		return Light
	case Dark:
		return Dark
	}
	return Default
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

func (t Theme) String() string { return string(t) }

// Storage persists the preference.
type Storage interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, value string) error
}

// Store is the single owner of the current theme.
type Store struct {
	storage Storage
	saveMu  sync.Mutex

	mu   sync.Mutex
	cur  Theme
	subs map[int]chan Theme
	next int
}

// NewStore reads the stored preference. A read failure is returned together with
// a usable store holding Default.
func NewStore(ctx context.Context, storage Storage) (*Store, error) {
	s := &Store{storage: storage, cur: Default, subs: make(map[int]chan Theme)}
	raw, err := storage.Load(ctx)
	if err != nil {
		return s, fmt.Errorf("load theme: %w", err)
	}
	s.cur = Parse(raw)
	return s, nil
}

func (s *Store) Current() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Toggle flips the theme and returns the new value.
func (s *Store) Toggle(ctx context.Context) (Theme, error) {
	s.mu.Lock()
	next := s.cur.Opposite()
	s.apply(next)
	s.mu.Unlock()
	return next, s.persist(ctx)
}

// Set changes the theme, notifies subscribers and persists it. The in-memory value
// changes even when persisting fails.
func (s *Store) Set(ctx context.Context, t Theme) error {
	s.mu.Lock()
	s.apply(t)
	s.mu.Unlock()
	return s.persist(ctx)
}

// apply must be called with mu held.
func (s *Store) apply(t Theme) {
	s.cur = t
	for _, ch := range s.subs {
		publish(ch, t)
	}
}

// persist writes the current value, so the last write always matches memory.
func (s *Store) persist(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if err := s.storage.Save(ctx, string(s.Current())); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Subscribe returns a channel that always holds the most recent theme not yet
// received, and a func that stops delivery.
func (s *Store) Subscribe() (<-chan Theme, func()) {
	ch := make(chan Theme, 1)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// publish replaces any unread value so a slow reader only sees the latest.
func publish(ch chan Theme, t Theme) {
	for {
		select {
		case ch <- t:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
