package store

import (
	"errors"
	"strings"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when a location is not in the favorites list.
	ErrNotFound = errors.New("location is not a favorite")
	// ErrLimitReached is returned when adding would exceed the configured cap.
	ErrLimitReached = errors.New("favorites limit reached")
)

// Favorite is a saved location with its last refreshed conditions.
type Favorite struct {
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	Country   string    `json:"country"`
	TempC     float64   `json:"temp_c"`
	Condition string    `json:"condition"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FavoritesStore is a concurrency-safe in-memory favorites list. Insertion
// order is preserved; names are matched case-insensitively.
type FavoritesStore struct {
	mu sync.RWMutex

	items []Favorite

	// max number of favorites; <= 0 means unlimited
	limit int
}

// NewFavoritesStore creates a favorites list capped at limit entries.
func NewFavoritesStore(limit int) *FavoritesStore {
	return &FavoritesStore{limit: limit}
}

// Put adds a location to the list, or refreshes the stored fields when the
// name is already present. Adding past the cap fails with ErrLimitReached.
func (s *FavoritesStore) Put(fav Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(fav.Name); i >= 0 {
		s.items[i] = fav
		return nil
	}

	if s.limit > 0 && len(s.items) >= s.limit {
		return ErrLimitReached
	}

	s.items = append(s.items, fav)
	return nil
}

// List returns the favorites in insertion order.
func (s *FavoritesStore) List() []Favorite {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Favorite, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the favorite with the given name.
func (s *FavoritesStore) Get(name string) (Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(name)
	if i < 0 {
		return Favorite{}, ErrNotFound
	}
	return s.items[i], nil
}

// Remove deletes the favorite with the given name.
func (s *FavoritesStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return ErrNotFound
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// UpdateWeather refreshes the stored conditions for a favorite, used by the
// background refresh job.
func (s *FavoritesStore) UpdateWeather(name string, tempC float64, condition string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return ErrNotFound
	}

	s.items[i].TempC = tempC
	s.items[i].Condition = condition
	s.items[i].UpdatedAt = at
	return nil
}

func (s *FavoritesStore) indexOf(name string) int {
	for i, f := range s.items {
		if strings.EqualFold(f.Name, name) {
			return i
		}
	}
	return -1
}
