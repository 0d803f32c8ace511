// Package cart holds in-memory shopping carts. Carts are keyed by
// shopper id; requests that carry no shopper id all share the "" cart,
// which preserves the single-cart behavior older clients rely on while
// keeping concurrent shoppers isolated from each other.
package cart

import (
	"errors"
	"sync"
)

var ErrNotInCart = errors.New("product not in cart")

// Line is one cart entry. Quantity is always >= 1 while the line exists.
type Line struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Store is the process-wide cart registry. All methods are safe for
// concurrent use; carts are plain slices guarded by the store mutex.
type Store struct {
	mu    sync.Mutex
	carts map[string][]Line
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]Line)}
}

// Lines returns a copy of the cart's contents in insertion order.
func (s *Store) Lines(key string) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[key]
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

// First returns the cart's first line, if any. The first line anchors
// the single-restaurant rule: every insertion is validated against it,
// so the rule holds for the whole cart transitively.
func (s *Store) First(key string) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[key]
	if len(lines) == 0 {
		return Line{}, false
	}
	return lines[0], true
}

// Add upserts a line, incrementing its quantity by one. New lines start
// at quantity 1 and append at the end.
func (s *Store) Add(key, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[key]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity++
			return
		}
	}
	s.carts[key] = append(lines, Line{ProductID: productID, Quantity: 1})
}

// Decrement lowers a line's quantity by one, removing the line when it
// reaches zero. Absent lines fail with ErrNotInCart.
func (s *Store) Decrement(key, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[key]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity--
			if lines[i].Quantity <= 0 {
				s.carts[key] = append(lines[:i], lines[i+1:]...)
			}
			return nil
		}
	}
	return ErrNotInCart
}

// Remove deletes a line outright regardless of quantity.
func (s *Store) Remove(key, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[key]
	for i := range lines {
		if lines[i].ProductID == productID {
			s.carts[key] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return ErrNotInCart
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, key)
}
