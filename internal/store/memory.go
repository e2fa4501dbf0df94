// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Rounds live only as long as the process; nothing here touches disk.
//
// Characteristics:
//   - Stores *game.Round objects keyed by ID in a map.
//   - A Round is not safe for concurrent use, so all mutation goes through
//     Update, which runs the callback while holding the store lock.
//   - Sweep evicts rounds idle for longer than a cutoff.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/SaltyBoi06/mastermind-test/internal/game"
)

// ErrNotFound is returned for unknown round IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for active rounds.
type Store interface {
	// Save adds or replaces a round.
	Save(ctx context.Context, r *game.Round) error

	// View runs fn with read access to the round.
	View(ctx context.Context, id string, fn func(*game.Round) error) error

	// Update runs fn with exclusive access to the round.
	Update(ctx context.Context, id string, fn func(*game.Round) error) error

	// Delete drops a round; deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}

type entry struct {
	round   *game.Round
	touched time.Time
}

// Memory is a map-based Store.
type Memory struct {
	mu     sync.RWMutex
	rounds map[string]*entry
	now    func() time.Time
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{rounds: make(map[string]*entry), now: time.Now}
}

func (m *Memory) Save(ctx context.Context, r *game.Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[r.ID] = &entry{round: r, touched: m.now()}
	return nil
}

func (m *Memory) View(ctx context.Context, id string, fn func(*game.Round) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.rounds[id]
	if !ok {
		return ErrNotFound
	}
	return fn(e.round)
}

func (m *Memory) Update(ctx context.Context, id string, fn func(*game.Round) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rounds[id]
	if !ok {
		return ErrNotFound
	}
	e.touched = m.now()
	return fn(e.round)
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rounds, id)
	return nil
}

// Len reports how many rounds are held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rounds)
}

// Sweep removes rounds not touched within idle and returns how many were dropped.
func (m *Memory) Sweep(idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.rounds {
		if e.touched.Before(cutoff) {
			delete(m.rounds, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
// report, if non-nil, receives the count of each non-empty sweep.
func (m *Memory) RunSweeper(ctx context.Context, interval, idle time.Duration, report func(int)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Sweep(idle); n > 0 && report != nil {
				report(n)
			}
		}
	}
}
