package usecase

import (
	"sort"
	"sync"
	"time"

	"github.com/x-xyz/auctionapi/domain/auction"
)

type stopper interface {
	Stop() bool
}

// entry owns one tournament's state. mu serializes every read and mutation of it.
type entry struct {
	mu    sync.Mutex
	state *auction.State
	timer stopper
	// gen identifies the armed timer; a callback of an older generation is ignored
	gen uint64
}

func (e *entry) stopTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.gen++
}

// stateStore is the table of live auctions, one per tournament id
type stateStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func newStateStore() *stateStore {
	return &stateStore{
		entries: map[string]*entry{},
	}
}

func (s *stateStore) get(tournamentID string) *entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[tournamentID]
}

// insertIfAbsent stores e unless the tournament already has an entry, which is returned instead
func (s *stateStore) insertIfAbsent(tournamentID string, e *entry) (*entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.entries[tournamentID]; ok {
		return cur, false
	}
	s.entries[tournamentID] = e
	return e, true
}

func (s *stateStore) remove(tournamentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, tournamentID)
}

// ids returns the stored tournament ids, sorted
func (s *stateStore) ids() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *stateStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var afterFunc = func(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}
