package usecase

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/viney-shih/goroutines"
	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/auction"
)

var t0 = time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)

type inlineRunner struct{}

func (inlineRunner) ScheduleWithTimeout(timeout time.Duration, task goroutines.TaskFunc) error {
	task()
	return nil
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func (fc *fakeClock) Now() time.Time {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.now
}

func (fc *fakeClock) Advance(d time.Duration) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.now = fc.now.Add(d)
}

func (fc *fakeClock) AfterFunc(d time.Duration, f func()) stopper {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	fc.timers = append(fc.timers, t)
	return t
}

// pending returns the timers not stopped
func (fc *fakeClock) pending() []*fakeTimer {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	res := []*fakeTimer{}
	for _, t := range fc.timers {
		if !t.stopped {
			res = append(res, t)
		}
	}
	return res
}

// fire runs the last armed timer
func (fc *fakeClock) fire() {
	fc.mu.Lock()
	t := fc.timers[len(fc.timers)-1]
	t.stopped = true
	fc.mu.Unlock()
	t.f()
}

type published struct {
	event   string
	payload interface{}
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []published
}

func (n *fakeNotifier) Publish(c ctx.Ctx, event string, payload interface{}) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, published{event, payload})
	return nil
}

func (n *fakeNotifier) names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	res := []string{}
	for _, e := range n.events {
		res = append(res, e.event)
	}
	return res
}

func (n *fakeNotifier) last() published {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.events[len(n.events)-1]
}

// memSnapshots keeps snapshots in memory with the same revision guard as the mongo store
type memSnapshots struct {
	mu    sync.Mutex
	snaps map[string]*auction.Snapshot
	// broken holds the revisions of records that cannot be decoded
	broken  map[string]uint64
	scan    []auction.SnapshotEntry
	err     error
	puts    int
	deletes int
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{snaps: map[string]*auction.Snapshot{}, broken: map[string]uint64{}}
}

func (m *memSnapshots) Put(c ctx.Ctx, snap *auction.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.err != nil {
		return m.err
	}
	if cur, ok := m.snaps[snap.TournamentID]; ok && cur.Revision > snap.Revision {
		return auction.ErrStaleSnapshot
	}
	if rev, ok := m.broken[snap.TournamentID]; ok && rev > snap.Revision {
		return auction.ErrStaleSnapshot
	}
	delete(m.broken, snap.TournamentID)
	m.snaps[snap.TournamentID] = snap
	return nil
}

func (m *memSnapshots) Get(c ctx.Ctx, tournamentID string) (*auction.SnapshotEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if rev, ok := m.broken[tournamentID]; ok {
		return &auction.SnapshotEntry{TournamentID: tournamentID, Revision: rev, Err: errors.New("unknown snapshot version")}, nil
	}
	snap, ok := m.snaps[tournamentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &auction.SnapshotEntry{TournamentID: tournamentID, Revision: snap.Revision, Snapshot: snap}, nil
}

func (m *memSnapshots) ScanAll(c ctx.Ctx) ([]auction.SnapshotEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scan != nil {
		return m.scan, nil
	}
	ids := []string{}
	for id := range m.snaps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	res := []auction.SnapshotEntry{}
	for _, id := range ids {
		res = append(res, auction.SnapshotEntry{TournamentID: id, Revision: m.snaps[id].Revision, Snapshot: m.snaps[id]})
	}
	return res, nil
}

func (m *memSnapshots) Delete(c ctx.Ctx, tournamentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	_, ok := m.snaps[tournamentID]
	_, bad := m.broken[tournamentID]
	if !ok && !bad {
		return domain.ErrNotFound
	}
	delete(m.snaps, tournamentID)
	delete(m.broken, tournamentID)
	return nil
}

func (m *memSnapshots) stored(tournamentID string) *auction.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snaps[tournamentID]
}

func (m *memSnapshots) revision(tournamentID string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if snap, ok := m.snaps[tournamentID]; ok {
		return snap.Revision
	}
	return 0
}
