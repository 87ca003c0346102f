package usecase

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/x-xyz/auctionapi/base/backoff"
	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/base/log"
	"github.com/x-xyz/auctionapi/base/metrics"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/auction"
)

type writerSlot struct {
	mu      sync.Mutex
	written uint64
}

// snapshotWriter persists snapshots so that, per tournament, writes never go
// backwards in revision. Concurrent writes of one tournament are serialized.
type snapshotWriter struct {
	repo     auction.SnapshotRepo
	met      metrics.Service
	attempts int
	start    time.Duration

	mu    sync.Mutex
	slots map[string]*writerSlot
}

func newSnapshotWriter(repo auction.SnapshotRepo, met metrics.Service, attempts int, start time.Duration) *snapshotWriter {
	if attempts <= 0 {
		attempts = 1
	}
	return &snapshotWriter{
		repo:     repo,
		met:      met,
		attempts: attempts,
		start:    start,
		slots:    map[string]*writerSlot{},
	}
}

func (w *snapshotWriter) slot(tournamentID string) *writerSlot {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.slots[tournamentID]
	if !ok {
		s = &writerSlot{}
		w.slots[tournamentID] = s
	}
	return s
}

// seen records a revision known to be stored already
func (w *snapshotWriter) seen(tournamentID string, revision uint64) {
	s := w.slot(tournamentID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if revision > s.written {
		s.written = revision
	}
}

// last returns the highest revision known to be stored
func (w *snapshotWriter) last(tournamentID string) uint64 {
	s := w.slot(tournamentID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}

// write stores snap unless a newer revision went out already. A newer snapshot
// found in the store fails the write without retry.
func (w *snapshotWriter) write(c ctx.Ctx, snap *auction.Snapshot) error {
	s := w.slot(snap.TournamentID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Revision <= s.written {
		w.met.BumpSum("snapshot.skip", 1)
		return nil
	}

	defer w.met.BumpTime("snapshot.write").End()
	stale := false
	b := backoff.NewExponential(w.start, 8*w.start)
	err := backoff.Retry(c, b, w.attempts, func() error {
		err := w.repo.Put(c, snap)
		if errors.Is(err, auction.ErrStaleSnapshot) {
			stale = true
			return nil
		}
		return err
	})
	if stale {
		err = auction.ErrStaleSnapshot
	}
	if err != nil {
		w.met.BumpSum("snapshot.err", 1)
		c.WithFields(log.Fields{"err": err, "revision": snap.Revision}).Error("repo.Put failed")
		return fmt.Errorf("%w: snapshot %s@%d: %v", domain.ErrPersistenceFailure, snap.TournamentID, snap.Revision, err)
	}
	s.written = snap.Revision
	return nil
}

// discard deletes the stored snapshot. Writes up to revision still in flight
// are skipped afterwards.
func (w *snapshotWriter) discard(c ctx.Ctx, tournamentID string, revision uint64) error {
	s := w.slot(tournamentID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if revision > s.written {
		s.written = revision
	}
	if err := w.repo.Delete(c, tournamentID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		w.met.BumpSum("snapshot.err", 1)
		c.WithField("err", err).Error("repo.Delete failed")
		return fmt.Errorf("%w: delete snapshot %s: %v", domain.ErrPersistenceFailure, tournamentID, err)
	}
	return nil
}
