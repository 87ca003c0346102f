package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/base/log"
	"github.com/x-xyz/auctionapi/base/metrics"
	"github.com/x-xyz/auctionapi/base/ptr"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/auction"
	"github.com/x-xyz/auctionapi/domain/tournament"
)

const (
	defaultTaskTimeout    = 3 * time.Second
	defaultRestoreWorkers = 8
	// roundGrace lets a round timer fire strictly after endsAt
	roundGrace = time.Millisecond
)

var (
	timeNow = time.Now
)

// TaskRunner runs fire-and-forget work off the caller's goroutine. *goroutines.Pool satisfies it.
type TaskRunner interface {
	ScheduleWithTimeout(timeout time.Duration, task goroutines.TaskFunc) error
}

type EngineCfg struct {
	Snapshots   auction.SnapshotRepo
	Tournaments tournament.Usecase
	Notifier    auction.Notifier
	Runner      TaskRunner
	Metrics     metrics.Service

	TaskTimeout    time.Duration
	PersistRetries int
	PersistBackoff time.Duration
	RestoreWorkers int
}

type impl struct {
	store       *stateStore
	writer      *snapshotWriter
	snapshots   auction.SnapshotRepo
	tournaments tournament.Usecase
	notifier    auction.Notifier
	runner      TaskRunner
	met         metrics.Service

	taskTimeout    time.Duration
	restoreWorkers int
}

func NewEngine(cfg *EngineCfg) auction.Usecase {
	im := &impl{
		store:          newStateStore(),
		writer:         newSnapshotWriter(cfg.Snapshots, cfg.Metrics, cfg.PersistRetries, cfg.PersistBackoff),
		snapshots:      cfg.Snapshots,
		tournaments:    cfg.Tournaments,
		notifier:       cfg.Notifier,
		runner:         cfg.Runner,
		met:            cfg.Metrics,
		taskTimeout:    cfg.TaskTimeout,
		restoreWorkers: cfg.RestoreWorkers,
	}
	if im.taskTimeout <= 0 {
		im.taskTimeout = defaultTaskTimeout
	}
	if im.restoreWorkers <= 0 {
		im.restoreWorkers = defaultRestoreWorkers
	}
	return im
}

func (im *impl) Start(c ctx.Ctx, tournamentID string, players []auction.PlayerRegistration, activePlayerID string) (*auction.StartResult, error) {
	t, err := im.tournaments.Get(c, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status == tournament.StatusClosed {
		return nil, auction.ErrAuctionClosed
	}
	if len(players) == 0 {
		return nil, auction.ErrEmptyPool
	}

	base, err := im.storedRevision(c, tournamentID)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	e := &entry{state: auction.NewState(tournamentID, t.AuctionConfig, players, activePlayerID, now)}
	e.state.Revision += base
	e.mu.Lock()
	if cur, ok := im.store.insertIfAbsent(tournamentID, e); !ok {
		e.mu.Unlock()
		cur.mu.Lock()
		closed := cur.state.Status == auction.StatusClosed
		cur.mu.Unlock()
		if closed {
			return nil, auction.ErrAuctionClosed
		}
		return nil, auction.ErrAuctionRunning
	}
	st := e.state
	im.arm(tournamentID, e, now)
	snap := auction.NewSnapshot(st)
	res := &auction.StartResult{
		TournamentID: tournamentID,
		EndsAt:       *st.EndsAt,
		ActivePlayer: st.ActivePlayer.UserID,
	}
	e.mu.Unlock()

	c = ctx.WithValue(c, "tournamentId", tournamentID)
	if err := im.writer.write(c, snap); err != nil {
		c.WithField("err", err).Error("writer.write failed")
	}
	im.async(c, "tournament.status", func(c ctx.Ctx) {
		if err := im.tournaments.UpdateStatus(c, tournamentID, tournament.StatusRunning); err != nil {
			c.WithField("err", err).Error("tournaments.UpdateStatus failed")
		}
	})
	im.met.BumpSum("auction.start", 1)
	return res, nil
}

func (im *impl) PlaceBid(c ctx.Ctx, tournamentID, teamID string, amount int64) (*auction.BidResult, error) {
	e := im.store.get(tournamentID)
	if e == nil {
		return nil, auction.ErrNoActiveAuction
	}

	e.mu.Lock()
	st := e.state
	switch {
	case st.Status == auction.StatusClosed:
		e.mu.Unlock()
		return nil, auction.ErrAuctionClosed
	case st.ActivePlayer == nil:
		e.mu.Unlock()
		return nil, auction.ErrNoActivePlayer
	}

	now := timeNow()
	if st.Expired(now) {
		e.mu.Unlock()
		return nil, auction.ErrAuctionEnded
	}

	verdict, err := auction.EvaluateBid(st.Config, st.Ledger(teamID), st.HighestAmount(), auction.BidCandidate{
		TeamID:   teamID,
		Amount:   amount,
		TeamBids: st.TeamBids(teamID),
	})
	if err != nil {
		e.mu.Unlock()
		if v, ok := err.(*auction.RuleViolation); ok {
			im.met.BumpSum("bid.rejected", 1, "reason", string(v.Reason))
		}
		return nil, err
	}

	bid := auction.Bid{TeamID: teamID, Amount: amount, Ts: now}
	extended := st.Accept(bid)
	res := &auction.BidResult{Bid: bid}

	var (
		event   string
		payload interface{}
	)
	if verdict.BuyNow {
		playerID := st.ActivePlayer.UserID
		st.Award(teamID, amount, now)
		res.Awarded = true
		res.PlayerID = playerID
		event = auction.EventAward
		payload = &auction.AwardEvent{TournamentID: tournamentID, PlayerID: playerID, TeamID: teamID, Price: amount}
	} else {
		event = auction.EventBid
		payload = &auction.BidEvent{TournamentID: tournamentID, Bid: bid, EndsAt: ptr.Time(st.EndsAt)}
	}
	res.EndsAt = ptr.Time(st.EndsAt)

	snap := im.commit(e, now)
	if verdict.BuyNow || extended {
		im.arm(tournamentID, e, now)
	}
	e.mu.Unlock()

	c = ctx.WithValue(c, "tournamentId", tournamentID)
	im.persist(c, snap)
	im.publish(c, event, payload)
	if extended {
		im.met.BumpSum("bid.extend", 1)
	}
	im.met.BumpSum("bid.accepted", 1)
	return res, nil
}

func (im *impl) GetState(c ctx.Ctx, tournamentID string) (*auction.State, error) {
	e := im.store.get(tournamentID)
	if e == nil {
		return nil, auction.ErrNoActiveAuction
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone(), nil
}

// Finalize closes bidding and commits every pending assignment to the tournament
// record. It may be retried after a partial failure; committed assignments are not
// written again.
func (im *impl) Finalize(c ctx.Ctx, tournamentID string) error {
	e := im.store.get(tournamentID)
	if e == nil {
		return auction.ErrNoActiveAuction
	}
	c = ctx.WithValue(c, "tournamentId", tournamentID)

	e.mu.Lock()
	now := timeNow()
	if e.state.Status != auction.StatusClosed {
		e.state.Close()
		e.stopTimer()
	}
	pending := e.state.Pending()
	assignments := make(map[string]auction.Assignment, len(pending))
	for _, id := range pending {
		assignments[id] = e.state.Assignments[id]
	}
	e.mu.Unlock()

	committed := []string{}
	var saveErr error
	for _, id := range pending {
		if err := im.tournaments.SaveAssignment(c, tournamentID, id, assignments[id]); err != nil {
			c.WithField("err", err).WithField("playerId", id).Error("tournaments.SaveAssignment failed")
			saveErr = err
			continue
		}
		committed = append(committed, id)
	}

	e.mu.Lock()
	for _, id := range committed {
		e.state.Committed[id] = true
	}
	snap := im.commit(e, now)
	e.mu.Unlock()

	if err := im.writer.write(c, snap); err != nil {
		c.WithField("err", err).Error("writer.write failed")
	}
	if saveErr != nil {
		return fmt.Errorf("%w: %d of %d assignments not committed: %v", domain.ErrPersistenceFailure, len(pending)-len(committed), len(pending), saveErr)
	}

	if err := im.tournaments.UpdateStatus(c, tournamentID, tournament.StatusClosed); err != nil {
		c.WithField("err", err).Error("tournaments.UpdateStatus failed")
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}

	im.publish(c, auction.EventFinalize, &auction.FinalizeEvent{TournamentID: tournamentID})
	im.met.BumpSum("auction.finalize", 1)
	return nil
}

// Discard drops a finalized or never started auction along with its stored
// snapshot, so that nothing of it is restored on the next boot.
func (im *impl) Discard(c ctx.Ctx, tournamentID string) error {
	c = ctx.WithValue(c, "tournamentId", tournamentID)

	var revision uint64
	if e := im.store.get(tournamentID); e != nil {
		e.mu.Lock()
		if e.state.Status != auction.StatusClosed {
			e.mu.Unlock()
			return auction.ErrAuctionRunning
		}
		e.stopTimer()
		revision = e.state.Revision
		im.store.remove(tournamentID)
		e.mu.Unlock()
	}

	if err := im.writer.discard(c, tournamentID, revision); err != nil {
		return err
	}
	im.met.BumpSum("auction.discard", 1)
	return nil
}

// storedRevision returns the revision a new auction has to move past. An
// unreadable stored snapshot is deleted.
func (im *impl) storedRevision(c ctx.Ctx, tournamentID string) (uint64, error) {
	rev := im.writer.last(tournamentID)
	se, err := im.snapshots.Get(c, tournamentID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return rev, nil
	case err != nil:
		c.WithField("err", err).Error("snapshots.Get failed")
		return 0, fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}
	if se.Err != nil {
		c.WithFields(log.Fields{"err": se.Err, "tournamentId": tournamentID}).Warn("drop unreadable snapshot")
		if err := im.writer.discard(c, tournamentID, se.Revision); err != nil {
			return 0, err
		}
	}
	if se.Revision > rev {
		rev = se.Revision
	}
	return rev, nil
}

// Restore loads every persisted snapshot. A snapshot that cannot be decoded, or
// whose tournament is already live, is skipped.
func (im *impl) Restore(c ctx.Ctx) error {
	entries, err := im.snapshots.ScanAll(c)
	if err != nil {
		c.WithField("err", err).Error("snapshots.ScanAll failed")
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}
	if len(entries) == 0 {
		return nil
	}

	b := goroutines.NewBatch(im.restoreWorkers, goroutines.WithBatchSize(len(entries)))
	defer b.Close()
	for i := range entries {
		se := entries[i]
		b.Queue(func() (interface{}, error) {
			if se.Err != nil {
				return nil, xerrors.Errorf("snapshot %s unreadable: %w", se.TournamentID, se.Err)
			}
			return se.Snapshot.Decode()
		})
	}
	b.QueueComplete()

	restored := 0
	for ret := range b.Results() {
		if ret.Error() != nil {
			c.WithField("err", ret.Error()).Warn("skip snapshot")
			im.met.BumpSum("restore.skip", 1)
			continue
		}
		if im.install(c, ret.Value().(*auction.State)) {
			restored++
		}
	}

	c.WithFields(log.Fields{"restored": restored, "total": len(entries)}).Info("auction restore done")
	return nil
}

func (im *impl) install(c ctx.Ctx, st *auction.State) bool {
	tid := st.TournamentID
	e := &entry{state: st}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := im.store.insertIfAbsent(tid, e); !ok {
		c.WithField("tournamentId", tid).Warn("skip snapshot of live auction")
		im.met.BumpSum("restore.skip", 1)
		return false
	}
	im.writer.seen(tid, st.Revision)
	if st.Status == auction.StatusRoundActive {
		im.arm(tid, e, timeNow())
	}
	im.publish(ctx.WithValue(c, "tournamentId", tid), auction.EventRestore, &auction.RestoreEvent{TournamentID: tid})
	return true
}

// Close stops every round timer
func (im *impl) Close() {
	for _, id := range im.store.ids() {
		if e := im.store.get(id); e != nil {
			e.mu.Lock()
			e.stopTimer()
			e.mu.Unlock()
		}
	}
}

// commit bumps the revision and captures a snapshot; the caller holds e.mu
func (im *impl) commit(e *entry, now time.Time) *auction.Snapshot {
	e.state.Revision++
	e.state.UpdatedAt = now
	return auction.NewSnapshot(e.state)
}

// arm replaces the round timer with one firing just after endsAt; the caller holds e.mu
func (im *impl) arm(tournamentID string, e *entry, now time.Time) {
	e.stopTimer()
	if e.state.EndsAt == nil || e.state.Status != auction.StatusRoundActive {
		return
	}
	d := e.state.EndsAt.Sub(now)
	if d < 0 {
		d = 0
	}
	gen := e.gen
	e.timer = afterFunc(d+roundGrace, func() {
		im.closeRound(tournamentID, gen)
	})
}

// closeRound resolves an expired round: the highest bid wins when it meets the
// reserve, otherwise the player goes back to the tail of the pool
func (im *impl) closeRound(tournamentID string, gen uint64) {
	e := im.store.get(tournamentID)
	if e == nil {
		return
	}
	c := ctx.WithValue(ctx.Background(), "tournamentId", tournamentID)

	e.mu.Lock()
	st := e.state
	if gen != e.gen || st.Status != auction.StatusRoundActive {
		e.mu.Unlock()
		return
	}
	now := timeNow()
	if !st.Expired(now) {
		im.arm(tournamentID, e, now)
		e.mu.Unlock()
		return
	}

	var (
		event   string
		payload interface{}
	)
	playerID := st.ActivePlayer.UserID
	if h := st.Highest; h != nil && st.Config.MeetsReserve(h.Amount) {
		winner := *h
		st.Award(winner.TeamID, winner.Amount, now)
		event = auction.EventAward
		payload = &auction.AwardEvent{TournamentID: tournamentID, PlayerID: playerID, TeamID: winner.TeamID, Price: winner.Amount}
		im.met.BumpSum("award", 1)
	} else {
		st.ReturnUnsold(now)
		event = auction.EventUnsold
		payload = &auction.UnsoldEvent{TournamentID: tournamentID, PlayerID: playerID}
		im.met.BumpSum("unsold", 1)
	}
	snap := im.commit(e, now)
	im.arm(tournamentID, e, now)
	e.mu.Unlock()

	im.persist(c, snap)
	im.publish(c, event, payload)
}

func (im *impl) persist(c ctx.Ctx, snap *auction.Snapshot) {
	im.async(c, "snapshot", func(c ctx.Ctx) {
		if err := im.writer.write(c, snap); err != nil {
			c.WithField("err", err).Error("writer.write failed")
		}
	})
}

func (im *impl) publish(c ctx.Ctx, event string, payload interface{}) {
	im.async(c, "publish", func(c ctx.Ctx) {
		if err := im.notifier.Publish(c, event, payload); err != nil {
			c.WithField("err", err).WithField("event", event).Warn("notifier.Publish failed")
			im.met.BumpSum("publish.err", 1, "event", event)
		}
	})
}

// async hands task to the runner detached from the request. A task the runner
// cannot take in time is dropped and logged.
func (im *impl) async(c ctx.Ctx, name string, task func(c ctx.Ctx)) {
	dc := ctx.Detach(c)
	if err := im.runner.ScheduleWithTimeout(im.taskTimeout, func() { task(dc) }); err != nil {
		c.WithField("err", err).WithField("task", name).Error("runner.ScheduleWithTimeout failed")
		im.met.BumpSum("task.drop", 1, "task", name)
	}
}
