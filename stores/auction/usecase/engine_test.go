package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/base/metrics"
	"github.com/x-xyz/auctionapi/base/ptr"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/auction"
	"github.com/x-xyz/auctionapi/domain/tournament"
	"github.com/x-xyz/auctionapi/domain/tournament/mocks"
)

type engineSuite struct {
	suite.Suite

	clock       *fakeClock
	snapshots   *memSnapshots
	notifier    *fakeNotifier
	tournaments *mocks.Usecase
	engine      *impl
	cfg         auction.Config
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(engineSuite))
}

func (s *engineSuite) SetupTest() {
	s.clock = &fakeClock{now: t0}
	timeNow = s.clock.Now
	afterFunc = s.clock.AfterFunc

	s.snapshots = newMemSnapshots()
	s.notifier = &fakeNotifier{}
	s.tournaments = &mocks.Usecase{}
	s.cfg = auction.Config{MinBid: 100, Increment: 50, DurationSeconds: 60}
	s.newEngine()
}

func (s *engineSuite) TearDownTest() {
	s.tournaments.AssertExpectations(s.T())
	timeNow = time.Now
	afterFunc = func(d time.Duration, f func()) stopper { return time.AfterFunc(d, f) }
}

func (s *engineSuite) newEngine() {
	s.engine = NewEngine(&EngineCfg{
		Snapshots:      s.snapshots,
		Tournaments:    s.tournaments,
		Notifier:       s.notifier,
		Runner:         inlineRunner{},
		Metrics:        metrics.NewNop(),
		PersistRetries: 2,
	}).(*impl)
}

func pool(ids ...string) []auction.PlayerRegistration {
	res := []auction.PlayerRegistration{}
	for i, id := range ids {
		res = append(res, auction.PlayerRegistration{UserID: id, Name: "p-" + id, RegisteredAt: t0.Add(-time.Duration(len(ids)-i) * time.Minute)})
	}
	return res
}

func (s *engineSuite) start(tid string, players []auction.PlayerRegistration) *auction.StartResult {
	s.tournaments.On("Get", mock.Anything, tid).Return(&tournament.Tournament{ID: tid, AuctionConfig: s.cfg, Status: tournament.StatusOpen}, nil).Once()
	s.tournaments.On("UpdateStatus", mock.Anything, tid, tournament.StatusRunning).Return(nil).Once()
	res, err := s.engine.Start(ctx.Background(), tid, players, "")
	s.Require().NoError(err)
	return res
}

func (s *engineSuite) state(tid string) *auction.State {
	st, err := s.engine.GetState(ctx.Background(), tid)
	s.Require().NoError(err)
	return st
}

func (s *engineSuite) TestStart() {
	res := s.start("t1", pool("a", "b"))
	s.Equal(&auction.StartResult{TournamentID: "t1", EndsAt: t0.Add(time.Minute), ActivePlayer: "a"}, res)

	s.Equal(uint64(1), s.snapshots.revision("t1"))
	timers := s.clock.pending()
	s.Require().Len(timers, 1)
	s.Equal(time.Minute+roundGrace, timers[0].d)

	st := s.state("t1")
	s.Equal(auction.StatusRoundActive, st.Status)
	s.Empty(st.Bids)
}

func (s *engineSuite) TestStartTwice() {
	s.start("t1", pool("a", "b"))
	s.Require().NoError(s.bid("t1", "x", 100))

	s.tournaments.On("Get", mock.Anything, "t1").Return(&tournament.Tournament{ID: "t1", AuctionConfig: s.cfg, Status: tournament.StatusRunning}, nil).Once()
	_, err := s.engine.Start(ctx.Background(), "t1", pool("c"), "")
	s.ErrorIs(err, auction.ErrAuctionRunning)
	s.ErrorIs(err, domain.ErrInvalidState)

	st := s.state("t1")
	s.Equal("a", st.ActivePlayer.UserID)
	s.Equal(int64(100), st.HighestAmount())
}

func (s *engineSuite) TestStartRejected() {
	s.tournaments.On("Get", mock.Anything, "t1").Return(&tournament.Tournament{ID: "t1", Status: tournament.StatusClosed}, nil).Once()
	_, err := s.engine.Start(ctx.Background(), "t1", pool("a"), "")
	s.ErrorIs(err, auction.ErrAuctionClosed)

	s.tournaments.On("Get", mock.Anything, "t2").Return(&tournament.Tournament{ID: "t2", Status: tournament.StatusOpen}, nil).Once()
	_, err = s.engine.Start(ctx.Background(), "t2", nil, "")
	s.ErrorIs(err, auction.ErrEmptyPool)

	s.tournaments.On("Get", mock.Anything, "t3").Return(nil, domain.ErrNotFound).Once()
	_, err = s.engine.Start(ctx.Background(), "t3", pool("a"), "")
	s.ErrorIs(err, domain.ErrNotFound)

	s.Zero(s.engine.store.len())
}

func (s *engineSuite) bid(tid, team string, amount int64) error {
	_, err := s.engine.PlaceBid(ctx.Background(), tid, team, amount)
	return err
}

func (s *engineSuite) TestPlaceBidNoAuction() {
	s.ErrorIs(s.bid("t1", "x", 100), auction.ErrNoActiveAuction)
	_, err := s.engine.GetState(ctx.Background(), "t1")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *engineSuite) TestBidMinimumScenario() {
	s.start("t1", pool("a"))

	err := s.bid("t1", "x", 90)
	s.ErrorIs(err, domain.ErrRuleViolation)
	s.Equal(&auction.RuleViolation{Reason: auction.ReasonBelowMinimum, Required: 100}, err)
	s.Empty(s.state("t1").Bids)
	s.Equal(uint64(1), s.snapshots.revision("t1"))

	s.NoError(s.bid("t1", "x", 100))
	s.Equal(int64(100), s.state("t1").Highest.Amount)

	err = s.bid("t1", "y", 120)
	s.Equal("Bid must be >= 150", err.Error())

	s.NoError(s.bid("t1", "y", 150))
	st := s.state("t1")
	s.Equal(int64(150), st.HighestAmount())
	s.Len(st.Bids, 2)
	s.Equal(uint64(3), s.snapshots.revision("t1"))
	s.Equal([]string{auction.EventBid, auction.EventBid}, s.notifier.names())
}

func (s *engineSuite) TestBidInsufficientBudget() {
	s.cfg.MinBid = 10
	s.start("t1", pool("a"))
	e := s.engine.store.get("t1")
	e.mu.Lock()
	e.state.Teams["x"] = auction.TeamLedger{Budget: 40, Roster: []string{}}
	e.mu.Unlock()

	err := s.bid("t1", "x", 50)
	s.ErrorIs(err, domain.ErrRuleViolation)
	s.Equal(auction.ReasonInsufficientBudget, err.(*auction.RuleViolation).Reason)
	s.Equal(int64(40), s.state("t1").Teams["x"].Budget)
}

func (s *engineSuite) TestBidAfterDeadline() {
	s.start("t1", pool("a"))
	s.clock.Advance(time.Minute + time.Millisecond)
	s.ErrorIs(s.bid("t1", "x", 100), auction.ErrAuctionEnded)
	s.ErrorIs(s.bid("t1", "x", 100), domain.ErrExpired)
}

func (s *engineSuite) TestBuyNow() {
	s.cfg.BuyNowPrice = ptr.Int64(500)
	s.start("t1", pool("a", "b"))
	s.NoError(s.bid("t1", "x", 100))

	res, err := s.engine.PlaceBid(ctx.Background(), "t1", "y", 500)
	s.NoError(err)
	s.True(res.Awarded)
	s.Equal("a", res.PlayerID)
	s.Equal(t0.Add(time.Minute), *res.EndsAt)

	st := s.state("t1")
	s.Equal(auction.Assignment{TeamID: "y", Price: 500, AssignedAt: t0}, st.Assignments["a"])
	s.Equal("b", st.ActivePlayer.UserID)
	s.Empty(st.Bids)
	s.Nil(st.Highest)
	s.Equal(auction.StartingBudget-500, st.Teams["y"].Budget)

	s.Equal([]string{auction.EventBid, auction.EventAward}, s.notifier.names())
	s.Equal(&auction.AwardEvent{TournamentID: "t1", PlayerID: "a", TeamID: "y", Price: 500}, s.notifier.last().payload)
}

func (s *engineSuite) TestBuyNowLastPlayerExhausts() {
	s.cfg.BuyNowPrice = ptr.Int64(200)
	s.start("t1", pool("a"))

	res, err := s.engine.PlaceBid(ctx.Background(), "t1", "x", 200)
	s.NoError(err)
	s.Nil(res.EndsAt)
	s.Empty(s.clock.pending())

	st := s.state("t1")
	s.Equal(auction.StatusExhausted, st.Status)
	s.ErrorIs(s.bid("t1", "x", 300), auction.ErrNoActivePlayer)
}

func (s *engineSuite) TestAntiSniping() {
	s.cfg.AntiSnipingSeconds = 10
	s.cfg.AutoExtendSeconds = 30
	s.start("t1", pool("a"))

	s.clock.Advance(45 * time.Second)
	res, err := s.engine.PlaceBid(ctx.Background(), "t1", "x", 100)
	s.NoError(err)
	s.Equal(t0.Add(time.Minute), *res.EndsAt)

	s.clock.Advance(10 * time.Second)
	res, err = s.engine.PlaceBid(ctx.Background(), "t1", "y", 150)
	s.NoError(err)
	s.Equal(t0.Add(90*time.Second), *res.EndsAt)
	timers := s.clock.pending()
	s.Require().Len(timers, 1)
	s.Equal(35*time.Second+roundGrace, timers[0].d)

	s.clock.Advance(30 * time.Second)
	res, err = s.engine.PlaceBid(ctx.Background(), "t1", "x", 200)
	s.NoError(err)
	s.Equal(t0.Add(120*time.Second), *res.EndsAt)

	payload := s.notifier.last().payload.(*auction.BidEvent)
	s.Equal(t0.Add(120*time.Second), *payload.EndsAt)
}

func (s *engineSuite) TestRoundCloserAwards() {
	s.start("t1", pool("a", "b"))
	s.NoError(s.bid("t1", "x", 100))
	s.NoError(s.bid("t1", "y", 150))

	s.clock.Advance(time.Minute + roundGrace)
	s.clock.fire()

	st := s.state("t1")
	s.Equal(auction.Assignment{TeamID: "y", Price: 150, AssignedAt: t0.Add(time.Minute + roundGrace)}, st.Assignments["a"])
	s.Equal("b", st.ActivePlayer.UserID)
	s.Equal(t0.Add(2*time.Minute+roundGrace), *st.EndsAt)
	s.Equal(auction.EventAward, s.notifier.last().event)
	s.Len(s.clock.pending(), 1)
	s.Equal(st.Revision, s.snapshots.revision("t1"))
}

func (s *engineSuite) TestRoundCloserBelowReserve() {
	s.cfg.ReservePrice = ptr.Int64(200)
	s.start("t1", pool("a", "b"))
	s.NoError(s.bid("t1", "x", 150))

	s.clock.Advance(2 * time.Minute)
	s.clock.fire()

	st := s.state("t1")
	s.Empty(st.Assignments)
	s.Equal([]string{"b", "a"}, []string{st.Players[0].UserID, st.Players[1].UserID})
	s.Equal("b", st.ActivePlayer.UserID)
	s.Nil(st.Highest)
	s.Equal(&auction.UnsoldEvent{TournamentID: "t1", PlayerID: "a"}, s.notifier.last().payload)
}

func (s *engineSuite) TestRoundCloserNoBids() {
	s.start("t1", pool("a"))
	s.clock.Advance(2 * time.Minute)
	s.clock.fire()

	st := s.state("t1")
	s.Equal("a", st.ActivePlayer.UserID)
	s.Equal(t0.Add(3*time.Minute), *st.EndsAt)
	s.Equal(auction.EventUnsold, s.notifier.last().event)
}

func (s *engineSuite) TestRoundCloserEarlyRearms() {
	s.start("t1", pool("a"))
	s.clock.Advance(30 * time.Second)
	s.clock.fire()

	st := s.state("t1")
	s.Equal(uint64(1), st.Revision)
	timers := s.clock.pending()
	s.Require().Len(timers, 1)
	s.Equal(30*time.Second+roundGrace, timers[0].d)
}

func (s *engineSuite) TestStaleTimerIgnored() {
	s.cfg.AntiSnipingSeconds = 10
	s.cfg.AutoExtendSeconds = 10
	s.start("t1", pool("a"))
	stale := s.clock.pending()[0]

	s.clock.Advance(55 * time.Second)
	s.NoError(s.bid("t1", "x", 100))
	s.True(stale.stopped)

	s.clock.Advance(20 * time.Second)
	stale.f()
	s.Empty(s.state("t1").Assignments)
}

func (s *engineSuite) TestFinalize() {
	s.cfg.BuyNowPrice = ptr.Int64(300)
	s.start("t1", pool("a", "b"))
	s.NoError(s.bid("t1", "x", 300))

	s.tournaments.On("SaveAssignment", mock.Anything, "t1", "a", auction.Assignment{TeamID: "x", Price: 300, AssignedAt: t0}).Return(nil).Once()
	s.tournaments.On("UpdateStatus", mock.Anything, "t1", tournament.StatusClosed).Return(nil).Twice()
	s.NoError(s.engine.Finalize(ctx.Background(), "t1"))

	st := s.state("t1")
	s.Equal(auction.StatusClosed, st.Status)
	s.Nil(st.EndsAt)
	s.True(st.Committed["a"])
	s.Empty(st.Pending())
	s.Empty(s.clock.pending())
	s.Equal(auction.EventFinalize, s.notifier.last().event)
	s.True(s.snapshots.snaps["t1"].Assignments[0].Committed)

	s.ErrorIs(s.bid("t1", "y", 400), auction.ErrAuctionClosed)

	// committed assignments are not saved again
	s.NoError(s.engine.Finalize(ctx.Background(), "t1"))
}

func (s *engineSuite) TestFinalizePartialFailure() {
	s.cfg.BuyNowPrice = ptr.Int64(300)
	s.start("t1", pool("a", "b"))
	s.NoError(s.bid("t1", "x", 300))
	s.NoError(s.bid("t1", "y", 300))

	errDown := errors.New("down")
	s.tournaments.On("SaveAssignment", mock.Anything, "t1", "a", mock.Anything).Return(nil).Once()
	s.tournaments.On("SaveAssignment", mock.Anything, "t1", "b", mock.Anything).Return(errDown).Once()
	err := s.engine.Finalize(ctx.Background(), "t1")
	s.ErrorIs(err, domain.ErrPersistenceFailure)
	s.Equal([]string{"b"}, s.state("t1").Pending())

	s.tournaments.On("SaveAssignment", mock.Anything, "t1", "b", mock.Anything).Return(nil).Once()
	s.tournaments.On("UpdateStatus", mock.Anything, "t1", tournament.StatusClosed).Return(nil).Once()
	s.NoError(s.engine.Finalize(ctx.Background(), "t1"))
	s.Empty(s.state("t1").Pending())
}

func (s *engineSuite) TestFinalizeNoAuction() {
	s.ErrorIs(s.engine.Finalize(ctx.Background(), "t1"), auction.ErrNoActiveAuction)
}

func (s *engineSuite) TestPersistenceFailureKeepsMutation() {
	s.start("t1", pool("a"))
	s.snapshots.err = errors.New("mongo down")

	s.NoError(s.bid("t1", "x", 100))
	s.Equal(int64(100), s.state("t1").HighestAmount())
	s.Equal(uint64(1), s.snapshots.revision("t1"))
	s.Equal(1+2, s.snapshots.puts)
}

func (s *engineSuite) TestRestore() {
	s.cfg.BuyNowPrice = ptr.Int64(300)
	s.start("t1", pool("a", "b", "c"))
	s.NoError(s.bid("t1", "x", 300))
	s.NoError(s.bid("t1", "y", 100))
	before := s.state("t1")

	bad := auction.NewSnapshot(before)
	bad.TournamentID = "t3"
	bad.Version = 2
	s.snapshots.scan = []auction.SnapshotEntry{
		{TournamentID: "t1", Snapshot: s.snapshots.snaps["t1"]},
		{TournamentID: "t2", Err: errors.New("truncated document")},
		{TournamentID: "t3", Snapshot: bad},
	}

	s.notifier = &fakeNotifier{}
	s.newEngine()
	s.NoError(s.engine.Restore(ctx.Background()))

	after := s.state("t1")
	s.Equal(before.Teams, after.Teams)
	s.Equal(before.Assignments, after.Assignments)
	s.Equal(before.Players, after.Players)
	s.Equal(before.Highest, after.Highest)
	s.Equal(before.EndsAt, after.EndsAt)
	s.Empty(after.Bids)

	for _, tid := range []string{"t2", "t3"} {
		_, err := s.engine.GetState(ctx.Background(), tid)
		s.ErrorIs(err, auction.ErrNoActiveAuction)
	}
	s.Equal([]string{auction.EventRestore}, s.notifier.names())
	s.Equal(&auction.RestoreEvent{TournamentID: "t1"}, s.notifier.last().payload)

	// the restored round keeps its deadline and closer
	s.NoError(s.bid("t1", "x", 150))
	s.clock.Advance(2 * time.Minute)
	s.clock.fire()
	s.Equal("x", s.state("t1").Assignments["b"].TeamID)
}

func (s *engineSuite) TestRestoreEmpty() {
	s.snapshots.scan = []auction.SnapshotEntry{}
	s.NoError(s.engine.Restore(ctx.Background()))
	s.Zero(s.engine.store.len())
}

func (s *engineSuite) TestConcurrentBids() {
	s.cfg = auction.Config{MinBid: 1, Increment: 1, DurationSeconds: 60}
	s.start("t1", pool("a"))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted []int64
	)
	for i := 1; i <= 50; i++ {
		amount := int64(i)
		team := []string{"x", "y", "z"}[i%3]
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.bid("t1", team, amount); err == nil {
				mu.Lock()
				accepted = append(accepted, amount)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	st := s.state("t1")
	s.Len(st.Bids, len(accepted))
	max := int64(0)
	for i, b := range st.Bids {
		if i > 0 {
			s.Greater(b.Amount, st.Bids[i-1].Amount)
		}
		if b.Amount > max {
			max = b.Amount
		}
	}
	s.Equal(max, st.HighestAmount())
	s.Equal(uint64(1+len(accepted)), st.Revision)
}

func (s *engineSuite) TestClose() {
	s.start("t1", pool("a"))
	s.engine.Close()
	s.Empty(s.clock.pending())
}

func (s *engineSuite) TestRosterFull() {
	s.cfg.BuyNowPrice = ptr.Int64(100)
	s.start("t1", pool("a", "b", "c", "d", "e", "f", "g", "h", "i", "j"))
	for i := 0; i < auction.RosterSize; i++ {
		res, err := s.engine.PlaceBid(ctx.Background(), "t1", "x", 100)
		s.Require().NoError(err)
		s.True(res.Awarded)
	}
	before := s.state("t1")
	s.Equal("j", before.ActivePlayer.UserID)

	err := s.bid("t1", "x", 100)
	s.ErrorIs(err, domain.ErrRuleViolation)
	s.Equal(&auction.RuleViolation{Reason: auction.ReasonRosterFull}, err)

	after := s.state("t1")
	s.Empty(after.Bids)
	s.Nil(after.Highest)
	s.Equal(before.Revision, after.Revision)
	s.Len(after.Teams["x"].Roster, auction.RosterSize)
	s.Equal(auction.StartingBudget-int64(auction.RosterSize)*100, after.Teams["x"].Budget)
	s.Equal("j", after.ActivePlayer.UserID)
}

func (s *engineSuite) TestStartReplacesOlderStoredSnapshot() {
	old := auction.NewSnapshot(auction.NewState("t1", s.cfg, pool("z"), "", t0.Add(-time.Hour)))
	old.Revision = 10
	s.snapshots.snaps["t1"] = old

	s.start("t1", pool("a", "b"))
	s.Equal(uint64(11), s.state("t1").Revision)
	s.NoError(s.bid("t1", "x", 100))
	s.NoError(s.bid("t1", "y", 150))

	stored := s.snapshots.stored("t1")
	s.Equal(uint64(13), stored.Revision)
	restored, err := stored.Decode()
	s.Require().NoError(err)
	s.Equal("a", restored.Players[0].UserID)
	s.Equal(int64(150), restored.HighestAmount())
}

func (s *engineSuite) TestStartDropsUnreadableSnapshot() {
	s.snapshots.broken["t1"] = 7

	s.start("t1", pool("a"))
	s.Equal(uint64(8), s.state("t1").Revision)
	s.Equal(1, s.snapshots.deletes)
	s.Equal(uint64(8), s.snapshots.revision("t1"))
}

func (s *engineSuite) TestStartSnapshotLookupFails() {
	s.snapshots.err = errors.New("mongo down")
	s.tournaments.On("Get", mock.Anything, "t1").Return(&tournament.Tournament{ID: "t1", AuctionConfig: s.cfg, Status: tournament.StatusOpen}, nil).Once()
	_, err := s.engine.Start(ctx.Background(), "t1", pool("a"), "")
	s.ErrorIs(err, domain.ErrPersistenceFailure)
	s.Zero(s.engine.store.len())
}

func (s *engineSuite) TestDiscard() {
	s.cfg.BuyNowPrice = ptr.Int64(300)
	s.start("t1", pool("a"))
	s.NoError(s.bid("t1", "x", 300))
	s.tournaments.On("SaveAssignment", mock.Anything, "t1", "a", mock.Anything).Return(nil).Once()
	s.tournaments.On("UpdateStatus", mock.Anything, "t1", tournament.StatusClosed).Return(nil).Once()
	s.NoError(s.engine.Finalize(ctx.Background(), "t1"))
	rev := s.state("t1").Revision

	s.NoError(s.engine.Discard(ctx.Background(), "t1"))
	s.Zero(s.engine.store.len())
	s.Nil(s.snapshots.stored("t1"))

	// a late write of the discarded auction does not bring it back
	s.NoError(s.engine.writer.write(ctx.Background(), &auction.Snapshot{Version: auction.SnapshotVersion, TournamentID: "t1", Revision: rev}))
	s.Nil(s.snapshots.stored("t1"))

	// nothing is left to restore
	s.newEngine()
	s.NoError(s.engine.Restore(ctx.Background()))
	s.Zero(s.engine.store.len())
}

func (s *engineSuite) TestDiscardLiveAuction() {
	s.start("t1", pool("a"))
	s.ErrorIs(s.engine.Discard(ctx.Background(), "t1"), auction.ErrAuctionRunning)
	s.Equal(1, s.engine.store.len())
	s.Equal(uint64(1), s.snapshots.revision("t1"))
	s.Len(s.clock.pending(), 1)
}

func (s *engineSuite) TestDiscardWithoutAuction() {
	s.snapshots.snaps["t2"] = auction.NewSnapshot(auction.NewState("t2", s.cfg, pool("a"), "", t0))
	s.NoError(s.engine.Discard(ctx.Background(), "t2"))
	s.Nil(s.snapshots.stored("t2"))

	s.NoError(s.engine.Discard(ctx.Background(), "t3"))
}
