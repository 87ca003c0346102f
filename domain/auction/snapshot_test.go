package auction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/auctionapi/base/ptr"
)

type snapshotSuite struct {
	suite.Suite
}

func TestSnapshot(t *testing.T) {
	suite.Run(t, new(snapshotSuite))
}

func (s *snapshotSuite) liveState() *State {
	cfg := Config{MinBid: 10, Increment: 5, DurationSeconds: 60, ReservePrice: ptr.Int64(20)}
	st := NewState("t1", cfg, players("a", "b", "c"), "", t0)
	st.Accept(Bid{TeamID: "x", Amount: 30, Ts: t0})
	st.Award("x", 30, t0.Add(time.Second))
	st.Committed["a"] = true
	st.Accept(Bid{TeamID: "y", Amount: 10, Ts: t0.Add(2 * time.Second)})
	st.Revision = 7
	return st
}

func (s *snapshotSuite) TestRoundTrip() {
	st := s.liveState()

	raw, err := bson.Marshal(NewSnapshot(st))
	s.Require().NoError(err)
	snap := &Snapshot{}
	s.Require().NoError(bson.Unmarshal(raw, snap))

	got, err := snap.Decode()
	s.Require().NoError(err)

	// bid history is not persisted
	want := st.Clone()
	want.Bids = []Bid{}
	s.Equal(want.TournamentID, got.TournamentID)
	s.Equal(want.Status, got.Status)
	s.Equal(want.Config, got.Config)
	s.Equal(want.Players, got.Players)
	s.Equal(want.Highest, got.Highest)
	s.Equal(want.EndsAt, got.EndsAt)
	s.Equal(want.ActivePlayer, got.ActivePlayer)
	s.Equal(want.Teams, got.Teams)
	s.Equal(want.Assignments, got.Assignments)
	s.Equal(want.Committed, got.Committed)
	s.Equal(want.Revision, got.Revision)
	s.Empty(got.Bids)
	s.Empty(got.Pending())
}

func (s *snapshotSuite) TestDecodeFailsClosed() {
	cases := []struct {
		Desc   string
		Mutate func(*Snapshot)
	}{
		{"unknown version", func(sn *Snapshot) { sn.Version = 2 }},
		{"missing tournament", func(sn *Snapshot) { sn.TournamentID = "" }},
		{"unknown status", func(sn *Snapshot) { sn.Status = "PAUSED" }},
		{"negative budget", func(sn *Snapshot) { sn.Teams[0].Budget = -1 }},
		{"assignment off roster", func(sn *Snapshot) { sn.Assignments[0].TeamID = "nobody" }},
		{"assigned player in pool", func(sn *Snapshot) { sn.Players = append(sn.Players, PlayerRegistration{UserID: "a"}) }},
		{"active player not head", func(sn *Snapshot) { sn.ActivePlayerID = "c" }},
		{"active round without deadline", func(sn *Snapshot) { sn.EndsAt = nil }},
		{"duplicated player", func(sn *Snapshot) { sn.Players = append(sn.Players, sn.Players[0]) }},
		{"exhausted with active player", func(sn *Snapshot) { sn.Status = StatusExhausted }},
		{"closed with active player", func(sn *Snapshot) { sn.Status = StatusClosed; sn.EndsAt = nil }},
		{"zero increment", func(sn *Snapshot) { sn.Config.Increment = 0 }},
		{"negative increment", func(sn *Snapshot) { sn.Config.Increment = -5 }},
		{"zero duration", func(sn *Snapshot) { sn.Config.DurationSeconds = 0 }},
		{"negative minimum", func(sn *Snapshot) { sn.Config.MinBid = -1 }},
		{"reserve below minimum", func(sn *Snapshot) { sn.Config.ReservePrice = ptr.Int64(5) }},
		{"zero bid limit", func(sn *Snapshot) { sn.Config.MaxBidsPerPlayer = ptr.Int(0) }},
	}

	for _, c := range cases {
		snap := NewSnapshot(s.liveState())
		// teams come from a map, keep the assignment owner first
		for i, t := range snap.Teams {
			if t.TeamID == "x" {
				snap.Teams[0], snap.Teams[i] = snap.Teams[i], snap.Teams[0]
			}
		}
		c.Mutate(snap)
		_, err := snap.Decode()
		s.Error(err, c.Desc)
	}
}

func (s *snapshotSuite) TestDecodeExhausted() {
	st := NewState("t1", Config{DurationSeconds: 60, Increment: 1}, players("a"), "", t0)
	st.Award("x", 0, t0)

	got, err := NewSnapshot(st).Decode()
	s.NoError(err)
	s.Equal(StatusExhausted, got.Status)
	s.Nil(got.ActivePlayer)
	s.Nil(got.EndsAt)
}

func (s *snapshotSuite) TestDecodeClosed() {
	st := s.liveState()
	st.Close()

	got, err := NewSnapshot(st).Decode()
	s.Require().NoError(err)
	s.Equal(StatusClosed, got.Status)
	s.Nil(got.ActivePlayer)
	s.Nil(got.Highest)
	s.Equal([]string{"b", "c"}, []string{got.Players[0].UserID, got.Players[1].UserID})
}
