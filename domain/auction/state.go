package auction

import (
	"sort"
	"time"

	"github.com/x-xyz/auctionapi/base/ptr"
)

type Status string

const (
	StatusRoundActive Status = "ROUND_ACTIVE"
	StatusExhausted   Status = "EXHAUSTED"
	StatusClosed      Status = "CLOSED"
)

// PlayerRegistration is a player entered into a tournament's pool
type PlayerRegistration struct {
	UserID       string    `json:"userId" bson:"userId"`
	Name         string    `json:"name" bson:"name"`
	TeamID       string    `json:"teamId,omitempty" bson:"teamId,omitempty"`
	RegisteredAt time.Time `json:"registeredAt" bson:"registeredAt"`
}

type Bid struct {
	TeamID string    `json:"teamId" bson:"teamId"`
	Amount int64     `json:"amount" bson:"amount"`
	Ts     time.Time `json:"ts" bson:"ts"`
}

type Assignment struct {
	TeamID     string    `json:"teamId" bson:"teamId"`
	Price      int64     `json:"price" bson:"price"`
	AssignedAt time.Time `json:"assignedAt" bson:"assignedAt"`
}

// TeamLedger tracks what a team can still spend and whom it has won
type TeamLedger struct {
	Budget int64    `json:"budget" bson:"budget"`
	Roster []string `json:"roster" bson:"roster"`
}

func NewTeamLedger() TeamLedger {
	return TeamLedger{Budget: StartingBudget, Roster: []string{}}
}

func (l TeamLedger) SlotsLeft() int {
	return RosterSize - len(l.Roster)
}

// State is the live auction of one tournament. It is owned by the engine and
// only mutated while the engine holds that tournament's lock.
type State struct {
	TournamentID string                `json:"tournamentId"`
	Config       Config                `json:"config"`
	Status       Status                `json:"status"`
	Players      []PlayerRegistration  `json:"players"`
	Bids         []Bid                 `json:"bids"`
	Highest      *Bid                  `json:"highest"`
	EndsAt       *time.Time            `json:"endsAt"`
	ActivePlayer *PlayerRegistration   `json:"activePlayer"`
	Teams        map[string]TeamLedger `json:"teams"`
	Assignments  map[string]Assignment `json:"assignments"`
	// Committed holds the player ids whose assignment has been written to durable storage
	Committed map[string]bool `json:"-"`
	Revision  uint64          `json:"revision"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewState opens the first round. The pool keeps registration order, except that
// activePlayerID, when present in the pool, is moved to the head. Teams referenced
// by a registered player start with a fresh ledger.
func NewState(tournamentID string, cfg Config, players []PlayerRegistration, activePlayerID string, now time.Time) *State {
	pool := make([]PlayerRegistration, 0, len(players))
	var head *PlayerRegistration
	for i := range players {
		if head == nil && activePlayerID != "" && players[i].UserID == activePlayerID {
			p := players[i]
			head = &p
			continue
		}
		pool = append(pool, players[i])
	}
	if head != nil {
		pool = append([]PlayerRegistration{*head}, pool...)
	}

	s := &State{
		TournamentID: tournamentID,
		Config:       cfg,
		Players:      pool,
		Bids:         []Bid{},
		Teams:        map[string]TeamLedger{},
		Assignments:  map[string]Assignment{},
		Committed:    map[string]bool{},
		Revision:     1,
		UpdatedAt:    now,
	}
	for _, p := range pool {
		if p.TeamID != "" {
			if _, ok := s.Teams[p.TeamID]; !ok {
				s.Teams[p.TeamID] = NewTeamLedger()
			}
		}
	}
	s.startRound(now)
	return s
}

// startRound points the auction at the head of the pool and resets the round
func (s *State) startRound(now time.Time) {
	s.Bids = []Bid{}
	s.Highest = nil
	if len(s.Players) == 0 {
		s.ActivePlayer = nil
		s.EndsAt = nil
		s.Status = StatusExhausted
		return
	}
	p := s.Players[0]
	s.ActivePlayer = &p
	endsAt := now.Add(s.Config.Duration())
	s.EndsAt = &endsAt
	s.Status = StatusRoundActive
}

// Ledger returns the team's ledger, or a fresh one when the team has not bid yet
func (s *State) Ledger(teamID string) TeamLedger {
	if l, ok := s.Teams[teamID]; ok {
		return l
	}
	return NewTeamLedger()
}

func (s *State) HighestAmount() int64 {
	if s.Highest == nil {
		return 0
	}
	return s.Highest.Amount
}

// TeamBids counts the bids teamID placed in the current round
func (s *State) TeamBids(teamID string) int {
	n := 0
	for _, b := range s.Bids {
		if b.TeamID == teamID {
			n++
		}
	}
	return n
}

// Expired reports whether the round deadline has passed at now
func (s *State) Expired(now time.Time) bool {
	return s.EndsAt != nil && now.After(*s.EndsAt)
}

// Accept records an accepted bid and creates the bidder's ledger on first use.
// A tie keeps the earlier bid as highest.
// It returns true when the bid landed in the anti-sniping window and extended the round.
func (s *State) Accept(bid Bid) bool {
	if _, ok := s.Teams[bid.TeamID]; !ok {
		s.Teams[bid.TeamID] = NewTeamLedger()
	}
	s.Bids = append(s.Bids, bid)
	if s.Highest == nil || bid.Amount > s.Highest.Amount {
		h := bid
		s.Highest = &h
	}

	if s.EndsAt == nil || s.Config.AntiSnipingSeconds <= 0 || s.Config.AutoExtendSeconds <= 0 {
		return false
	}
	if s.EndsAt.Sub(bid.Ts) > s.Config.AntiSnipingWindow() {
		return false
	}
	extended := s.EndsAt.Add(s.Config.AutoExtend())
	s.EndsAt = &extended
	return true
}

// Award sells the active player to teamID and opens the next round
func (s *State) Award(teamID string, price int64, now time.Time) Assignment {
	playerID := s.ActivePlayer.UserID
	l := s.Ledger(teamID)
	l.Budget -= price
	l.Roster = append(append([]string{}, l.Roster...), playerID)
	s.Teams[teamID] = l

	a := Assignment{TeamID: teamID, Price: price, AssignedAt: now}
	s.Assignments[playerID] = a
	s.removeFromPool(playerID)
	s.startRound(now)
	return a
}

// ReturnUnsold moves the active player to the tail of the pool and opens the next round
func (s *State) ReturnUnsold(now time.Time) {
	if len(s.Players) > 0 {
		head := s.Players[0]
		s.Players = append(s.Players[1:len(s.Players):len(s.Players)], head)
	}
	s.startRound(now)
}

func (s *State) removeFromPool(playerID string) {
	pool := make([]PlayerRegistration, 0, len(s.Players))
	for _, p := range s.Players {
		if p.UserID != playerID {
			pool = append(pool, p)
		}
	}
	s.Players = pool
}

// Close ends bidding for good. The pool and any standing bid are kept for inspection.
func (s *State) Close() {
	s.Status = StatusClosed
	s.EndsAt = nil
	s.ActivePlayer = nil
	s.Highest = nil
	s.Bids = []Bid{}
}

// Pending lists assigned player ids not yet committed, sorted
func (s *State) Pending() []string {
	ids := []string{}
	for id := range s.Assignments {
		if !s.Committed[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy safe to hand outside the engine
func (s *State) Clone() *State {
	c := *s
	c.Config = s.Config.clone()
	c.Players = append([]PlayerRegistration{}, s.Players...)
	c.Bids = append([]Bid{}, s.Bids...)
	if s.Highest != nil {
		h := *s.Highest
		c.Highest = &h
	}
	c.EndsAt = ptr.Time(s.EndsAt)
	if s.ActivePlayer != nil {
		p := *s.ActivePlayer
		c.ActivePlayer = &p
	}
	c.Teams = make(map[string]TeamLedger, len(s.Teams))
	for k, v := range s.Teams {
		c.Teams[k] = TeamLedger{Budget: v.Budget, Roster: append([]string{}, v.Roster...)}
	}
	c.Assignments = make(map[string]Assignment, len(s.Assignments))
	for k, v := range s.Assignments {
		c.Assignments[k] = v
	}
	c.Committed = make(map[string]bool, len(s.Committed))
	for k, v := range s.Committed {
		c.Committed[k] = v
	}
	return &c
}

func (c Config) clone() Config {
	out := c
	if c.ReservePrice != nil {
		v := *c.ReservePrice
		out.ReservePrice = &v
	}
	if c.BuyNowPrice != nil {
		v := *c.BuyNowPrice
		out.BuyNowPrice = &v
	}
	if c.MaxBidsPerPlayer != nil {
		v := *c.MaxBidsPerPlayer
		out.MaxBidsPerPlayer = &v
	}
	if c.AllowedTeams != nil {
		out.AllowedTeams = append([]string{}, c.AllowedTeams...)
	}
	return out
}
