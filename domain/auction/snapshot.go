package auction

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionapi/base/ptr"
)

// SnapshotVersion is the only snapshot layout the decoder accepts
const SnapshotVersion = 1

// CommittedAssignment is an assignment together with whether it reached durable storage
type CommittedAssignment struct {
	PlayerID   string    `bson:"playerId"`
	TeamID     string    `bson:"teamId"`
	Price      int64     `bson:"price"`
	AssignedAt time.Time `bson:"assignedAt"`
	Committed  bool      `bson:"committed"`
}

type TeamSnapshot struct {
	TeamID string   `bson:"teamId"`
	Budget int64    `bson:"budget"`
	Roster []string `bson:"roster"`
}

// Snapshot is the persisted form of a State
type Snapshot struct {
	Version        int                   `bson:"version"`
	TournamentID   string                `bson:"tournamentId"`
	Status         Status                `bson:"status"`
	Config         Config                `bson:"config"`
	Teams          []TeamSnapshot        `bson:"teams"`
	Assignments    []CommittedAssignment `bson:"assignments"`
	Players        []PlayerRegistration  `bson:"players"`
	Highest        *Bid                  `bson:"highest,omitempty"`
	EndsAt         *time.Time            `bson:"endsAt,omitempty"`
	ActivePlayerID string                `bson:"activePlayerId,omitempty"`
	Revision       uint64                `bson:"revision"`
	UpdatedAt      time.Time             `bson:"updatedAt"`
}

// NewSnapshot captures s. Bid history is not persisted, only the standing highest bid.
func NewSnapshot(s *State) *Snapshot {
	snap := &Snapshot{
		Version:      SnapshotVersion,
		TournamentID: s.TournamentID,
		Status:       s.Status,
		Config:       s.Config.clone(),
		Teams:        make([]TeamSnapshot, 0, len(s.Teams)),
		Assignments:  make([]CommittedAssignment, 0, len(s.Assignments)),
		Players:      append([]PlayerRegistration{}, s.Players...),
		Revision:     s.Revision,
		UpdatedAt:    s.UpdatedAt,
	}
	for id, l := range s.Teams {
		snap.Teams = append(snap.Teams, TeamSnapshot{TeamID: id, Budget: l.Budget, Roster: append([]string{}, l.Roster...)})
	}
	for id, a := range s.Assignments {
		snap.Assignments = append(snap.Assignments, CommittedAssignment{
			PlayerID:   id,
			TeamID:     a.TeamID,
			Price:      a.Price,
			AssignedAt: a.AssignedAt,
			Committed:  s.Committed[id],
		})
	}
	if s.Highest != nil {
		h := *s.Highest
		snap.Highest = &h
	}
	snap.EndsAt = ptr.Time(s.EndsAt)
	if s.ActivePlayer != nil {
		snap.ActivePlayerID = s.ActivePlayer.UserID
	}
	return snap
}

// Decode rebuilds a State from the snapshot. Any structural inconsistency is an
// error so a damaged record is never loaded as a live auction.
func (snap *Snapshot) Decode() (*State, error) {
	if snap.Version != SnapshotVersion {
		return nil, xerrors.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if snap.TournamentID == "" {
		return nil, xerrors.New("snapshot without tournamentId")
	}
	switch snap.Status {
	case StatusRoundActive, StatusExhausted, StatusClosed:
	default:
		return nil, xerrors.Errorf("snapshot %s: unknown status %q", snap.TournamentID, snap.Status)
	}
	if snap.Status != StatusRoundActive && snap.ActivePlayerID != "" {
		return nil, xerrors.Errorf("snapshot %s: active player %s in status %s", snap.TournamentID, snap.ActivePlayerID, snap.Status)
	}
	if err := snap.Config.check(); err != nil {
		return nil, xerrors.Errorf("snapshot %s: %w", snap.TournamentID, err)
	}

	s := &State{
		TournamentID: snap.TournamentID,
		Config:       snap.Config.clone(),
		Status:       snap.Status,
		Players:      append([]PlayerRegistration{}, snap.Players...),
		Bids:         []Bid{},
		Teams:        make(map[string]TeamLedger, len(snap.Teams)),
		Assignments:  make(map[string]Assignment, len(snap.Assignments)),
		Committed:    make(map[string]bool, len(snap.Assignments)),
		Revision:     snap.Revision,
		UpdatedAt:    snap.UpdatedAt,
	}

	for _, t := range snap.Teams {
		if t.TeamID == "" {
			return nil, xerrors.Errorf("snapshot %s: team without id", snap.TournamentID)
		}
		if _, ok := s.Teams[t.TeamID]; ok {
			return nil, xerrors.Errorf("snapshot %s: duplicated team %s", snap.TournamentID, t.TeamID)
		}
		if t.Budget < 0 || len(t.Roster) > RosterSize {
			return nil, xerrors.Errorf("snapshot %s: team %s out of bounds", snap.TournamentID, t.TeamID)
		}
		roster := t.Roster
		if roster == nil {
			roster = []string{}
		}
		s.Teams[t.TeamID] = TeamLedger{Budget: t.Budget, Roster: append([]string{}, roster...)}
	}

	for _, a := range snap.Assignments {
		if a.PlayerID == "" {
			return nil, xerrors.Errorf("snapshot %s: assignment without player", snap.TournamentID)
		}
		if _, ok := s.Assignments[a.PlayerID]; ok {
			return nil, xerrors.Errorf("snapshot %s: player %s assigned twice", snap.TournamentID, a.PlayerID)
		}
		l, ok := s.Teams[a.TeamID]
		if !ok || !contains(l.Roster, a.PlayerID) {
			return nil, xerrors.Errorf("snapshot %s: assignment of %s not on roster of %s", snap.TournamentID, a.PlayerID, a.TeamID)
		}
		s.Assignments[a.PlayerID] = Assignment{TeamID: a.TeamID, Price: a.Price, AssignedAt: a.AssignedAt}
		if a.Committed {
			s.Committed[a.PlayerID] = true
		}
	}

	seen := map[string]bool{}
	for _, p := range s.Players {
		if p.UserID == "" || seen[p.UserID] {
			return nil, xerrors.Errorf("snapshot %s: invalid player pool", snap.TournamentID)
		}
		if _, ok := s.Assignments[p.UserID]; ok {
			return nil, xerrors.Errorf("snapshot %s: assigned player %s still in pool", snap.TournamentID, p.UserID)
		}
		seen[p.UserID] = true
	}

	if snap.ActivePlayerID != "" {
		if len(s.Players) == 0 || s.Players[0].UserID != snap.ActivePlayerID {
			return nil, xerrors.Errorf("snapshot %s: active player %s is not head of pool", snap.TournamentID, snap.ActivePlayerID)
		}
		p := s.Players[0]
		s.ActivePlayer = &p
	}
	if s.Status == StatusRoundActive && (s.ActivePlayer == nil || snap.EndsAt == nil) {
		return nil, xerrors.Errorf("snapshot %s: active round without player or deadline", snap.TournamentID)
	}

	if snap.Highest != nil {
		if s.ActivePlayer == nil {
			return nil, xerrors.Errorf("snapshot %s: highest bid without active player", snap.TournamentID)
		}
		h := *snap.Highest
		s.Highest = &h
	}
	s.EndsAt = ptr.Time(snap.EndsAt)

	return s, nil
}

func contains(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}
