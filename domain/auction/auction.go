package auction

import (
	"fmt"
	"time"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/domain"
)

var (
	ErrNoActiveAuction = fmt.Errorf("%w: auction not running", domain.ErrNotFound)
	ErrAuctionRunning  = fmt.Errorf("%w: auction already running", domain.ErrInvalidState)
	ErrNoActivePlayer  = fmt.Errorf("%w: no active player being auctioned", domain.ErrInvalidState)
	ErrAuctionClosed   = fmt.Errorf("%w: auction closed", domain.ErrInvalidState)
	ErrEmptyPool       = fmt.Errorf("%w: no registered players", domain.ErrInvalidState)
	ErrAuctionEnded    = fmt.Errorf("%w: auction ended", domain.ErrExpired)
	// ErrStaleSnapshot is returned by SnapshotRepo.Put when a newer revision is already stored
	ErrStaleSnapshot = fmt.Errorf("%w: newer snapshot already stored", domain.ErrConflict)
)

const (
	EventRestore  = "auction:restore"
	EventBid      = "auction:bid"
	EventAward    = "auction:award"
	EventUnsold   = "auction:unsold"
	EventFinalize = "auction:finalize"
)

type RestoreEvent struct {
	TournamentID string `json:"tournamentId"`
}

type BidEvent struct {
	TournamentID string     `json:"tournamentId"`
	Bid          Bid        `json:"bid"`
	EndsAt       *time.Time `json:"endsAt"`
}

type AwardEvent struct {
	TournamentID string `json:"tournamentId"`
	PlayerID     string `json:"playerId"`
	TeamID       string `json:"teamId"`
	Price        int64  `json:"price"`
}

type UnsoldEvent struct {
	TournamentID string `json:"tournamentId"`
	PlayerID     string `json:"playerId"`
}

type FinalizeEvent struct {
	TournamentID string `json:"tournamentId"`
}

type StartResult struct {
	TournamentID string    `json:"tournamentId"`
	EndsAt       time.Time `json:"endsAt"`
	ActivePlayer string    `json:"activePlayer"`
}

type BidResult struct {
	Bid     Bid        `json:"bid"`
	EndsAt  *time.Time `json:"endsAt"`
	Awarded bool       `json:"awarded"`
	// PlayerID is set when the bid triggered buy-now
	PlayerID string `json:"playerId,omitempty"`
}

// Usecase is the bidding engine. Every operation on one tournament is serialized.
type Usecase interface {
	Start(c ctx.Ctx, tournamentID string, players []PlayerRegistration, activePlayerID string) (*StartResult, error)
	PlaceBid(c ctx.Ctx, tournamentID, teamID string, amount int64) (*BidResult, error)
	// GetState returns a copy of the live state
	GetState(c ctx.Ctx, tournamentID string) (*State, error)
	Finalize(c ctx.Ctx, tournamentID string) error
	// Discard drops a finalized or never started auction and its stored snapshot.
	// A live auction is refused with ErrAuctionRunning.
	Discard(c ctx.Ctx, tournamentID string) error
	// Restore loads every decodable snapshot; it must run before the server accepts requests
	Restore(c ctx.Ctx) error
	Close()
}

// SnapshotEntry is one stored snapshot record, or the error that prevented decoding it.
// Revision is read from the raw record, so it is set even when Err is.
type SnapshotEntry struct {
	TournamentID string
	Revision     uint64
	Snapshot     *Snapshot
	Err          error
}

type SnapshotRepo interface {
	// Put fails with ErrStaleSnapshot when a newer revision is stored
	Put(c ctx.Ctx, snap *Snapshot) error
	// Get fails with domain.ErrNotFound when nothing is stored for the tournament
	Get(c ctx.Ctx, tournamentID string) (*SnapshotEntry, error)
	ScanAll(c ctx.Ctx) ([]SnapshotEntry, error)
	Delete(c ctx.Ctx, tournamentID string) error
}

// Notifier delivers an event to observers. Delivery is best effort.
type Notifier interface {
	Publish(c ctx.Ctx, event string, payload interface{}) error
}
