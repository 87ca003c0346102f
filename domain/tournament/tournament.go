package tournament

import (
	"time"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/domain/auction"
)

type Status string

const (
	StatusCreated Status = "CREATED"
	StatusOpen    Status = "OPEN"
	StatusRunning Status = "RUNNING"
	StatusClosed  Status = "CLOSED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusOpen, StatusRunning, StatusClosed:
		return true
	}
	return false
}

type Tournament struct {
	ID            string         `json:"id" bson:"id"`
	Name          string         `json:"name" bson:"name"`
	AuctionConfig auction.Config `json:"auctionConfig" bson:"auctionConfig"`
	Status        Status         `json:"status" bson:"status"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
}

// Player is a registration stored per tournament
type Player struct {
	TournamentID               string `json:"tournamentId" bson:"tournamentId"`
	auction.PlayerRegistration `bson:",inline"`
}

// AssignmentRecord is the durable form of an awarded player
type AssignmentRecord struct {
	TournamentID       string `json:"tournamentId" bson:"tournamentId"`
	PlayerID           string `json:"playerId" bson:"playerId"`
	auction.Assignment `bson:",inline"`
}

type CreateParams struct {
	Name          string            `json:"name" validate:"required,max=128"`
	AuctionConfig auction.RawConfig `json:"auctionConfig"`
}

type RegisterParams struct {
	UserID string `json:"userId" validate:"required,max=64"`
	Name   string `json:"name" validate:"required,max=128"`
	TeamID string `json:"teamId" validate:"max=64"`
}

type Repo interface {
	Create(c ctx.Ctx, t *Tournament) error
	FindOne(c ctx.Ctx, id string) (*Tournament, error)
	FindAll(c ctx.Ctx) ([]*Tournament, error)
	Delete(c ctx.Ctx, id string) error
	UpdateStatus(c ctx.Ctx, id string, status Status) error
}

type PlayerRepo interface {
	Upsert(c ctx.Ctx, p *Player) error
	// FindAll returns the players of a tournament ordered by registration time, then user id
	FindAll(c ctx.Ctx, tournamentID string) ([]*Player, error)
	RemoveAll(c ctx.Ctx, tournamentID string) error
}

type AssignmentRepo interface {
	Upsert(c ctx.Ctx, a *AssignmentRecord) error
	FindAll(c ctx.Ctx, tournamentID string) ([]*AssignmentRecord, error)
	RemoveAll(c ctx.Ctx, tournamentID string) error
}

type Usecase interface {
	Create(c ctx.Ctx, params *CreateParams) (*Tournament, error)
	Get(c ctx.Ctx, id string) (*Tournament, error)
	List(c ctx.Ctx) ([]*Tournament, error)
	Delete(c ctx.Ctx, id string) error
	UpdateStatus(c ctx.Ctx, id string, status Status) error

	RegisterPlayer(c ctx.Ctx, id string, params *RegisterParams) (*auction.PlayerRegistration, error)
	ListPlayers(c ctx.Ctx, id string) ([]auction.PlayerRegistration, error)

	SaveAssignment(c ctx.Ctx, id, playerID string, a auction.Assignment) error
	ListAssignments(c ctx.Ctx, id string) ([]*AssignmentRecord, error)
}
