package user

import (
	"time"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/domain"
)

type Status string

const (
	StatusActive Status = "ACTIVE"
)

// User is a member of a tournament's roster. Credentials are issued elsewhere;
// the roster only maps a user to a role and, for captains, a team.
type User struct {
	TournamentID string      `json:"tournamentId" bson:"tournamentId"`
	UserID       string      `json:"userId" bson:"userId"`
	Email        string      `json:"email" bson:"email"`
	Name         string      `json:"name" bson:"name"`
	Role         domain.Role `json:"role" bson:"role"`
	TeamID       string      `json:"teamId,omitempty" bson:"teamId,omitempty"`
	Status       Status      `json:"status" bson:"status"`
	CreatedAt    time.Time   `json:"createdAt" bson:"createdAt"`
}

type CreateParams struct {
	TournamentID string      `json:"tournamentId" validate:"required,uuid"`
	Email        string      `json:"email" validate:"required,email,max=254"`
	Name         string      `json:"name" validate:"required,max=128"`
	Role         domain.Role `json:"role" validate:"required"`
	TeamID       string      `json:"teamId" validate:"max=64"`
}

type Repo interface {
	// Insert fails with domain.ErrConflict when the email is already on the roster
	Insert(c ctx.Ctx, u *User) error
	// FindAll returns the roster of a tournament ordered by creation time
	FindAll(c ctx.Ctx, tournamentID string) ([]*User, error)
	Delete(c ctx.Ctx, tournamentID, userID string) error
	RemoveAll(c ctx.Ctx, tournamentID string) error
}

type Usecase interface {
	Create(c ctx.Ctx, params *CreateParams) (*User, error)
	List(c ctx.Ctx, tournamentID string) ([]*User, error)
	Delete(c ctx.Ctx, tournamentID, userID string) error
}
