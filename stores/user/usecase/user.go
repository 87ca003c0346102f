package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/tournament"
	"github.com/x-xyz/auctionapi/domain/user"
)

var (
	timeNow = time.Now
	newID   = func() string { return uuid.New().String() }
)

type UserUseCaseCfg struct {
	UserRepo    user.Repo
	Tournaments tournament.Usecase
}

type impl struct {
	users       user.Repo
	tournaments tournament.Usecase
}

func New(cfg *UserUseCaseCfg) user.Usecase {
	return &impl{
		users:       cfg.UserRepo,
		tournaments: cfg.Tournaments,
	}
}

// Create adds a user to the roster of an existing tournament. A captain has to
// name the team it bids for.
func (im *impl) Create(c ctx.Ctx, params *user.CreateParams) (*user.User, error) {
	if !params.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %s", domain.ErrBadParamInput, params.Role)
	}
	if params.Role == domain.RoleCaptain && params.TeamID == "" {
		return nil, fmt.Errorf("%w: captain without teamId", domain.ErrBadParamInput)
	}
	if _, err := im.tournaments.Get(c, params.TournamentID); err != nil {
		return nil, err
	}

	u := &user.User{
		TournamentID: params.TournamentID,
		UserID:       newID(),
		Email:        strings.ToLower(params.Email),
		Name:         params.Name,
		Role:         params.Role,
		TeamID:       params.TeamID,
		Status:       user.StatusActive,
		CreatedAt:    timeNow().UTC().Truncate(time.Millisecond),
	}
	if err := im.users.Insert(c, u); err != nil {
		if err != domain.ErrConflict {
			c.WithField("err", err).Error("users.Insert failed")
		}
		return nil, err
	}
	return u, nil
}

func (im *impl) List(c ctx.Ctx, tournamentID string) ([]*user.User, error) {
	return im.users.FindAll(c, tournamentID)
}

func (im *impl) Delete(c ctx.Ctx, tournamentID, userID string) error {
	return im.users.Delete(c, tournamentID, userID)
}
