package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/auction"
	"github.com/x-xyz/auctionapi/domain/tournament"
	"github.com/x-xyz/auctionapi/domain/user"
	"github.com/x-xyz/auctionapi/service/cache"
)

var (
	timeNow = time.Now
	newID   = func() string { return uuid.New().String() }
)

type TournamentUseCaseCfg struct {
	TournamentRepo tournament.Repo
	PlayerRepo     tournament.PlayerRepo
	AssignmentRepo tournament.AssignmentRepo
	UserRepo       user.Repo
	// Cache may be nil
	Cache cache.Service
}

type impl struct {
	tournaments tournament.Repo
	players     tournament.PlayerRepo
	assignments tournament.AssignmentRepo
	users       user.Repo
	cache       cache.Service
}

func NewTournament(cfg *TournamentUseCaseCfg) tournament.Usecase {
	return &impl{
		tournaments: cfg.TournamentRepo,
		players:     cfg.PlayerRepo,
		assignments: cfg.AssignmentRepo,
		users:       cfg.UserRepo,
		cache:       cfg.Cache,
	}
}

func (im *impl) Create(c ctx.Ctx, params *tournament.CreateParams) (*tournament.Tournament, error) {
	cfg, err := auction.ValidateConfig(params.AuctionConfig)
	if err != nil {
		return nil, err
	}

	t := &tournament.Tournament{
		ID:            newID(),
		Name:          params.Name,
		AuctionConfig: cfg,
		Status:        tournament.StatusCreated,
		CreatedAt:     timeNow().UTC().Truncate(time.Millisecond),
	}
	if err := im.tournaments.Create(c, t); err != nil {
		c.WithField("err", err).Error("tournaments.Create failed")
		return nil, err
	}
	return t, nil
}

func (im *impl) Get(c ctx.Ctx, id string) (*tournament.Tournament, error) {
	if im.cache == nil {
		return im.tournaments.FindOne(c, id)
	}

	res := &tournament.Tournament{}
	load := func() (interface{}, error) {
		return im.tournaments.FindOne(c, id)
	}
	if err := im.cache.GetOrLoad(c, id, res, load); err != nil {
		if err != domain.ErrNotFound {
			c.WithField("err", err).WithField("tournamentId", id).Error("cache.GetOrLoad failed")
		}
		return nil, err
	}
	return res, nil
}

func (im *impl) List(c ctx.Ctx) ([]*tournament.Tournament, error) {
	return im.tournaments.FindAll(c)
}

func (im *impl) Delete(c ctx.Ctx, id string) error {
	t, err := im.tournaments.FindOne(c, id)
	if err != nil {
		return err
	}
	if t.Status == tournament.StatusRunning {
		return fmt.Errorf("%w: tournament auction is running", domain.ErrInvalidState)
	}

	if err := im.tournaments.Delete(c, id); err != nil {
		c.WithField("err", err).Error("tournaments.Delete failed")
		return err
	}
	im.invalidate(c, id)

	if err := im.players.RemoveAll(c, id); err != nil {
		c.WithField("err", err).Warn("players.RemoveAll failed")
	}
	if err := im.assignments.RemoveAll(c, id); err != nil {
		c.WithField("err", err).Warn("assignments.RemoveAll failed")
	}
	if err := im.users.RemoveAll(c, id); err != nil {
		c.WithField("err", err).Warn("users.RemoveAll failed")
	}
	return nil
}

func (im *impl) UpdateStatus(c ctx.Ctx, id string, status tournament.Status) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown status %s", domain.ErrBadParamInput, status)
	}
	if err := im.tournaments.UpdateStatus(c, id, status); err != nil {
		return err
	}
	im.invalidate(c, id)
	return nil
}

func (im *impl) invalidate(c ctx.Ctx, id string) {
	if im.cache == nil {
		return
	}
	if err := im.cache.Del(c, id); err != nil {
		c.WithField("err", err).WithField("tournamentId", id).Warn("cache.Del failed")
	}
}

func (im *impl) RegisterPlayer(c ctx.Ctx, id string, params *tournament.RegisterParams) (*auction.PlayerRegistration, error) {
	t, err := im.Get(c, id)
	if err != nil {
		return nil, err
	}
	if t.Status == tournament.StatusClosed {
		return nil, fmt.Errorf("%w: tournament closed", domain.ErrInvalidState)
	}

	p := &tournament.Player{
		TournamentID: id,
		PlayerRegistration: auction.PlayerRegistration{
			UserID:       params.UserID,
			Name:         params.Name,
			TeamID:       params.TeamID,
			RegisteredAt: timeNow().UTC().Truncate(time.Millisecond),
		},
	}
	if err := im.players.Upsert(c, p); err != nil {
		return nil, err
	}

	if t.Status == tournament.StatusCreated {
		if err := im.UpdateStatus(c, id, tournament.StatusOpen); err != nil {
			c.WithField("err", err).Warn("UpdateStatus to OPEN failed")
		}
	}
	return &p.PlayerRegistration, nil
}

func (im *impl) ListPlayers(c ctx.Ctx, id string) ([]auction.PlayerRegistration, error) {
	if _, err := im.Get(c, id); err != nil {
		return nil, err
	}

	ps, err := im.players.FindAll(c, id)
	if err != nil {
		return nil, err
	}
	res := make([]auction.PlayerRegistration, 0, len(ps))
	for _, p := range ps {
		res = append(res, p.PlayerRegistration)
	}
	return res, nil
}

func (im *impl) SaveAssignment(c ctx.Ctx, id, playerID string, a auction.Assignment) error {
	return im.assignments.Upsert(c, &tournament.AssignmentRecord{
		TournamentID: id,
		PlayerID:     playerID,
		Assignment:   a,
	})
}

func (im *impl) ListAssignments(c ctx.Ctx, id string) ([]*tournament.AssignmentRecord, error) {
	if _, err := im.Get(c, id); err != nil {
		return nil, err
	}
	return im.assignments.FindAll(c, id)
}
