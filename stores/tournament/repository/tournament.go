package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/tournament"
	"github.com/x-xyz/auctionapi/service/query"
)

type statusPatch struct {
	Status *tournament.Status `bson:"status,omitempty"`
}

type tournamentImpl struct {
	q query.Mongo
}

func NewTournament(q query.Mongo) tournament.Repo {
	return &tournamentImpl{q}
}

// Indexes of the tournament tables
func Indexes() map[domain.Table][]query.Index {
	return map[domain.Table][]query.Index{
		domain.TableTournaments: {
			{Keys: []string{"id"}, Unique: true},
		},
		domain.TablePlayers: {
			{Keys: []string{"tournamentId", "userId"}, Unique: true},
			{Keys: []string{"tournamentId", "registeredAt", "userId"}},
		},
		domain.TableAssignments: {
			{Keys: []string{"tournamentId", "playerId"}, Unique: true},
		},
	}
}

func (im *tournamentImpl) Create(c ctx.Ctx, t *tournament.Tournament) error {
	if err := im.q.Insert(c, domain.TableTournaments, t); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *tournamentImpl) FindOne(c ctx.Ctx, id string) (*tournament.Tournament, error) {
	res := &tournament.Tournament{}
	if err := im.q.FindOne(c, domain.TableTournaments, bson.M{"id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *tournamentImpl) FindAll(c ctx.Ctx) ([]*tournament.Tournament, error) {
	res := []*tournament.Tournament{}
	if err := im.q.Search(c, domain.TableTournaments, 0, 0, []string{"-createdAt", "id"}, bson.M{}, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *tournamentImpl) Delete(c ctx.Ctx, id string) error {
	if err := im.q.Remove(c, domain.TableTournaments, bson.M{"id": id}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Remove failed")
		return err
	}
	return nil
}

func (im *tournamentImpl) UpdateStatus(c ctx.Ctx, id string, status tournament.Status) error {
	if err := im.q.Patch(c, domain.TableTournaments, bson.M{"id": id}, &statusPatch{Status: &status}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Patch failed")
		return err
	}
	return nil
}
