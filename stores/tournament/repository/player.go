package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/tournament"
	"github.com/x-xyz/auctionapi/service/query"
)

type playerImpl struct {
	q query.Mongo
}

func NewPlayer(q query.Mongo) tournament.PlayerRepo {
	return &playerImpl{q}
}

func (im *playerImpl) Upsert(c ctx.Ctx, p *tournament.Player) error {
	selector := bson.M{"tournamentId": p.TournamentID, "userId": p.UserID}
	if err := im.q.Upsert(c, domain.TablePlayers, selector, p); err != nil {
		c.WithField("err", err).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *playerImpl) FindAll(c ctx.Ctx, tournamentID string) ([]*tournament.Player, error) {
	res := []*tournament.Player{}
	sorts := []string{"registeredAt", "userId"}
	if err := im.q.Search(c, domain.TablePlayers, 0, 0, sorts, bson.M{"tournamentId": tournamentID}, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *playerImpl) RemoveAll(c ctx.Ctx, tournamentID string) error {
	if _, err := im.q.RemoveAll(c, domain.TablePlayers, bson.M{"tournamentId": tournamentID}); err != nil {
		c.WithField("err", err).Error("q.RemoveAll failed")
		return err
	}
	return nil
}
