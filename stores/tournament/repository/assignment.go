package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/tournament"
	"github.com/x-xyz/auctionapi/service/query"
)

type assignmentImpl struct {
	q query.Mongo
}

func NewAssignment(q query.Mongo) tournament.AssignmentRepo {
	return &assignmentImpl{q}
}

// Upsert is keyed by (tournamentId, playerId) so saving the same award twice is harmless
func (im *assignmentImpl) Upsert(c ctx.Ctx, a *tournament.AssignmentRecord) error {
	selector := bson.M{"tournamentId": a.TournamentID, "playerId": a.PlayerID}
	if err := im.q.Upsert(c, domain.TableAssignments, selector, a); err != nil {
		c.WithField("err", err).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *assignmentImpl) FindAll(c ctx.Ctx, tournamentID string) ([]*tournament.AssignmentRecord, error) {
	res := []*tournament.AssignmentRecord{}
	sorts := []string{"assignedAt", "playerId"}
	if err := im.q.Search(c, domain.TableAssignments, 0, 0, sorts, bson.M{"tournamentId": tournamentID}, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *assignmentImpl) RemoveAll(c ctx.Ctx, tournamentID string) error {
	if _, err := im.q.RemoveAll(c, domain.TableAssignments, bson.M{"tournamentId": tournamentID}); err != nil {
		c.WithField("err", err).Error("q.RemoveAll failed")
		return err
	}
	return nil
}
