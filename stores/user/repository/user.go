package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/user"
	"github.com/x-xyz/auctionapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) user.Repo {
	return &impl{q}
}

// Indexes of the user table
func Indexes() map[domain.Table][]query.Index {
	return map[domain.Table][]query.Index{
		domain.TableUsers: {
			{Keys: []string{"tournamentId", "userId"}, Unique: true},
			{Keys: []string{"tournamentId", "email"}, Unique: true},
			{Keys: []string{"tournamentId", "createdAt", "userId"}},
		},
	}
}

func (im *impl) Insert(c ctx.Ctx, u *user.User) error {
	if err := im.q.Insert(c, domain.TableUsers, u); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) FindAll(c ctx.Ctx, tournamentID string) ([]*user.User, error) {
	res := []*user.User{}
	sorts := []string{"createdAt", "userId"}
	if err := im.q.Search(c, domain.TableUsers, 0, 0, sorts, bson.M{"tournamentId": tournamentID}, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Delete(c ctx.Ctx, tournamentID, userID string) error {
	selector := bson.M{"tournamentId": tournamentID, "userId": userID}
	if err := im.q.Remove(c, domain.TableUsers, selector); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Remove failed")
		return err
	}
	return nil
}

func (im *impl) RemoveAll(c ctx.Ctx, tournamentID string) error {
	if _, err := im.q.RemoveAll(c, domain.TableUsers, bson.M{"tournamentId": tournamentID}); err != nil {
		c.WithField("err", err).Error("q.RemoveAll failed")
		return err
	}
	return nil
}
