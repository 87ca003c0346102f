package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/auction"
	"github.com/x-xyz/auctionapi/service/query"
)

type snapshotImpl struct {
	q query.Mongo
}

func NewSnapshot(q query.Mongo) auction.SnapshotRepo {
	return &snapshotImpl{q}
}

// Indexes of the snapshot table
func Indexes() map[domain.Table][]query.Index {
	return map[domain.Table][]query.Index{
		domain.TableAuctionSnapshots: {
			{Keys: []string{"tournamentId"}, Unique: true},
		},
	}
}

// Put replaces the stored snapshot unless it carries a newer revision. The
// selector only matches an older revision, so a newer document makes the upsert
// collide with the unique tournamentId index.
func (im *snapshotImpl) Put(c ctx.Ctx, snap *auction.Snapshot) error {
	selector := bson.M{
		"tournamentId": snap.TournamentID,
		"revision":     bson.M{"$lte": snap.Revision},
	}
	if err := im.q.Upsert(c, domain.TableAuctionSnapshots, selector, snap); err == query.ErrDuplicateKey {
		return auction.ErrStaleSnapshot
	} else if err != nil {
		c.WithField("err", err).WithField("tournamentId", snap.TournamentID).Error("q.Upsert failed")
		return err
	}
	return nil
}

// Get reads the stored snapshot of a tournament. A record that cannot be decoded
// is returned as an entry carrying the error.
func (im *snapshotImpl) Get(c ctx.Ctx, tournamentID string) (*auction.SnapshotEntry, error) {
	entries, err := im.scan(c, bson.M{"tournamentId": tournamentID})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrNotFound
	}
	return &entries[0], nil
}

// ScanAll reads every snapshot. A document that cannot be decoded becomes an
// entry carrying the error instead of failing the scan.
func (im *snapshotImpl) ScanAll(c ctx.Ctx) ([]auction.SnapshotEntry, error) {
	return im.scan(c, bson.M{})
}

func (im *snapshotImpl) scan(c ctx.Ctx, selector bson.M) ([]auction.SnapshotEntry, error) {
	res := []auction.SnapshotEntry{}
	err := im.q.ScanRaw(c, domain.TableAuctionSnapshots, selector, func(raw bson.Raw) error {
		res = append(res, decodeEntry(raw))
		return nil
	})
	if err != nil {
		c.WithField("err", err).Error("q.ScanRaw failed")
		return nil, err
	}
	return res, nil
}

func decodeEntry(raw bson.Raw) auction.SnapshotEntry {
	entry := auction.SnapshotEntry{Revision: revisionOf(raw)}
	if v, err := raw.LookupErr("tournamentId"); err == nil {
		entry.TournamentID, _ = v.StringValueOK()
	}
	snap := &auction.Snapshot{}
	if err := bson.Unmarshal(raw, snap); err != nil {
		entry.Err = err
	} else {
		entry.Snapshot = snap
	}
	return entry
}

// revisionOf reads the revision of a raw record; unsigned revisions are stored as int64
func revisionOf(raw bson.Raw) uint64 {
	v, err := raw.LookupErr("revision")
	if err != nil {
		return 0
	}
	if n, ok := v.Int64OK(); ok && n > 0 {
		return uint64(n)
	}
	if n, ok := v.Int32OK(); ok && n > 0 {
		return uint64(n)
	}
	return 0
}

func (im *snapshotImpl) Delete(c ctx.Ctx, tournamentID string) error {
	if err := im.q.Remove(c, domain.TableAuctionSnapshots, bson.M{"tournamentId": tournamentID}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Remove failed")
		return err
	}
	return nil
}
