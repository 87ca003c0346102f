package query

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/base/database/mongoclient"
	"github.com/x-xyz/auctionapi/base/log"
	"github.com/x-xyz/auctionapi/base/metrics"
	"github.com/x-xyz/auctionapi/domain"
)

const (
	queryMaxTime    = 20 * time.Second
	slowLogThreshod = 500 * time.Millisecond
)

var (
	timeNow = time.Now
)

type impl struct {
	client *mongoclient.Client
	met    metrics.Service
}

// New initializes an impl
func New(client *mongoclient.Client, met metrics.Service) Mongo {
	return &impl{
		client: client,
		met:    met,
	}
}

func (im *impl) logerr(c ctx.Ctx, msg string, err error) {
	if _, ok := err.(topology.ConnectionError); ok {
		im.met.BumpSum("conn.err", 1)
	}
	c.WithField("err", err).Error(msg)
}

func (im *impl) coll(table domain.Table) *mongo.Collection {
	return im.client.Database(im.client.DbName).Collection(string(table))
}

// track bumps the timing metric and emits a slow log when the action is too slow
func (im *impl) track(c ctx.Ctx, table domain.Table, action string, query interface{}) func() {
	start := timeNow()
	ender := im.met.BumpTime("time", "func", action, "table", string(table))

	return func() {
		ender.End()
		elapsed := timeNow().Sub(start)
		if elapsed < slowLogThreshod {
			return
		}
		im.met.BumpSum("slowlog", 1, "table", string(table), "action", action)
		c.WithFields(log.Fields{
			"table":      table,
			"action":     action,
			"startTime":  start.Unix(),
			"durationMs": elapsed.Milliseconds(),
			"query":      query,
		}).Warn("mongo slowlog")
	}
}

func (im *impl) Insert(c ctx.Ctx, table domain.Table, insert interface{}) error {
	defer im.track(c, table, "insert", nil)()

	c = ctx.WithValue(c, "table", table)
	if _, err := im.coll(table).InsertOne(c, insert); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		im.logerr(c, "Insert: InsertOne failed", err)
		return err
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, table domain.Table, query, result interface{}) error {
	defer im.track(c, table, "findone", query)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table": table,
		"query": query,
	})

	opts := options.FindOne().SetMaxTime(queryMaxTime)
	if err := im.coll(table).FindOne(c, query, opts).Decode(result); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		im.logerr(c, "FindOne: FindOne error", err)
		return err
	}
	return nil
}

func (im *impl) Upsert(c ctx.Ctx, table domain.Table, selector, update interface{}) error {
	defer im.track(c, table, "upsert", selector)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table":    table,
		"selector": selector,
	})

	opts := options.Replace().SetUpsert(true)
	if _, err := im.coll(table).ReplaceOne(c, selector, update, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		im.logerr(c, "Upsert: ReplaceOne failed", err)
		return err
	}
	return nil
}

func sortOption(sorts ...string) bson.D {
	res := bson.D{}
	for _, sort := range sorts {
		if sort == "" {
			continue
		}
		if sort[0] == '-' {
			res = append(res, bson.E{Key: sort[1:], Value: -1})
		} else {
			res = append(res, bson.E{Key: sort, Value: 1})
		}
	}
	return res
}

func (im *impl) Search(c ctx.Ctx, table domain.Table, offset, limit int, sorts []string, query, results interface{}) error {
	defer im.track(c, table, "search", query)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table": table,
		"query": query,
	})

	opts := options.Find().SetMaxTime(queryMaxTime).SetSkip(int64(offset))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if s := sortOption(sorts...); len(s) > 0 {
		opts.SetSort(s)
	}

	cursor, err := im.coll(table).Find(c, query, opts)
	if err != nil {
		im.logerr(c, "Search: Find failed", err)
		return err
	}
	defer cursor.Close(c)

	if err := cursor.All(c, results); err != nil {
		im.logerr(c, "Search: cursor.All failed", err)
		return err
	}
	return nil
}

func (im *impl) ScanRaw(c ctx.Ctx, table domain.Table, query interface{}, fn func(raw bson.Raw) error) error {
	defer im.track(c, table, "scan", query)()

	c = ctx.WithValue(c, "table", table)

	cursor, err := im.coll(table).Find(c, query, options.Find().SetMaxTime(queryMaxTime))
	if err != nil {
		im.logerr(c, "ScanRaw: Find failed", err)
		return err
	}
	defer cursor.Close(c)

	for cursor.Next(c) {
		// cursor.Current is reused by the next call
		raw := make(bson.Raw, len(cursor.Current))
		copy(raw, cursor.Current)
		if err := fn(raw); err != nil {
			return err
		}
	}
	if err := cursor.Err(); err != nil {
		im.logerr(c, "ScanRaw: cursor failed", err)
		return err
	}
	return nil
}

func (im *impl) Remove(c ctx.Ctx, table domain.Table, selector interface{}) error {
	defer im.track(c, table, "remove", selector)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table":    table,
		"selector": selector,
	})

	res, err := im.coll(table).DeleteOne(c, selector)
	if err != nil {
		im.logerr(c, "Remove: DeleteOne failed", err)
		return err
	} else if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) RemoveAll(c ctx.Ctx, table domain.Table, selector interface{}) (int64, error) {
	defer im.track(c, table, "removeAll", selector)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table":    table,
		"selector": selector,
	})

	res, err := im.coll(table).DeleteMany(c, selector)
	if err != nil {
		im.logerr(c, "RemoveAll: DeleteMany failed", err)
		return 0, err
	}
	return res.DeletedCount, nil
}

func (im *impl) Patch(c ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error {
	defer im.track(c, table, "patch", selector)()

	o := &patchOp{}
	for _, op := range ops {
		op(o)
	}

	c = ctx.WithValues(c, map[string]interface{}{
		"table":    table,
		"selector": selector,
	})

	updater, err := mongoclient.PatchFields(update)
	if err != nil {
		im.logerr(c, "Patch: PatchFields failed", err)
		return err
	}

	var res *mongo.UpdateResult
	if o.patchMany {
		res, err = im.coll(table).UpdateMany(c, selector, bson.M{"$set": updater})
	} else {
		res, err = im.coll(table).UpdateOne(c, selector, bson.M{"$set": updater})
	}
	if err != nil {
		im.logerr(c, "Patch: Update failed", err)
		return err
	} else if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) EnsureIndexes(c ctx.Ctx, table domain.Table, indexes []Index) error {
	if len(indexes) == 0 {
		return nil
	}

	models := make([]mongo.IndexModel, 0, len(indexes))
	for _, idx := range indexes {
		models = append(models, mongo.IndexModel{
			Keys:    sortOption(idx.Keys...),
			Options: options.Index().SetUnique(idx.Unique),
		})
	}

	if _, err := im.coll(table).Indexes().CreateMany(c, models); err != nil {
		im.logerr(ctx.WithValue(c, "table", table), "EnsureIndexes: CreateMany failed", err)
		return err
	}
	return nil
}
