package broadcast

import (
	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/domain/keys"
	"github.com/x-xyz/auctionapi/service/redis"
)

type redisPublisher struct {
	redis  redis.Service
	prefix string
}

// NewRedis publishes each event as a frame on the channel <prefix>:<event>,
// prefix defaults to keys.PfxAuctionEvent
func NewRedis(r redis.Service, prefix string) Publisher {
	if prefix == "" {
		prefix = keys.PfxAuctionEvent
	}
	return &redisPublisher{redis: r, prefix: prefix}
}

func (p *redisPublisher) Publish(c ctx.Ctx, event string, payload interface{}) error {
	bs, err := encode(event, payload)
	if err != nil {
		return err
	}
	if _, err := p.redis.Publish(c, keys.RedisKey(p.prefix, event), bs); err != nil {
		c.WithField("err", err).WithField("event", event).Warn("redis.Publish failed")
		return err
	}
	return nil
}
