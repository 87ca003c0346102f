package cache

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/domain/keys"
	"github.com/x-xyz/auctionapi/service/cache/provider"
)

var (
	ErrNotFound = errors.New("cache not found")
)

// Loader produces the value to cache on a miss
type Loader func() (interface{}, error)

// Service caches json encoded values under a key prefix
type Service interface {
	// GetOrLoad fills container from cache, or from load and then caches the result
	GetOrLoad(c ctx.Ctx, key string, container interface{}, load Loader) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	TTL      time.Duration
	Prefix   string
	Provider provider.Provider
}

type impl struct {
	ttl   time.Duration
	pfx   string
	cache provider.Provider
}

func New(cfg ServiceConfig) Service {
	return &impl{
		ttl:   cfg.TTL,
		pfx:   cfg.Prefix,
		cache: cfg.Provider,
	}
}

func (im *impl) key(key string) string {
	return keys.RedisKey(im.pfx, key)
}

func (im *impl) GetOrLoad(c ctx.Ctx, key string, container interface{}, load Loader) error {
	err := im.Get(c, key, container)
	if err == nil {
		return nil
	} else if err != ErrNotFound {
		// a broken cache must not hide the source of truth
		c.WithField("err", err).WithField("key", key).Warn("cache Get failed, loading")
	}

	val, err := load()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(val)
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("json.Marshal failed")
		return err
	}
	if err := im.cache.Set(c, im.key(key), raw, im.ttl); err != nil {
		c.WithField("err", err).WithField("key", key).Warn("cache Set failed")
	}
	return json.Unmarshal(raw, container)
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	raw, _, err := im.cache.Get(c, im.key(key))
	if err == provider.ErrNotFound {
		return ErrNotFound
	} else if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, container); err != nil {
		c.WithField("err", err).WithField("key", key).Error("json.Unmarshal failed")
		return err
	}
	return nil
}

func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("json.Marshal failed")
		return err
	}
	return im.cache.Set(c, im.key(key), raw, im.ttl)
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	if err := im.cache.Del(c, im.key(key)); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache Del failed")
		return err
	}
	return nil
}
