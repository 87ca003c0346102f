package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/auctionapi/base/ctx"
)

// Forever marks a key without expiration
const Forever time.Duration = -1

var (
	// ErrNotFound is returned when a key does not exist
	ErrNotFound = redis.ErrNil
	// ErrNoTTL is returned by TTL when the key exists without expiration
	ErrNoTTL = errors.New("key has no associated expire")
	// ErrNoPool is returned when no connection pool is configured
	ErrNoPool = errors.New("redis pool not configured")
)

// Service is the subset of redis commands the api relies on
type Service interface {
	Name() string
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(c ctx.Ctx, keys ...string) (int, error)
	Exists(c ctx.Ctx, key string) (bool, error)
	// TTL returns the remaining seconds of key
	TTL(c ctx.Ctx, key string) (int, error)
	// Publish sends message to channel and returns the number of receiving subscribers
	Publish(c ctx.Ctx, channel string, message []byte) (int, error)
}
