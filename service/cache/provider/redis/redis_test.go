package redis

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/service/cache/provider"
	"github.com/x-xyz/auctionapi/service/redis"
	"github.com/x-xyz/auctionapi/service/redis/mocks"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	redis *mocks.Service
	im    provider.Provider
}

func (ts *testsuite) SetupTest() {
	ts.redis = &mocks.Service{}
	ts.im = New(ts.redis)
}

func (ts *testsuite) TearDownTest() {
	ts.redis.AssertExpectations(ts.T())
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestGet() {
	ts.redis.On("Get", mock.Anything, "k").Return([]byte("v"), nil).Once()
	ts.redis.On("TTL", mock.Anything, "k").Return(30, nil).Once()

	v, ttl, err := ts.im.Get(mockCtx, "k")
	ts.NoError(err)
	ts.Equal([]byte("v"), v)
	ts.Equal(30*time.Second, ttl)
}

func (ts *testsuite) TestGetNotFound() {
	ts.redis.On("Get", mock.Anything, "k").Return(nil, redis.ErrNotFound).Once()

	_, _, err := ts.im.Get(mockCtx, "k")
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestGetExpiredBeforeTTL() {
	ts.redis.On("Get", mock.Anything, "k").Return([]byte("v"), nil).Once()
	ts.redis.On("TTL", mock.Anything, "k").Return(-2, redis.ErrNotFound).Once()

	_, _, err := ts.im.Get(mockCtx, "k")
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestSetForever() {
	ts.redis.On("Set", mock.Anything, "k", []byte("v"), redis.Forever).Return(nil).Once()
	ts.NoError(ts.im.Set(mockCtx, "k", []byte("v"), 0))
}

func (ts *testsuite) TestDelFailed() {
	errDel := errors.New("conn refused")
	ts.redis.On("Del", mock.Anything, "k").Return(0, errDel).Once()
	ts.Equal(errDel, ts.im.Del(mockCtx, "k"))
}
