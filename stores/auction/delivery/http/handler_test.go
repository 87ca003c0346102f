package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/base/testutil"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/auction"
	auctionMocks "github.com/x-xyz/auctionapi/domain/auction/mocks"
	tournamentMocks "github.com/x-xyz/auctionapi/domain/tournament/mocks"
	authMiddleware "github.com/x-xyz/auctionapi/stores/auth/delivery/http/middleware"
	authUsecase "github.com/x-xyz/auctionapi/stores/auth/usecase"
)

const tid = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"

type handlerSuite struct {
	suite.Suite
	e          *echo.Echo
	auction    *auctionMocks.Usecase
	tournament *tournamentMocks.Usecase
	admin      string
	viewer     string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	auth := authUsecase.New("secret")
	s.auction = &auctionMocks.Usecase{}
	s.tournament = &tournamentMocks.Usecase{}
	s.e = testutil.NewEcho()
	events := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	New(s.e, s.auction, s.tournament, authMiddleware.New(auth), events)

	var err error
	s.admin, err = auth.SignToken(ctx.Background(), "admin", domain.RoleAdmin)
	s.Require().NoError(err)
	s.viewer, err = auth.SignToken(ctx.Background(), "viewer", domain.RoleViewer)
	s.Require().NoError(err)
}

func (s *handlerSuite) TearDownTest() {
	s.auction.AssertExpectations(s.T())
	s.tournament.AssertExpectations(s.T())
}

func (s *handlerSuite) path(action string) string {
	return "/tournaments/" + tid + "/" + action
}

func (s *handlerSuite) TestStart() {
	players := []auction.PlayerRegistration{{UserID: "a"}, {UserID: "b"}}
	endsAt := time.Unix(1000, 0).UTC()
	s.tournament.On("ListPlayers", mock.Anything, tid).Return(players, nil).Once()
	s.auction.On("Start", mock.Anything, tid, players, "b").Return(&auction.StartResult{TournamentID: tid, EndsAt: endsAt, ActivePlayer: "b"}, nil).Once()

	rec := testutil.Do(s.T(), s.e, http.MethodPost, s.path("start"), s.admin, map[string]string{"playerId": "b"})
	s.Equal(http.StatusOK, rec.Code)

	res := &auction.StartResult{}
	testutil.JsonData(s.T(), rec, res)
	s.Equal("b", res.ActivePlayer)
	s.Equal(endsAt, res.EndsAt)
}

func (s *handlerSuite) TestStartWithoutBody() {
	s.tournament.On("ListPlayers", mock.Anything, tid).Return([]auction.PlayerRegistration{}, nil).Once()
	s.auction.On("Start", mock.Anything, tid, []auction.PlayerRegistration{}, "").Return(nil, auction.ErrEmptyPool).Once()

	rec := testutil.Do(s.T(), s.e, http.MethodPost, s.path("start"), s.admin, nil)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *handlerSuite) TestStartRunning() {
	s.tournament.On("ListPlayers", mock.Anything, tid).Return([]auction.PlayerRegistration{{UserID: "a"}}, nil).Once()
	s.auction.On("Start", mock.Anything, tid, mock.Anything, "").Return(nil, auction.ErrAuctionRunning).Once()

	rec := testutil.Do(s.T(), s.e, http.MethodPost, s.path("start"), s.admin, map[string]string{})
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *handlerSuite) TestStartViewerForbidden() {
	rec := testutil.Do(s.T(), s.e, http.MethodPost, s.path("start"), s.viewer, nil)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *handlerSuite) TestBid() {
	bid := auction.Bid{TeamID: "x", Amount: 150, Ts: time.Unix(1000, 0).UTC()}
	s.auction.On("PlaceBid", mock.Anything, tid, "x", int64(150)).Return(&auction.BidResult{Bid: bid}, nil).Once()

	rec := testutil.Do(s.T(), s.e, http.MethodPost, s.path("bid"), s.admin, map[string]interface{}{"teamId": "x", "amount": 150})
	s.Equal(http.StatusOK, rec.Code)

	res := &auction.BidResult{}
	testutil.JsonData(s.T(), rec, res)
	s.Equal(bid, res.Bid)
	s.False(res.Awarded)
}

func (s *handlerSuite) TestBidZeroAmount() {
	s.auction.On("PlaceBid", mock.Anything, tid, "x", int64(0)).Return(nil, &auction.RuleViolation{Reason: auction.ReasonBelowMinimum, Required: 10}).Once()

	rec := testutil.Do(s.T(), s.e, http.MethodPost, s.path("bid"), s.admin, map[string]interface{}{"teamId": "x", "amount": 0})
	s.Equal(http.StatusBadRequest, rec.Code)

	res := &violationResp{}
	testutil.JsonData(s.T(), rec, res)
	s.Equal(&violationResp{Message: "Bid must be >= 10", Reason: auction.ReasonBelowMinimum, Required: 10}, res)
}

func (s *handlerSuite) TestBidInvalidParams() {
	rec := testutil.Do(s.T(), s.e, http.MethodPost, s.path("bid"), s.admin, map[string]interface{}{"teamId": "x"})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = testutil.Do(s.T(), s.e, http.MethodPost, s.path("bid"), s.admin, map[string]interface{}{"amount": 10})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestBidErrors() {
	tests := []struct {
		err  error
		code int
	}{
		{auction.ErrNoActiveAuction, http.StatusNotFound},
		{auction.ErrNoActivePlayer, http.StatusConflict},
		{auction.ErrAuctionEnded, http.StatusConflict},
	}
	for _, tt := range tests {
		s.auction.On("PlaceBid", mock.Anything, tid, "x", int64(100)).Return(nil, tt.err).Once()
		rec := testutil.Do(s.T(), s.e, http.MethodPost, s.path("bid"), s.admin, map[string]interface{}{"teamId": "x", "amount": 100})
		s.Equal(tt.code, rec.Code, tt.err.Error())
	}
}

func (s *handlerSuite) TestState() {
	st := &auction.State{TournamentID: tid, Status: auction.StatusExhausted, Revision: 7}
	s.auction.On("GetState", mock.Anything, tid).Return(st, nil).Once()

	rec := testutil.Do(s.T(), s.e, http.MethodGet, s.path("auction"), s.viewer, nil)
	s.Equal(http.StatusOK, rec.Code)

	res := &auction.State{}
	testutil.JsonData(s.T(), rec, res)
	s.Equal(auction.StatusExhausted, res.Status)
	s.Equal(uint64(7), res.Revision)
}

func (s *handlerSuite) TestFinalize() {
	s.auction.On("Finalize", mock.Anything, tid).Return(nil).Once()
	s.Equal(http.StatusOK, testutil.Do(s.T(), s.e, http.MethodPost, s.path("finalize"), s.admin, nil).Code)

	s.auction.On("Finalize", mock.Anything, tid).Return(domain.ErrPersistenceFailure).Once()
	s.Equal(http.StatusServiceUnavailable, testutil.Do(s.T(), s.e, http.MethodPost, s.path("finalize"), s.admin, nil).Code)
}

func (s *handlerSuite) TestEvents() {
	s.Equal(http.StatusTeapot, testutil.Do(s.T(), s.e, http.MethodGet, "/ws", "", nil).Code)
}
