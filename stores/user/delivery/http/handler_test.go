package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/base/metrics"
	"github.com/x-xyz/auctionapi/base/testutil"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/user"
	"github.com/x-xyz/auctionapi/domain/user/mocks"
	authMiddleware "github.com/x-xyz/auctionapi/stores/auth/delivery/http/middleware"
	authUsecase "github.com/x-xyz/auctionapi/stores/auth/usecase"
)

const tid = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"

type handlerSuite struct {
	suite.Suite
	e      *echo.Echo
	uc     *mocks.Usecase
	admin  string
	owner  string
	viewer string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	auth := authUsecase.New("secret")
	s.uc = &mocks.Usecase{}
	s.e = testutil.NewEcho()
	New(s.e, s.uc, authMiddleware.New(auth), metrics.NewNop())

	var err error
	s.admin, err = auth.SignToken(ctx.Background(), "admin", domain.RoleAdmin)
	s.Require().NoError(err)
	s.owner, err = auth.SignToken(ctx.Background(), "owner", domain.RoleAuctionOwner)
	s.Require().NoError(err)
	s.viewer, err = auth.SignToken(ctx.Background(), "viewer", domain.RoleViewer)
	s.Require().NoError(err)
}

func (s *handlerSuite) TearDownTest() {
	s.uc.AssertExpectations(s.T())
}

func (s *handlerSuite) TestCreate() {
	params := &user.CreateParams{TournamentID: tid, Email: "cap@cup.io", Name: "Cap", Role: domain.RoleCaptain, TeamID: "x"}
	created := &user.User{
		TournamentID: tid,
		UserID:       "u1",
		Email:        "cap@cup.io",
		Name:         "Cap",
		Role:         domain.RoleCaptain,
		TeamID:       "x",
		Status:       user.StatusActive,
		CreatedAt:    time.Unix(0, 0).UTC(),
	}
	s.uc.On("Create", mock.Anything, params).Return(created, nil).Once()

	rec := testutil.Do(s.T(), s.e, http.MethodPost, "/admin/users", s.owner, params)
	s.Equal(http.StatusCreated, rec.Code)

	res := &user.User{}
	testutil.JsonData(s.T(), rec, res)
	s.Equal(created, res)
}

func (s *handlerSuite) TestCreateValidation() {
	for _, p := range []*user.CreateParams{
		{TournamentID: tid, Email: "not-an-email", Name: "a", Role: domain.RoleViewer},
		{TournamentID: "t1", Email: "a@cup.io", Name: "a", Role: domain.RoleViewer},
		{TournamentID: tid, Email: "a@cup.io", Role: domain.RoleViewer},
	} {
		rec := testutil.Do(s.T(), s.e, http.MethodPost, "/admin/users", s.admin, p)
		s.Equal(http.StatusBadRequest, rec.Code)
	}
}

func (s *handlerSuite) TestCreateConflict() {
	s.uc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrConflict).Once()
	rec := testutil.Do(s.T(), s.e, http.MethodPost, "/admin/users", s.admin, &user.CreateParams{TournamentID: tid, Email: "a@cup.io", Name: "a", Role: domain.RoleViewer})
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *handlerSuite) TestForbiddenForViewer() {
	rec := testutil.Do(s.T(), s.e, http.MethodGet, "/admin/users?tournamentId="+tid, s.viewer, nil)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = testutil.Do(s.T(), s.e, http.MethodGet, "/admin/users?tournamentId="+tid, "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *handlerSuite) TestList() {
	roster := []*user.User{{TournamentID: tid, UserID: "u1", Email: "a@cup.io", Name: "a", Role: domain.RoleViewer, Status: user.StatusActive, CreatedAt: time.Unix(0, 0).UTC()}}
	s.uc.On("List", mock.Anything, tid).Return(roster, nil).Once()

	rec := testutil.Do(s.T(), s.e, http.MethodGet, "/admin/users?tournamentId="+tid, s.admin, nil)
	s.Equal(http.StatusOK, rec.Code)

	res := []*user.User{}
	testutil.JsonData(s.T(), rec, &res)
	s.Equal(roster, res)
}

func (s *handlerSuite) TestTournamentRequired() {
	rec := testutil.Do(s.T(), s.e, http.MethodGet, "/admin/users", s.admin, nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = testutil.Do(s.T(), s.e, http.MethodDelete, "/admin/users/u1", s.admin, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestDelete() {
	s.uc.On("Delete", mock.Anything, tid, "u1").Return(nil).Once()
	s.uc.On("Delete", mock.Anything, tid, "u2").Return(domain.ErrNotFound).Once()

	rec := testutil.Do(s.T(), s.e, http.MethodDelete, "/admin/users/u1?tournamentId="+tid, s.owner, nil)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = testutil.Do(s.T(), s.e, http.MethodDelete, "/admin/users/u2?tournamentId="+tid, s.owner, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}
