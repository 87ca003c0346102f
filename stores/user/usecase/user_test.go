package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/tournament"
	tournamentMocks "github.com/x-xyz/auctionapi/domain/tournament/mocks"
	"github.com/x-xyz/auctionapi/domain/user"
	"github.com/x-xyz/auctionapi/domain/user/mocks"
)

var (
	mockCtx = ctx.Background()
	mockNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

type userSuite struct {
	suite.Suite

	repo        *mocks.Repo
	tournaments *tournamentMocks.Usecase
	im          user.Usecase
}

func TestUser(t *testing.T) {
	suite.Run(t, new(userSuite))
}

func (s *userSuite) SetupTest() {
	timeNow = func() time.Time { return mockNow }
	newID = func() string { return "u1" }

	s.repo = &mocks.Repo{}
	s.tournaments = &tournamentMocks.Usecase{}
	s.im = New(&UserUseCaseCfg{UserRepo: s.repo, Tournaments: s.tournaments})
}

func (s *userSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
	s.tournaments.AssertExpectations(s.T())
}

func (s *userSuite) TestCreate() {
	s.tournaments.On("Get", mock.Anything, "t1").Return(&tournament.Tournament{ID: "t1"}, nil).Once()
	want := &user.User{
		TournamentID: "t1",
		UserID:       "u1",
		Email:        "cap@cup.io",
		Name:         "Cap",
		Role:         domain.RoleCaptain,
		TeamID:       "x",
		Status:       user.StatusActive,
		CreatedAt:    mockNow,
	}
	s.repo.On("Insert", mock.Anything, want).Return(nil).Once()

	got, err := s.im.Create(mockCtx, &user.CreateParams{
		TournamentID: "t1",
		Email:        "Cap@Cup.io",
		Name:         "Cap",
		Role:         domain.RoleCaptain,
		TeamID:       "x",
	})
	s.NoError(err)
	s.Equal(want, got)
}

func (s *userSuite) TestCreateRejected() {
	_, err := s.im.Create(mockCtx, &user.CreateParams{TournamentID: "t1", Email: "a@cup.io", Name: "a", Role: "OWNER"})
	s.True(errors.Is(err, domain.ErrBadParamInput))

	_, err = s.im.Create(mockCtx, &user.CreateParams{TournamentID: "t1", Email: "a@cup.io", Name: "a", Role: domain.RoleCaptain})
	s.True(errors.Is(err, domain.ErrBadParamInput))

	s.tournaments.On("Get", mock.Anything, "t9").Return(nil, domain.ErrNotFound).Once()
	_, err = s.im.Create(mockCtx, &user.CreateParams{TournamentID: "t9", Email: "a@cup.io", Name: "a", Role: domain.RoleViewer})
	s.Equal(domain.ErrNotFound, err)
}

func (s *userSuite) TestCreateDuplicatedEmail() {
	s.tournaments.On("Get", mock.Anything, "t1").Return(&tournament.Tournament{ID: "t1"}, nil).Once()
	s.repo.On("Insert", mock.Anything, mock.Anything).Return(domain.ErrConflict).Once()

	_, err := s.im.Create(mockCtx, &user.CreateParams{TournamentID: "t1", Email: "a@cup.io", Name: "a", Role: domain.RoleAuctionOwner})
	s.Equal(domain.ErrConflict, err)
}

func (s *userSuite) TestListAndDelete() {
	roster := []*user.User{{TournamentID: "t1", UserID: "u1"}}
	s.repo.On("FindAll", mock.Anything, "t1").Return(roster, nil).Once()
	s.repo.On("Delete", mock.Anything, "t1", "u1").Return(nil).Once()
	s.repo.On("Delete", mock.Anything, "t1", "u2").Return(domain.ErrNotFound).Once()

	got, err := s.im.List(mockCtx, "t1")
	s.NoError(err)
	s.Equal(roster, got)

	s.NoError(s.im.Delete(mockCtx, "t1", "u1"))
	s.Equal(domain.ErrNotFound, s.im.Delete(mockCtx, "t1", "u2"))
}
