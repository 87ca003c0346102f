package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/base/delivery"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/auction"
	"github.com/x-xyz/auctionapi/domain/tournament"
	"github.com/x-xyz/auctionapi/middleware"
	authMiddleware "github.com/x-xyz/auctionapi/stores/auth/delivery/http/middleware"
)

type startParams struct {
	PlayerID string `json:"playerId" validate:"max=64"`
}

type bidParams struct {
	TeamID string `json:"teamId" validate:"required,max=64"`
	Amount *int64 `json:"amount" validate:"required,gte=0"`
}

type violationResp struct {
	Message  string                  `json:"message"`
	Reason   auction.ViolationReason `json:"reason"`
	Required int64                   `json:"required,omitempty"`
}

type handler struct {
	auction    auction.Usecase
	tournament tournament.Usecase
}

// New registers the auction routes. events serves the websocket event stream.
func New(
	e *echo.Echo,
	auction auction.Usecase,
	tournament tournament.Usecase,
	authMiddleware *authMiddleware.AuthMiddleware,
	events http.Handler,
) {
	h := &handler{auction, tournament}

	admin := authMiddleware.RequireRole(domain.RoleAdmin)
	anyone := authMiddleware.RequireRole(domain.RoleAdmin, domain.RoleViewer)

	g := e.Group("/tournaments/:tournamentId", authMiddleware.Auth(), middleware.IsValidID("tournamentId"))

	g.POST("/start", h.start, admin)

	g.POST("/bid", h.bid, admin)

	g.GET("/auction", h.state, anyone)

	g.POST("/finalize", h.finalize, admin)

	e.GET("/ws", echo.WrapHandler(events))
}

// start
//
//	@Summary		Start auction
//	@Description	Open the first round of a tournament's auction with its registered players
//	@Tags			auction
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			tournamentId	path		string		true	"tournament id"
//	@Param			params			body		startParams	false	"params"
//	@Success		200				{object}	object{data=auction.StartResult}
//	@Failure		400
//	@Failure		404
//	@Failure		409
//	@Router			/tournaments/{tournamentId}/start [post]
func (h *handler) start(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := c.Param("tournamentId")

	p := &startParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	players, err := h.tournament.ListPlayers(ctx, id)
	if err != nil {
		ctx.WithField("err", err).WithField("tournamentId", id).Error("tournament.ListPlayers failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res, err := h.auction.Start(ctx, id, players, p.PlayerID)
	if err != nil {
		ctx.WithField("err", err).WithField("tournamentId", id).Warn("auction.Start failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// bid
//
//	@Summary		Place bid
//	@Description	Bid for the active player on behalf of a team
//	@Tags			auction
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			tournamentId	path		string		true	"tournament id"
//	@Param			params			body		bidParams	true	"params"
//	@Success		200				{object}	object{data=auction.BidResult}
//	@Failure		400				{object}	object{data=violationResp}
//	@Failure		404
//	@Failure		409
//	@Router			/tournaments/{tournamentId}/bid [post]
func (h *handler) bid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := c.Param("tournamentId")

	p := &bidParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	res, err := h.auction.PlaceBid(ctx, id, p.TeamID, *p.Amount)
	if v, ok := err.(*auction.RuleViolation); ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, violationResp{
			Message:  v.Error(),
			Reason:   v.Reason,
			Required: v.Required,
		})
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// state
//
//	@Summary	Get live auction state
//	@Tags		auction
//	@Produce	json
//	@Security	Bearer
//	@Param		tournamentId	path		string	true	"tournament id"
//	@Success	200				{object}	object{data=auction.State}
//	@Failure	404
//	@Router		/tournaments/{tournamentId}/auction [get]
func (h *handler) state(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.auction.GetState(ctx, c.Param("tournamentId"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// finalize
//
//	@Summary		Finalize auction
//	@Description	Close bidding and commit every pending assignment to the tournament. Safe to retry.
//	@Tags			auction
//	@Produce		json
//	@Security		Bearer
//	@Param			tournamentId	path		string	true	"tournament id"
//	@Success		200				{object}	object{data=string}
//	@Failure		404
//	@Failure		503
//	@Router			/tournaments/{tournamentId}/finalize [post]
func (h *handler) finalize(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := c.Param("tournamentId")

	if err := h.auction.Finalize(ctx, id); err != nil {
		ctx.WithField("err", err).WithField("tournamentId", id).Error("auction.Finalize failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, id)
}
