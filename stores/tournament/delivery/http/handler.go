package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/base/delivery"
	"github.com/x-xyz/auctionapi/base/metrics"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/auction"
	"github.com/x-xyz/auctionapi/domain/tournament"
	"github.com/x-xyz/auctionapi/middleware"
	authMiddleware "github.com/x-xyz/auctionapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	tournament tournament.Usecase
	auctions   auction.Usecase
	met        metrics.Service
}

func New(
	e *echo.Echo,
	tournament tournament.Usecase,
	auctions auction.Usecase,
	authMiddleware *authMiddleware.AuthMiddleware,
	met metrics.Service,
) {
	h := &handler{tournament, auctions, met}

	admin := authMiddleware.RequireRole(domain.RoleAdmin)
	anyone := authMiddleware.RequireRole(domain.RoleAdmin, domain.RoleViewer)

	gs := e.Group("/tournaments", authMiddleware.Auth())

	gs.GET("", h.list, anyone)

	gs.POST("", h.create, admin)

	g := gs.Group("/:tournamentId", middleware.IsValidID("tournamentId"))

	g.GET("", h.get, anyone)

	g.DELETE("", h.delete, admin)

	g.POST("/register", h.register, admin)

	g.GET("/players", h.players, anyone)

	g.GET("/assignments", h.assignments, anyone)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.tournament.List(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("tournament.List failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &tournament.CreateParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	res, err := h.tournament.Create(ctx, p)
	if err != nil {
		ctx.WithField("err", err).Error("tournament.Create failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	h.met.BumpSum("tournament.created", 1)
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.tournament.Get(ctx, c.Param("tournamentId"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := c.Param("tournamentId")

	// the stored auction goes first so a failed delete can be retried
	if err := h.auctions.Discard(ctx, id); err != nil {
		ctx.WithField("err", err).WithField("tournamentId", id).Error("auctions.Discard failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	if err := h.tournament.Delete(ctx, id); err != nil {
		ctx.WithField("err", err).WithField("tournamentId", id).Error("tournament.Delete failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, id)
}

func (h *handler) register(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := c.Param("tournamentId")

	p := &tournament.RegisterParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	res, err := h.tournament.RegisterPlayer(ctx, id, p)
	if err != nil {
		ctx.WithField("err", err).WithField("tournamentId", id).Error("tournament.RegisterPlayer failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) players(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.tournament.ListPlayers(ctx, c.Param("tournamentId"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) assignments(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.tournament.ListAssignments(ctx, c.Param("tournamentId"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
