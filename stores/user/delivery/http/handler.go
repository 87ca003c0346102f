package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/base/delivery"
	"github.com/x-xyz/auctionapi/base/metrics"
	"github.com/x-xyz/auctionapi/base/validator"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/user"
	authMiddleware "github.com/x-xyz/auctionapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	user user.Usecase
	met  metrics.Service
}

func New(
	e *echo.Echo,
	user user.Usecase,
	authMiddleware *authMiddleware.AuthMiddleware,
	met metrics.Service,
) {
	h := &handler{user, met}

	g := e.Group("/admin/users", authMiddleware.Auth(), authMiddleware.RequireRole(domain.RoleAdmin, domain.RoleAuctionOwner))

	g.POST("", h.create)

	g.GET("", h.list)

	g.DELETE("/:userId", h.delete)
}

// create
//
//	@Summary	Add a user to a tournament roster
//	@Tags		user
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		params	body		user.CreateParams	true	"params"
//	@Success	201		{object}	object{data=user.User}
//	@Failure	400
//	@Failure	404
//	@Failure	409
//	@Router		/admin/users [post]
func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &user.CreateParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	res, err := h.user.Create(ctx, p)
	if err != nil {
		ctx.WithField("err", err).WithField("tournamentId", p.TournamentID).Warn("user.Create failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	h.met.BumpSum("user.created", 1, "role", string(res.Role))
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

// list
//
//	@Summary	List the roster of a tournament
//	@Tags		user
//	@Produce	json
//	@Security	Bearer
//	@Param		tournamentId	query		string	true	"tournament id"
//	@Success	200				{object}	object{data=[]user.User}
//	@Failure	400
//	@Router		/admin/users [get]
func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	tid := c.QueryParam("tournamentId")
	if !validator.IsValidID(tid) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "tournamentId required")
	}

	res, err := h.user.List(ctx, tid)
	if err != nil {
		ctx.WithField("err", err).WithField("tournamentId", tid).Error("user.List failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// delete
//
//	@Summary	Remove a user from a tournament roster
//	@Tags		user
//	@Security	Bearer
//	@Param		userId			path	string	true	"user id"
//	@Param		tournamentId	query	string	true	"tournament id"
//	@Success	204
//	@Failure	400
//	@Failure	404
//	@Router		/admin/users/{userId} [delete]
func (h *handler) delete(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	tid := c.QueryParam("tournamentId")
	if !validator.IsValidID(tid) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "tournamentId required")
	}

	if err := h.user.Delete(ctx, tid, c.Param("userId")); err != nil {
		ctx.WithField("err", err).WithField("tournamentId", tid).Warn("user.Delete failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	h.met.BumpSum("user.deleted", 1)
	return c.NoContent(http.StatusNoContent)
}
