package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/base/delivery"
	"github.com/x-xyz/auctionapi/domain"
)

const identityKey = "identity"

type AuthMiddleware struct {
	auth domain.AuthUsecase
}

func New(auth domain.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// Auth requires a valid bearer token
func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: m.validateAuthToken,
		ErrorHandler: func(err error, c echo.Context) error {
			return delivery.MakeJsonResp(c, http.StatusUnauthorized, "invalid or missing token")
		},
	})
}

// RequireRole must follow Auth; it rejects callers whose role is not listed
func (m *AuthMiddleware) RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := IdentityOf(c)
			if id == nil {
				return delivery.MakeJsonResp(c, http.StatusUnauthorized, "invalid or missing token")
			}
			for _, r := range roles {
				if id.Role == r {
					return next(c)
				}
			}
			return delivery.MakeJsonResp(c, http.StatusForbidden, "insufficient role")
		}
	}
}

// IdentityOf returns the caller verified by Auth, nil when absent
func IdentityOf(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	context := c.Get("ctx").(ctx.Ctx)
	id, err := m.auth.ParseToken(context, key)
	if err != nil {
		context.WithField("err", err).Warn("auth.ParseToken failed")
		return false, nil
	}

	c.Set(identityKey, id)
	c.Set("ctx", ctx.WithValue(context, "userId", id.UserID))
	return true, nil
}
