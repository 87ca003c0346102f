package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/auctionapi/base/ctx"
)

// Role is the access level carried in a token
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleViewer Role = "VIEWER"
	// RoleAuctionOwner manages the user roster of a tournament
	RoleAuctionOwner Role = "AUCTION_OWNER"
	RoleCaptain      Role = "CAPTAIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleViewer, RoleAuctionOwner, RoleCaptain:
		return true
	}
	return false
}

type JwtCustomClaims struct {
	Role Role `json:"role"`
	jwt.StandardClaims
}

// Identity is what a verified token says about the caller
type Identity struct {
	UserID string
	Role   Role
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, userID string, role Role) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (*Identity, error)
}
