package auction

import (
	"time"

	"golang.org/x/xerrors"
)

const (
	// StartingBudget is every team's budget when its ledger is created
	StartingBudget int64 = 1000
	// RosterSize is how many players a team may be awarded
	RosterSize = 9

	DefaultMinBid          int64 = 0
	DefaultIncrement       int64 = 1
	DefaultDurationSeconds int64 = 300
)

// Config is the normalized auction configuration of a tournament.
// It must not change once an auction using it has started.
type Config struct {
	MinBid             int64    `json:"minBid" bson:"minBid"`
	Increment          int64    `json:"increment" bson:"increment"`
	ReservePrice       *int64   `json:"reservePrice,omitempty" bson:"reservePrice,omitempty"`
	BuyNowPrice        *int64   `json:"buyNowPrice,omitempty" bson:"buyNowPrice,omitempty"`
	DurationSeconds    int64    `json:"durationSeconds" bson:"durationSeconds"`
	AntiSnipingSeconds int64    `json:"antiSnipingSeconds" bson:"antiSnipingSeconds"`
	AutoExtendSeconds  int64    `json:"autoExtendSeconds" bson:"autoExtendSeconds"`
	MaxBidsPerPlayer   *int     `json:"maxBidsPerPlayer,omitempty" bson:"maxBidsPerPlayer,omitempty"`
	AllowedTeams       []string `json:"allowedTeams,omitempty" bson:"allowedTeams,omitempty"`
}

// RawConfig is an auction configuration as submitted by a client; nil fields take defaults.
type RawConfig struct {
	MinBid             *int64   `json:"minBid"`
	Increment          *int64   `json:"increment"`
	ReservePrice       *int64   `json:"reservePrice"`
	BuyNowPrice        *int64   `json:"buyNowPrice"`
	DurationSeconds    *int64   `json:"durationSeconds"`
	AntiSnipingSeconds *int64   `json:"antiSnipingSeconds"`
	AutoExtendSeconds  *int64   `json:"autoExtendSeconds"`
	MaxBidsPerPlayer   *int     `json:"maxBidsPerPlayer"`
	AllowedTeams       []string `json:"allowedTeams"`
}

func (c Config) Duration() time.Duration {
	return time.Duration(c.DurationSeconds) * time.Second
}

func (c Config) AntiSnipingWindow() time.Duration {
	return time.Duration(c.AntiSnipingSeconds) * time.Second
}

func (c Config) AutoExtend() time.Duration {
	return time.Duration(c.AutoExtendSeconds) * time.Second
}

// MeetsReserve reports whether a winning amount may be sold
func (c Config) MeetsReserve(amount int64) bool {
	return c.ReservePrice == nil || amount >= *c.ReservePrice
}

// check reports a normalized config that ValidateConfig could not have produced
func (c Config) check() error {
	switch {
	case c.MinBid < 0:
		return xerrors.New("negative minBid")
	case c.Increment <= 0:
		return xerrors.New("increment must be positive")
	case c.DurationSeconds <= 0:
		return xerrors.New("durationSeconds must be positive")
	case c.AntiSnipingSeconds < 0 || c.AutoExtendSeconds < 0:
		return xerrors.New("negative anti-sniping window")
	case c.ReservePrice != nil && *c.ReservePrice < c.MinBid:
		return xerrors.New("reservePrice below minBid")
	case c.BuyNowPrice != nil && (*c.BuyNowPrice <= 0 || *c.BuyNowPrice < c.MinBid):
		return xerrors.New("buyNowPrice below minBid")
	case c.MaxBidsPerPlayer != nil && *c.MaxBidsPerPlayer <= 0:
		return xerrors.New("maxBidsPerPlayer must be positive")
	}
	return nil
}

func (c Config) allows(teamID string) bool {
	if len(c.AllowedTeams) == 0 {
		return true
	}
	for _, t := range c.AllowedTeams {
		if t == teamID {
			return true
		}
	}
	return false
}
