package healthcheck

import (
	"github.com/x-xyz/auctionapi/base/ctx"
)

const StatusOK = "ok"

// Report is the status of every dependency the auction service needs to serve bids
type Report struct {
	Healthy bool              `json:"healthy"`
	Deps    map[string]string `json:"deps"`
}

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	// Check pings every dependency; the error combines the failures of all of them
	Check(c ctx.Ctx) (*Report, error)
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	PingDB(c ctx.Ctx) error
	PingCache(c ctx.Ctx) error
}
