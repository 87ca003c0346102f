package usecase

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/x-xyz/auctionapi/base/ctx"
	hcdomain "github.com/x-xyz/auctionapi/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
	}
}

func (im *impl) Check(c ctx.Ctx) (*hcdomain.Report, error) {
	checks := []struct {
		name string
		ping func(ctx.Ctx) error
	}{
		{"mongo", im.repo.PingDB},
		{"redis", im.repo.PingCache},
	}

	report := &hcdomain.Report{Healthy: true, Deps: map[string]string{}}
	var errs error
	for _, p := range checks {
		if err := p.ping(c); err != nil {
			c.WithField("err", err).WithField("dep", p.name).Warn("dependency check failed")
			report.Healthy = false
			report.Deps[p.name] = err.Error()
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", p.name, err))
			continue
		}
		report.Deps[p.name] = hcdomain.StatusOK
	}
	return report, errs
}
