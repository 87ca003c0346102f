/*
Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- Error: *.err
*/
package metrics

import (
	"github.com/spf13/viper"

	"github.com/x-xyz/auctionapi/base/env"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// New creates a metric client with pkgName as key prefix
func New(pkgName string) Service {
	return &Metrics{
		pkgName: pkgName,
		datadog: DDMetrics{
			ddTags: []string{
				"host:", // remove unused host tag
				"pod:" + env.PodName(),
				"env:" + viper.GetString("env_name"),
				"app:" + viper.GetString("app_name"),
			},
		},
	}
}

// Metrics prefixes every key with the package name before handing it to datadog
type Metrics struct {
	pkgName string
	datadog DDMetrics
}

// recoverBump swallows a panic raised by the statsd client so metrics never take down a caller
func (mt *Metrics) recoverBump(key string) {
	if err := recover(); err != nil {
		mt.datadog.BumpSum("bump.panic", 1, 1, "key", mt.pkgName+"."+key)
	}
}

func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverBump(key)
	mt.datadog.BumpAvg(mt.pkgName+`.`+key, val, 1, tags...)
}

func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverBump(key)
	mt.datadog.BumpSum(mt.pkgName+`.`+key, val, 1, tags...)
}

func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverBump(key)
	mt.datadog.BumpHistogram(mt.pkgName+`.`+key, val, 1, tags...)
}

// BumpTime starts a timer; call End on the result to record the elapsed time.
//
//	defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return mt.datadog.BumpTime(mt.pkgName+`.`+key, 1, tags...)
}

type nop struct{}

// NewNop returns a Service that drops everything
func NewNop() Service {
	return nop{}
}

func (nop) BumpAvg(key string, val float64, tags ...string)       {}
func (nop) BumpSum(key string, val float64, tags ...string)       {}
func (nop) BumpHistogram(key string, val float64, tags ...string) {}
func (nop) BumpTime(key string, tags ...string) Ender             { return nop{} }
func (nop) End()                                                  {}
