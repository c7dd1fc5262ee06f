// Package metrics records native call outcomes and gas in Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/reglet-dev/nativevm/domain/entities"
	"github.com/reglet-dev/nativevm/natives"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeAbort = "abort"
	OutcomeError = "error"
)

// Collector holds the native call metrics.
type Collector struct {
	calls *prometheus.CounterVec
	gas   *prometheus.HistogramVec
}

// NewCollector registers the metrics with reg. A nil reg uses the default
// registerer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nativevm",
				Name:      "native_calls_total",
				Help:      "Total number of native function calls",
			},
			[]string{"function", "outcome"},
		),
		gas: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "nativevm",
				Name:      "native_gas",
				Help:      "Gas reported by native function calls",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"function"},
		),
	}
}

// Middleware returns a registry middleware counting every call by outcome.
func (c *Collector) Middleware() natives.Middleware {
	return func(next natives.NativeFunction) natives.NativeFunction {
		return func(ctx *natives.NativeContext, tyArgs []entities.Type, args *natives.Args) (natives.NativeResult, error) {
			fn := ctx.Function().String()
			res, err := next(ctx, tyArgs, args)

			outcome := OutcomeOK
			if err != nil {
				outcome = OutcomeError
			} else if _, aborted := res.Aborted(); aborted {
				outcome = OutcomeAbort
			}
			c.calls.WithLabelValues(fn, outcome).Inc()
			if err == nil {
				c.gas.WithLabelValues(fn).Observe(float64(res.Cost))
			}
			return res, err
		}
	}
}
