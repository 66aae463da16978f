// Package reducer turns a liquidity series into headline scorecards.
package reducer

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"Denominator/internal/domain/models"
	"Denominator/internal/domain/repository"
	"Denominator/pkg/cache"
	"Denominator/pkg/logger"
)

// netLiquidityFloor keeps CAGR defined when the base-period net liquidity is not positive.
const netLiquidityFloor = 0.0001

var ErrEmptySeries = errors.New("reducer: series is empty")

// CAGR is the compound annual growth rate in percent, rounded to one decimal.
// Non-positive endpoints or horizon yield 0.
func CAGR(initial, final, years float64) float64 {
	if !(initial > 0) || !(final > 0) || !(years > 0) {
		return 0
	}
	return round1((math.Pow(final/initial, 1/years) - 1) * 100)
}

// YoY is the percent change against the previous value, rounded to one decimal.
// A zero previous value yields 0.
func YoY(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return round1((current - previous) / previous * 100)
}

func round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

// Compute derives the scorecards from the last row of series under policy.
func Compute(series models.Series, policy models.ChangePolicy) (models.Metrics, error) {
	latest, ok := series.Last()
	if !ok {
		return models.Metrics{}, ErrEmptySeries
	}

	var change func(get func(models.LiquidityDataPoint) float64, floor float64) float64
	switch policy {
	case models.ChangeYoY:
		prev, found := series.Lookup(latest.Ordinal() - 12)
		change = func(get func(models.LiquidityDataPoint) float64, _ float64) float64 {
			if !found {
				return 0
			}
			return YoY(get(latest), get(prev))
		}
	default:
		first, _ := series.First()
		years := series.SpanYears()
		change = func(get func(models.LiquidityDataPoint) float64, floor float64) float64 {
			return CAGR(math.Max(get(first), floor), get(latest), years)
		}
		policy = models.ChangeCAGR
	}

	m2 := func(p models.LiquidityDataPoint) float64 { return p.M2Global }
	cb := func(p models.LiquidityDataPoint) float64 { return p.CBTotal }
	net := func(p models.LiquidityDataPoint) float64 { return p.NetLiquidity }
	idx := func(p models.LiquidityDataPoint) float64 { return p.DenominatorIndex }

	return models.Metrics{
		Policy:           policy,
		M2Global:         models.Metric{Value: latest.M2Global, Change: change(m2, math.Inf(-1)), Label: "M2 Global", Unit: "T"},
		CBTotal:          models.Metric{Value: latest.CBTotal, Change: change(cb, math.Inf(-1)), Label: "Central Bank Balance Sheets", Unit: "T"},
		NetLiquidity:     models.Metric{Value: latest.NetLiquidity, Change: change(net, netLiquidityFloor), Label: "Fed Net Liquidity", Unit: "T"},
		DenominatorIndex: models.Metric{Value: latest.DenominatorIndex, Change: change(idx, math.Inf(-1)), Label: "Denominator Index", Unit: ""},
	}, nil
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithCache memoizes results in c for ttl. Without it a small in-memory cache is used.
func WithCache(c cache.Service, ttl time.Duration) Option {
	return func(r *Reducer) {
		if c != nil {
			r.cache = c
		}
		r.ttl = ttl
	}
}

func WithMetrics(m repository.Metrics) Option {
	return func(r *Reducer) {
		if m != nil {
			r.metrics = m
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(r *Reducer) {
		if l != nil {
			r.log = l
		}
	}
}

// Reducer computes scorecards under one change policy, memoized per distinct series.
type Reducer struct {
	policy  models.ChangePolicy
	cache   cache.Service
	ttl     time.Duration
	metrics repository.Metrics
	log     *logger.Logger
}

func New(policy models.ChangePolicy, opts ...Option) *Reducer {
	r := &Reducer{
		policy:  policy,
		metrics: repository.NopMetrics{},
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = cache.NewMemoryCache(cache.WithMemoryMaxSize(16))
	}
	return r
}

// Policy reports the change policy in force.
func (r *Reducer) Policy() models.ChangePolicy { return r.policy }

// LatestMetrics returns the scorecards for series. Identical series content is
// computed once per cache lifetime.
func (r *Reducer) LatestMetrics(ctx context.Context, series models.Series) (models.Metrics, error) {
	if series.Len() == 0 {
		return models.Metrics{}, ErrEmptySeries
	}

	key := cache.Key("metrics", string(r.policy), series.Fingerprint())
	start := time.Now()
	m, hit, err := cache.GetOrLoad(ctx, r.cache, key, r.ttl, func() (models.Metrics, error) {
		return Compute(series, r.policy)
	})
	if err != nil {
		r.metrics.RecordError("reduce")
		return models.Metrics{}, err
	}

	if hit {
		r.metrics.RecordCache("hit")
		return m, nil
	}
	r.metrics.RecordCache("miss")
	r.metrics.RecordLatency("reduce", time.Since(start).Seconds())
	for name, metric := range m.ByName() {
		r.metrics.RecordScorecard(name, metric.Value, metric.Change)
	}
	r.log.Debug("metrics computed",
		logger.String("policy", string(r.policy)),
		logger.String("fingerprint", series.Fingerprint()),
		logger.Float64("denominator_index", m.DenominatorIndex.Value),
	)
	return m, nil
}
