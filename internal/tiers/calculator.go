// Package tiers derives dynamic project size categories from the live fee
// distribution. Boundaries come from PERCENTILE_CONT aggregates over the
// pursuit table and are cached for a day; when the database is unreachable
// the calculator falls back to fixed dollar thresholds so classification
// never fails outright.
package tiers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Tier labels returned by Classify.
const (
	TierMicro   = "Micro"
	TierSmall   = "Small"
	TierMedium  = "Medium"
	TierLarge   = "Large"
	TierMega    = "Mega"
	TierUnknown = "unknown"
)

// Fixed thresholds used when percentile computation is unavailable.
const (
	fallbackMicroMax  = 100_000
	fallbackSmallMax  = 1_000_000
	fallbackMediumMax = 10_000_000
	fallbackLargeMax  = 50_000_000
)

// cacheTTL is how long computed boundaries stay valid before the next
// Boundaries call recomputes them.
const cacheTTL = 24 * time.Hour

const percentileQuery = `
	SELECT
		PERCENTILE_CONT(0.20) WITHIN GROUP (ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC)) AS p20,
		PERCENTILE_CONT(0.40) WITHIN GROUP (ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC)) AS p40,
		PERCENTILE_CONT(0.60) WITHIN GROUP (ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC)) AS p60,
		PERCENTILE_CONT(0.80) WITHIN GROUP (ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC)) AS p80,
		MIN(CAST(NULLIF("Fee", '') AS NUMERIC)) AS min_fee,
		MAX(CAST(NULLIF("Fee", '') AS NUMERIC)) AS max_fee,
		COUNT(*) AS total_projects
	FROM "Sample"
	WHERE "Fee" IS NOT NULL
	  AND "Fee" != ''
	  AND CAST(NULLIF("Fee", '') AS NUMERIC) > 0`

// Querier is the single database capability the calculator needs.
// *pgxpool.Pool satisfies it.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Percentiles holds the computed tier boundaries for the current fee
// distribution.
type Percentiles struct {
	P20        float64
	P40        float64
	P60        float64
	P80        float64
	Min        float64
	Max        float64
	TotalCount int
	ComputedAt time.Time
}

// Calculator computes and caches fee percentile boundaries. Safe for
// concurrent use; concurrent refreshes collapse into one database round trip.
type Calculator struct {
	db Querier

	mu     sync.RWMutex
	cached *Percentiles

	group singleflight.Group
}

// NewCalculator returns a Calculator backed by db. Boundaries are computed
// lazily on first use.
func NewCalculator(db Querier) *Calculator {
	return &Calculator{db: db}
}

// Boundaries returns the current tier boundaries, recomputing them when the
// cache is empty, stale, or force is set. A failed refresh serves the prior
// snapshot when one exists, even past its TTL; the error only surfaces when
// no boundaries were ever computed.
func (c *Calculator) Boundaries(ctx context.Context, force bool) (*Percentiles, error) {
	if !force {
		c.mu.RLock()
		cached := c.cached
		c.mu.RUnlock()
		if cached != nil && time.Since(cached.ComputedAt) < cacheTTL {
			return cached, nil
		}
	}

	v, err, _ := c.group.Do("percentiles", func() (any, error) {
		return c.compute(ctx)
	})
	if err != nil {
		c.mu.RLock()
		cached := c.cached
		c.mu.RUnlock()
		if cached != nil {
			log.Warn().Err(err).Msg("percentile refresh failed, serving stale boundaries")
			return cached, nil
		}
		return nil, err
	}
	return v.(*Percentiles), nil
}

func (c *Calculator) compute(ctx context.Context) (*Percentiles, error) {
	var p Percentiles
	row := c.db.QueryRow(ctx, percentileQuery)
	if err := row.Scan(&p.P20, &p.P40, &p.P60, &p.P80, &p.Min, &p.Max, &p.TotalCount); err != nil {
		return nil, fmt.Errorf("computing fee percentiles: %w", err)
	}
	p.ComputedAt = time.Now()

	c.mu.Lock()
	c.cached = &p
	c.mu.Unlock()

	log.Debug().
		Int("projects", p.TotalCount).
		Float64("p20", p.P20).
		Float64("p80", p.P80).
		Msg("fee percentiles refreshed")

	return &p, nil
}

// Classify maps a fee amount to its tier label using the cached boundaries.
// Non-positive fees, and any fee when boundaries cannot be computed, classify
// as TierUnknown.
func (c *Calculator) Classify(ctx context.Context, fee float64) string {
	if fee <= 0 {
		return TierUnknown
	}
	p, err := c.Boundaries(ctx, false)
	if err != nil {
		return TierUnknown
	}
	switch {
	case fee < p.P20:
		return TierMicro
	case fee < p.P40:
		return TierSmall
	case fee < p.P60:
		return TierMedium
	case fee < p.P80:
		return TierLarge
	default:
		return TierMega
	}
}

// CaseExpression renders the SQL CASE expression that labels each row with
// its size tier. Dollar boundaries appear in the labels formatted in
// millions. When boundaries cannot be computed the fixed-threshold fallback
// expression is returned instead.
func (c *Calculator) CaseExpression(ctx context.Context) string {
	p, err := c.Boundaries(ctx, false)
	if err != nil {
		log.Warn().Err(err).Msg("percentile refresh failed, using fallback tier thresholds")
		return fallbackCaseExpression
	}

	inMillions := func(v float64) string { return fmt.Sprintf("$%.1fM", v/1e6) }

	var b strings.Builder
	fmt.Fprintf(&b, "CASE\n")
	fmt.Fprintf(&b, "\tWHEN CAST(NULLIF(\"Fee\", '') AS NUMERIC) < %f THEN 'Micro (<%s)'\n",
		p.P20, inMillions(p.P20))
	fmt.Fprintf(&b, "\tWHEN CAST(NULLIF(\"Fee\", '') AS NUMERIC) < %f THEN 'Small (%s-%s)'\n",
		p.P40, inMillions(p.P20), inMillions(p.P40))
	fmt.Fprintf(&b, "\tWHEN CAST(NULLIF(\"Fee\", '') AS NUMERIC) < %f THEN 'Medium (%s-%s)'\n",
		p.P60, inMillions(p.P40), inMillions(p.P60))
	fmt.Fprintf(&b, "\tWHEN CAST(NULLIF(\"Fee\", '') AS NUMERIC) < %f THEN 'Large (%s-%s)'\n",
		p.P80, inMillions(p.P60), inMillions(p.P80))
	fmt.Fprintf(&b, "\tELSE 'Mega (>%s)'\nEND", inMillions(p.P80))
	return b.String()
}

const fallbackCaseExpression = `CASE
	WHEN CAST(NULLIF("Fee", '') AS NUMERIC) < 100000 THEN 'Micro (<$100K)'
	WHEN CAST(NULLIF("Fee", '') AS NUMERIC) < 1000000 THEN 'Small ($100K-$1M)'
	WHEN CAST(NULLIF("Fee", '') AS NUMERIC) < 10000000 THEN 'Medium ($1M-$10M)'
	WHEN CAST(NULLIF("Fee", '') AS NUMERIC) < 50000000 THEN 'Large ($10M-$50M)'
	ELSE 'Mega (>$50M)'
END`
