package tiers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRow struct {
	vals []any
	err  error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch v := d.(type) {
		case *float64:
			*v = r.vals[i].(float64)
		case *int:
			*v = r.vals[i].(int)
		}
	}
	return nil
}

type stubDB struct {
	row   stubRow
	calls int
}

func (s *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	s.calls++
	return s.row
}

func healthyDB() *stubDB {
	return &stubDB{row: stubRow{vals: []any{
		200_000.0, 800_000.0, 3_000_000.0, 20_000_000.0,
		10_000.0, 95_000_000.0, 1234,
	}}}
}

func TestBoundariesCachesResult(t *testing.T) {
	db := healthyDB()
	c := NewCalculator(db)

	p, err := c.Boundaries(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 200_000.0, p.P20)
	assert.Equal(t, 1234, p.TotalCount)
	assert.WithinDuration(t, time.Now(), p.ComputedAt, time.Minute)

	_, err = c.Boundaries(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, db.calls)

	_, err = c.Boundaries(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, db.calls)
}

func TestBoundariesServesStaleSnapshotOnFailedRefresh(t *testing.T) {
	db := healthyDB()
	c := NewCalculator(db)
	ctx := context.Background()

	_, err := c.Boundaries(ctx, false)
	require.NoError(t, err)

	// Age the snapshot past its TTL and break the database.
	c.mu.Lock()
	c.cached.ComputedAt = time.Now().Add(-25 * time.Hour)
	c.mu.Unlock()
	db.row = stubRow{err: errors.New("connection refused")}

	p, err := c.Boundaries(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 200_000.0, p.P20)

	// Classification and the CASE expression keep using the stale boundaries
	// rather than degrading to unknown or the fixed fallback.
	assert.Equal(t, TierMega, c.Classify(ctx, 50_000_000))
	assert.Contains(t, c.CaseExpression(ctx), "Micro (<$0.2M)")
}

func TestBoundariesErrorsWithoutAnySnapshot(t *testing.T) {
	c := NewCalculator(&stubDB{row: stubRow{err: errors.New("connection refused")}})
	_, err := c.Boundaries(context.Background(), false)
	require.Error(t, err)
}

func TestClassifyMonotonic(t *testing.T) {
	c := NewCalculator(healthyDB())
	ctx := context.Background()

	tests := []struct {
		fee  float64
		want string
	}{
		{50_000, TierMicro},
		{200_000, TierSmall},
		{799_999, TierSmall},
		{800_000, TierMedium},
		{3_000_000, TierLarge},
		{20_000_000, TierMega},
		{1_000_000_000, TierMega},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(ctx, tt.fee), "fee %.0f", tt.fee)
	}

	// Ordering property: a larger fee never maps to a lower tier.
	rank := map[string]int{TierMicro: 0, TierSmall: 1, TierMedium: 2, TierLarge: 3, TierMega: 4}
	prev := -1
	for fee := 1_000.0; fee < 100_000_000; fee *= 3 {
		r := rank[c.Classify(ctx, fee)]
		assert.GreaterOrEqual(t, r, prev, "fee %.0f", fee)
		prev = r
	}
}

func TestClassifyNonPositive(t *testing.T) {
	c := NewCalculator(healthyDB())
	assert.Equal(t, TierUnknown, c.Classify(context.Background(), 0))
	assert.Equal(t, TierUnknown, c.Classify(context.Background(), -5))
}

func TestClassifyUnavailableBoundaries(t *testing.T) {
	c := NewCalculator(&stubDB{row: stubRow{err: errors.New("connection refused")}})
	assert.Equal(t, TierUnknown, c.Classify(context.Background(), 5_000_000))
}

func TestCaseExpressionUsesBoundaries(t *testing.T) {
	c := NewCalculator(healthyDB())
	expr := c.CaseExpression(context.Background())

	assert.Contains(t, expr, "CASE")
	assert.Contains(t, expr, "Micro (<$0.2M)")
	assert.Contains(t, expr, "Mega (>$20.0M)")
	assert.True(t, strings.HasSuffix(expr, "END"))
}

func TestCaseExpressionFallback(t *testing.T) {
	c := NewCalculator(&stubDB{row: stubRow{err: errors.New("down")}})
	expr := c.CaseExpression(context.Background())

	assert.Contains(t, expr, "Micro (<$100K)")
	assert.Contains(t, expr, "Large ($10M-$50M)")
	assert.Contains(t, expr, "Mega (>$50M)")
}
