package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/rmone/pursuitql/internal/classify"
	"github.com/rmone/pursuitql/internal/engine"
	"github.com/rmone/pursuitql/internal/refine"
	"github.com/rmone/pursuitql/internal/store"
	"github.com/rmone/pursuitql/internal/tiers"
)

// buildPipeline wires the store, tier calculator, classifier, and engine.
// The caller owns the returned store and must Close it.
func buildPipeline(ctx context.Context) (*engine.Engine, *store.Store, error) {
	dsn := databaseURL()
	if dsn == "" {
		return nil, nil, fmt.Errorf("no database configured: set database.url or DATABASE_URL")
	}

	db, err := store.Open(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}

	classifier, err := classify.NewClient(ctx, classify.ConfigFromViper(viper.GetString("ai.provider_override")))
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	eng := engine.New(classifier, refine.New(nil), db, tiers.NewCalculator(db))
	return eng, db, nil
}
