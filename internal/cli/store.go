package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nrfta/searchresult-go/internal/config"
	"github.com/nrfta/searchresult-go/source"
)

func noopClose() error { return nil }

// openStore opens the record store selected by cfg.Source.Kind and wraps it in
// a cache when a cache TTL is configured.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (source.Store, func() error, error) {
	var (
		store     source.Store
		closeFunc = noopClose
	)

	switch cfg.Source.Kind {
	case config.SourceFile:
		store = source.NewJSONFile(cfg.Source.Dir)

	case config.SourcePostgres:
		db, err := source.OpenPostgres(ctx, cfg.Source.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		pg := source.NewPostgres(db, source.WithTable(cfg.Source.Postgres.Table))
		if cfg.Source.Postgres.EnsureSchema {
			if err := pg.EnsureSchema(ctx); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		store = pg
		closeFunc = db.Close

	case config.SourceRedis:
		client, err := source.OpenRedis(ctx, cfg.Source.Redis.URL)
		if err != nil {
			return nil, nil, err
		}
		store = source.NewRedis(client,
			source.WithKeyPrefix(cfg.Source.Redis.Prefix),
			source.WithExpiration(cfg.Source.Redis.TTL),
		)
		closeFunc = client.Close

	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}

	log.Debug("record store opened", zap.String("kind", cfg.Source.Kind))

	if cfg.Source.CacheTTL > 0 {
		store = source.NewCached(store, cfg.Source.CacheTTL)
	}

	return store, closeFunc, nil
}
