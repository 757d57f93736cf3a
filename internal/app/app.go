// Package app wires configuration into the state layer and the tracking
// daemon. Both the CLI commands and `serve` start here.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/productiviquest/internal/config"
	"github.com/alexanderramin/productiviquest/internal/db"
	"github.com/alexanderramin/productiviquest/internal/service"
)

// Core is the persisted state layer shared by every command.
type Core struct {
	DB       *sql.DB
	Store    *service.Store
	State    service.StateService
	Location *time.Location
	Observer service.UseCaseObserver
}

// Open opens the database, applies migrations and seeds any state keys that
// have never been written.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Core, error) {
	path, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	database, err := db.OpenDB(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := service.NewStore(db.NewSQLiteUnitOfWork(database), loc)
	if cfg.CategoriesFile != "" {
		cats, err := config.LoadCategories(cfg.CategoriesFile)
		if err != nil {
			database.Close()
			return nil, err
		}
		store = store.WithSeedCategories(cats)
	}

	observer := service.NewLogUseCaseObserver(logger)
	state := service.NewStateService(store, observer)
	if err := state.Init(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("initializing state: %w", err)
	}

	logger.Debug().Str("db", path).Str("timezone", loc.String()).Msg("state opened")
	return &Core{DB: database, Store: store, State: state, Location: loc, Observer: observer}, nil
}

func (c *Core) Close() error {
	return c.DB.Close()
}
