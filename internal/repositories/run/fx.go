package run

import (
	"context"

	"github.com/orgball2608/insta-archiver/internal/db"
	"github.com/orgball2608/insta-archiver/pkg/config"
	"github.com/orgball2608/insta-archiver/pkg/logger"
	pgxpkg "github.com/orgball2608/insta-archiver/pkg/pgx"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Config *config.Config
	Logger logger.Logger
}

// New selects the ledger backend configured by LEDGER_BACKEND.
func New(opts Opts) (Repository, error) {
	switch opts.Config.Ledger.Backend {
	case config.LedgerNone:
		return Nop{}, nil

	case config.LedgerPostgres:
		if err := db.Migrate(opts.Config); err != nil {
			return nil, err
		}
		pool, err := pgxpkg.New(pgxpkg.Opts{LC: opts.LC, Logger: opts.Logger, Config: opts.Config})
		if err != nil {
			return nil, err
		}
		return NewPgx(pool, opts.Logger), nil

	default:
		repo, err := NewBadger(opts.Config.Ledger.Path, opts.Logger)
		if err != nil {
			return nil, err
		}
		opts.LC.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return repo.Close()
			},
		})
		return repo, nil
	}
}

var Module = fx.Module("run_repository",
	fx.Provide(New),
)
