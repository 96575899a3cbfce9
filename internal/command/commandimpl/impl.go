package commandimpl

import (
	"time"

	"github.com/orgball2608/insta-archiver/internal/archiver"
	"github.com/orgball2608/insta-archiver/internal/command"
	"github.com/orgball2608/insta-archiver/internal/ratelimit"
	"github.com/orgball2608/insta-archiver/internal/telegram"
	"github.com/orgball2608/insta-archiver/pkg/config"
	"github.com/orgball2608/insta-archiver/pkg/logger"
	"go.uber.org/fx"
)

// One command per chat every 30 seconds, with a small burst.
const (
	commandsPerWindow = 1
	commandWindow     = 30 * time.Second
	commandBurst      = 3
)

type Opts struct {
	fx.In

	Archiver archiver.Client
	Telegram telegram.Client
	Logger   logger.Logger
	Config   *config.Config
}

type CommandImpl struct {
	Archiver archiver.Client
	Telegram telegram.Client
	Logger   logger.Logger
	Config   *config.Config
	Limiter  ratelimit.Limiter
}

func New(opts Opts) *CommandImpl {
	return &CommandImpl{
		Archiver: opts.Archiver,
		Telegram: opts.Telegram,
		Logger:   opts.Logger.WithComponent("Command"),
		Config:   opts.Config,
		Limiter:  ratelimit.NewInMemoryLimiter(commandsPerWindow, commandWindow, commandBurst),
	}
}

var _ command.Client = (*CommandImpl)(nil)
