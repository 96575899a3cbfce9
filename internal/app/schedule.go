package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/orgball2608/insta-archiver/internal/archiver"
	"github.com/orgball2608/insta-archiver/internal/command"
	"github.com/orgball2608/insta-archiver/internal/remote"
	"github.com/orgball2608/insta-archiver/pkg/config"
	"github.com/orgball2608/insta-archiver/pkg/logger"
	"go.uber.org/fx"
)

type scheduleOpts struct {
	fx.In

	LC       fx.Lifecycle
	Logger   logger.Logger
	Config   *config.Config
	Archiver archiver.Client
	Command  command.Client
	Remote   remote.Source
}

func schedule(opts scheduleOpts) {
	ctx, cancel := context.WithCancel(context.Background())
	server := NewServer(opts.Config, opts.Logger, opts.Archiver, opts.Remote)

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				opts.Logger.Info("Starting server", "addr", server.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					opts.Logger.Error("Server failed", "error", err)
				}
			}()

			if opts.Config.TelegramEnabled() {
				go handleCommands(ctx, opts.Logger, opts.Command)
			}

			return opts.Archiver.Schedule(ctx)
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			if err := opts.Archiver.StopSchedule(); err != nil {
				opts.Logger.Error("Failed to stop scheduler", "error", err)
			}
			return server.Shutdown(stopCtx)
		},
	})
}

// handleCommands restarts the command handler until ctx is done.
func handleCommands(ctx context.Context, log logger.Logger, cmd command.Client) {
	for {
		err := cmd.HandleCommand(ctx)
		if ctx.Err() != nil {
			return
		}
		log.Error("Command handler stopped, restarting", "error", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}
