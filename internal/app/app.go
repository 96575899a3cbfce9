package app

import (
	"context"

	"github.com/orgball2608/insta-archiver/internal/archive"
	"github.com/orgball2608/insta-archiver/internal/archive/archiveimpl"
	"github.com/orgball2608/insta-archiver/internal/archiver"
	"github.com/orgball2608/insta-archiver/internal/archiver/archiverimpl"
	"github.com/orgball2608/insta-archiver/internal/command"
	"github.com/orgball2608/insta-archiver/internal/command/commandimpl"
	"github.com/orgball2608/insta-archiver/internal/document"
	"github.com/orgball2608/insta-archiver/internal/document/documentimpl"
	"github.com/orgball2608/insta-archiver/internal/instagram"
	"github.com/orgball2608/insta-archiver/internal/instagram/instagramimpl"
	"github.com/orgball2608/insta-archiver/internal/media"
	"github.com/orgball2608/insta-archiver/internal/media/mediaimpl"
	"github.com/orgball2608/insta-archiver/internal/remote"
	"github.com/orgball2608/insta-archiver/internal/remote/remoteimpl"
	"github.com/orgball2608/insta-archiver/internal/repositories/run"
	"github.com/orgball2608/insta-archiver/internal/telegram/telegramimpl"
	"github.com/orgball2608/insta-archiver/pkg/config"
	"github.com/orgball2608/insta-archiver/pkg/errors"
	"github.com/orgball2608/insta-archiver/pkg/logger"
	"go.uber.org/fx"
)

// Components provides every component of the archiver.
var Components = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		telegramimpl.NewClient,
	),
	fx.Provide(
		fx.Annotate(
			instagramimpl.New,
			fx.As(new(instagram.Client)),
		), fx.Annotate(
			remoteimpl.New,
			fx.As(new(remote.Source)),
		), fx.Annotate(
			documentimpl.New,
			fx.As(new(document.Store)),
		), fx.Annotate(
			archiveimpl.New,
			fx.As(new(archive.Archive)),
		), fx.Annotate(
			mediaimpl.New,
			fx.As(new(media.Fetcher)),
		), fx.Annotate(
			archiverimpl.New,
			fx.As(new(archiver.Client)),
		), fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
	),
	run.Module,
)

// Module wires the components and starts the given mode.
func Module(mode Mode) fx.Option {
	var start fx.Option
	switch mode {
	case ModeVerify:
		start = fx.Invoke(verifyOnce)
	case ModeSchedule:
		start = fx.Invoke(schedule)
	default:
		start = fx.Invoke(runOnce)
	}

	return fx.Options(Components, start)
}

type oneShotOpts struct {
	fx.In

	LC         fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     logger.Logger
	Archiver   archiver.Client
}

// oneShot runs job in the background once the app has started and shuts the app down
// with the exit code it returns.
func oneShot(opts oneShotOpts, job func(ctx context.Context) int) {
	ctx, cancel := context.WithCancel(context.Background())

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				code := job(ctx)
				if err := opts.Shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					opts.Logger.Error("Failed to shut down", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func runOnce(opts oneShotOpts) {
	oneShot(opts, func(ctx context.Context) int {
		summary, err := opts.Archiver.Run(ctx)
		if err != nil {
			opts.Logger.Error("Archive run failed", "error", err, "code", errors.GetCode(err))
			return ExitFatal
		}
		if summary.Failed > 0 || summary.SkippedDocuments > 0 {
			return ExitProblems
		}
		return ExitOK
	})
}

func verifyOnce(opts oneShotOpts) {
	oneShot(opts, func(ctx context.Context) int {
		report, err := opts.Archiver.Verify(ctx)
		if err != nil {
			opts.Logger.Error("Verification failed", "error", err, "code", errors.GetCode(err))
			return ExitFatal
		}
		for _, fault := range report.Faults {
			opts.Logger.Warn("Integrity fault", "post_id", fault.PostID, "code", fault.Code, "reason", fault.Reason)
		}
		if !report.OK() {
			return ExitProblems
		}
		return ExitOK
	})
}
