package archiverimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/insta-archiver/pkg/errors"
)

// Schedule sets up a scheduler running the pipeline on the configured cron expression.
// A tick that fires while a run is still in progress is skipped.
func (a *ArchiverImpl) Schedule(ctx context.Context) error {
	a.Logger.Info("Setting up archive scheduler", "cron", a.Config.Schedule.Cron)

	if a.Scheduler == nil {
		loc, err := time.LoadLocation(a.Config.Schedule.Timezone)
		if err != nil {
			loc = time.Local
			a.Logger.Warn("Failed to load schedule timezone, using local timezone",
				"timezone", a.Config.Schedule.Timezone, "error", err)
		}

		scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
		if err != nil {
			return fmt.Errorf("failed to create archive scheduler: %w", err)
		}
		a.Scheduler = scheduler
	}

	_, err := a.Scheduler.NewJob(
		gocron.CronJob(
			a.Config.Schedule.Cron,
			false, // Don't use seconds precision
		),
		gocron.NewTask(func() {
			a.runScheduled(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("archive"),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule archive runs: %w", err)
	}

	a.Scheduler.Start()
	return nil
}

func (a *ArchiverImpl) runScheduled(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	a.Logger.Info("Running scheduled archive")
	if _, err := a.Run(ctx); err != nil {
		if errors.IsRunInProgress(err) {
			a.Logger.Info("Previous run still in progress, skipping tick")
			return
		}
		if errors.GetCode(err) == errors.CodeInterrupted {
			a.Logger.Warn("Scheduled archive run interrupted", "error", err)
			return
		}
		a.Logger.Error("Scheduled archive run failed", "error", err, "code", errors.GetCode(err))
		a.Telegram.SendMessageToUser("Scheduled archive run failed: " + err.Error())
	}
}

func (a *ArchiverImpl) StopSchedule() error {
	if a.Scheduler == nil {
		return nil
	}
	return a.Scheduler.Shutdown()
}
