package main

import (
	"context"
	"fmt"
	"os"

	"github.com/orgball2608/insta-archiver/internal/app"
	"github.com/orgball2608/insta-archiver/pkg/logger"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
)

func main() {
	modeFlag := pflag.StringP("mode", "m", string(app.ModeRun), "run (archive once), verify (check archived media) or schedule (run on SCHEDULE_CRON)")
	pflag.Parse()

	mode, err := app.ParseMode(*modeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		pflag.Usage()
		os.Exit(app.ExitFatal)
	}

	log := logger.New(logger.Opts{})

	application := fx.New(
		fx.Logger(log),
		app.Module(mode),
	)

	// Start the application
	if err := application.Start(context.Background()); err != nil {
		log.Error("Failed to start application", "error", err)
		logger.Flush()
		os.Exit(app.ExitFatal)
	}

	// Wait for an interrupt signal, or for a one-shot mode to finish
	signal := <-application.Wait()

	// Gracefully shutdown the application
	if err := application.Stop(context.Background()); err != nil {
		log.Error("Failed to stop application", "error", err)
		logger.Flush()
		os.Exit(app.ExitFatal)
	}

	logger.Flush()
	os.Exit(signal.ExitCode)
}
