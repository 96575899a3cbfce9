package archiver

import (
	"context"

	"github.com/orgball2608/insta-archiver/internal/domain"
)

// Client runs the archive pipeline. Runs never overlap: a call made while another
// run or verification is in progress fails with errors.ErrRunInProgress.
//
//go:generate go run go.uber.org/mock/mockgen -source=archiver.go -destination=mocks/mock.go
type Client interface {
	// Run archives every remote post missing from the local archive.
	Run(ctx context.Context) (*domain.RunSummary, error)

	// Verify checks the media of every archived post without modifying anything.
	Verify(ctx context.Context) (*domain.VerifyReport, error)

	// LastRun returns the most recent run of this process, or of the ledger when there is none.
	LastRun(ctx context.Context) (*domain.RunSummary, error)

	// Schedule starts periodic runs on the configured cron expression until ctx is done
	// or StopSchedule is called.
	Schedule(ctx context.Context) error
	StopSchedule() error
}
