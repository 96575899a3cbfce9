package archiverimpl

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/insta-archiver/internal/archive"
	"github.com/orgball2608/insta-archiver/internal/archiver"
	"github.com/orgball2608/insta-archiver/internal/domain"
	"github.com/orgball2608/insta-archiver/internal/media"
	"github.com/orgball2608/insta-archiver/internal/remote"
	"github.com/orgball2608/insta-archiver/internal/repositories/run"
	"github.com/orgball2608/insta-archiver/internal/telegram"
	"github.com/orgball2608/insta-archiver/pkg/config"
	"github.com/orgball2608/insta-archiver/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Remote   remote.Source
	Archive  archive.Archive
	Fetcher  media.Fetcher
	Runs     run.Repository
	Telegram telegram.Client
}

type ArchiverImpl struct {
	Config   *config.Config
	Logger   logger.Logger
	Remote   remote.Source
	Archive  archive.Archive
	Fetcher  media.Fetcher
	Runs     run.Repository
	Telegram telegram.Client

	// now is the clock used for archive dates and run timestamps.
	now func() time.Time

	running sync.Mutex

	lastMu  sync.RWMutex
	lastRun *domain.RunSummary

	Scheduler gocron.Scheduler
}

func New(opts Opts) *ArchiverImpl {
	return &ArchiverImpl{
		Config:   opts.Config,
		Logger:   opts.Logger.WithComponent("Archiver"),
		Remote:   opts.Remote,
		Archive:  opts.Archive,
		Fetcher:  opts.Fetcher,
		Runs:     opts.Runs,
		Telegram: opts.Telegram,
		now:      time.Now,
	}
}

var _ archiver.Client = (*ArchiverImpl)(nil)
