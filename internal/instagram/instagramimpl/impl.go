package instagramimpl

import (
	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/insta-archiver/internal/instagram"
	"github.com/orgball2608/insta-archiver/pkg/config"
	"github.com/orgball2608/insta-archiver/pkg/logger"
	"go.uber.org/fx"
)

type InstaImpl struct {
	Client *goinsta.Instagram
	Config *config.Config
	Logger logger.Logger
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) *InstaImpl {
	return &InstaImpl{
		Config: opts.Config,
		Logger: opts.Logger.WithComponent("Instagram"),
	}
}

var _ instagram.Client = (*InstaImpl)(nil)
