package logger

import (
	"github.com/orgball2608/insta-archiver/pkg/config"
	"go.uber.org/fx"
)

var FxOption = fx.Annotate(
	func(cfg *config.Config) *Impl {
		return New(
			Opts{
				Env:       cfg.App.Env,
				Level:     cfg.App.LogLevel,
				SentryDSN: cfg.App.SentryUrl,
				LogFile:   cfg.App.LogFile,
			},
		)
	},
	fx.As(new(Logger)),
)
