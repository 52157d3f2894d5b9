package httpx

import (
	"time"

	"github.com/pixelcast/gifcast/pkg/config"
	"github.com/pixelcast/gifcast/pkg/logger"
)

type (
	Options struct {
		Https         bool
		HttpsCert     string
		HttpsKey      string
		HttpsDomain   string
		HttpsCacheDir string
		PortRoll      bool
		IdleTimeout   time.Duration
		ReadTimeout   time.Duration
		// WriteTimeout stays zero: an endless response body must be
		// allowed to outlive any fixed deadline.
		WriteTimeout time.Duration
		Logger       *logger.Logger
	}
	Option func(*Options)
)

func (o *Options) override(options ...Option) {
	for _, opt := range options {
		opt(o)
	}
}

func (o *Options) IsAutoHttpsCert() bool { return !(o.HttpsCert != "" && o.HttpsKey != "") }

func WithPortRoll(roll bool) Option { return func(opts *Options) { opts.PortRoll = roll } }

func WithLogger(log *logger.Logger) Option { return func(opts *Options) { opts.Logger = log } }

func WithServerConfig(conf config.Server) Option {
	return func(opts *Options) {
		opts.Https = conf.Https
		opts.HttpsCert = conf.Tls.HttpsCert
		opts.HttpsKey = conf.Tls.HttpsKey
		opts.HttpsDomain = conf.Tls.Domain
		opts.HttpsCacheDir = conf.Tls.Cache
	}
}
