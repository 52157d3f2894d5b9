package main

import (
	"context"
	goflag "flag"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/pixelcast/gifcast/pkg/caster"
	"github.com/pixelcast/gifcast/pkg/config"
	"github.com/pixelcast/gifcast/pkg/logger"
	"github.com/pixelcast/gifcast/pkg/os"
)

var Version = "?"

const shutdownTimeout = 5 * time.Second

func main() {
	conf := config.NewConfig()
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	conf.ParseFlags()

	log := logger.NewConsole(conf.Gifcast.Debug, conf.Gifcast.Tag, false)

	log.Info().Msgf("version %s", Version)
	if log.GetLevel() < logger.InfoLevel {
		log.Debug().Msgf("config: %+v", conf)
	}
	if err := conf.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad config")
	}

	lock, err := os.NewFileLock("")
	if err != nil {
		log.Fatal().Err(err).Msg("couldn't create the lock file")
	}
	if err := lock.Lock(); err != nil {
		log.Fatal().Err(err).Msg("another instance is already running")
	}
	defer func() { _ = lock.Unlock() }()

	c, err := caster.New(conf, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init failed")
	}
	c.Start()

	<-os.ExpectTermination()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := c.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("service shutdown errors")
	}
}
