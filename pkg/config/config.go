package config

import (
	"errors"
	"time"

	flag "github.com/spf13/pflag"
)

type (
	Config struct {
		Gifcast Gifcast
	}
	Gifcast struct {
		Debug      bool
		Tag        string
		Server     Server
		Stream     Stream
		Source     Source
		Monitoring Monitoring
	}
	Server struct {
		Address string
		Https   bool
		Tls     struct {
			Address   string
			Domain    string
			HttpsCert string
			HttpsKey  string
			// Cache is the autocert certificate cache directory.
			Cache string
		}
	}
	Stream struct {
		Interval    time.Duration
		Width       int
		Height      int
		DelayPolicy string
		Colors      int
		Dither      bool
		// Palette selects the color table mode: local (per frame) or
		// auto (global table sampled from the first frame).
		Palette string
	}
	Source struct {
		// Type is one of: clock, solid, dir.
		Type  string
		Color string
		Dir   string
	}
	Monitoring struct {
		Port             int
		URLPrefix        string
		MetricEnabled    bool `fig:"metric_enabled"`
		ProfilingEnabled bool `fig:"profiling_enabled"`
	}
)

func (m *Monitoring) IsEnabled() bool { return m.MetricEnabled || m.ProfilingEnabled }

// allows custom config path
var configPath string

func NewConfig() (conf Config) {
	if err := LoadConfig(&conf, configPath); err != nil {
		panic(err)
	}
	return
}

// ParseFlags updates config values from passed runtime flags.
// Define own flags with default value set to the current config param.
// Don't forget to call flag.Parse().
func (c *Config) ParseFlags() {
	g := &c.Gifcast
	flag.BoolVar(&g.Debug, "debug", g.Debug, "Enable debug logging")
	flag.StringVar(&g.Server.Address, "address", g.Server.Address, "HTTP server address")
	flag.DurationVar(&g.Stream.Interval, "interval", g.Stream.Interval, "Frame interval")
	flag.IntVar(&g.Stream.Width, "width", g.Stream.Width, "Stream width in pixels")
	flag.IntVar(&g.Stream.Height, "height", g.Stream.Height, "Stream height in pixels")
	flag.StringVar(&g.Source.Type, "source", g.Source.Type, "Frame source: [clock, solid, dir]")
	flag.StringVar(&g.Source.Dir, "dir", g.Source.Dir, "Watched image directory for the dir source")
	flag.IntVar(&g.Monitoring.Port, "monitoring.port", g.Monitoring.Port, "Monitoring server port")
	flag.StringVarP(&configPath, "conf", "c", configPath, "Set custom configuration file path")
	flag.Parse()
}

var errInvalidStream = errors.New("config: invalid stream parameters")

// Validate catches values the stream layer would reject anyway, but
// earlier and with the config name attached.
func (c *Config) Validate() error {
	s := c.Gifcast.Stream
	if s.Interval <= 0 || s.Width <= 0 || s.Height <= 0 {
		return errInvalidStream
	}
	return nil
}
