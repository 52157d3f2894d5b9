// Package caster is the HTTP service: it owns the frame source, spawns a
// session per connection and serves the endless GIF plus its WebSocket
// twin.
package caster

import (
	"context"
	"fmt"
	"image/color"
	"net/http"
	"time"

	"github.com/pixelcast/gifcast/pkg/config"
	"github.com/pixelcast/gifcast/pkg/gif"
	"github.com/pixelcast/gifcast/pkg/logger"
	"github.com/pixelcast/gifcast/pkg/monitoring"
	"github.com/pixelcast/gifcast/pkg/network/httpx"
	"github.com/pixelcast/gifcast/pkg/server"
	"github.com/pixelcast/gifcast/pkg/source"
	"github.com/pixelcast/gifcast/pkg/stream"
)

type Caster struct {
	conf config.Gifcast
	log  *logger.Logger

	src      stream.Source
	watch    *source.DirWatch
	services server.Services

	ctx    context.Context
	cancel context.CancelFunc
}

func New(conf config.Config, log *logger.Logger) (*Caster, error) {
	c := &Caster{conf: conf.Gifcast, log: log}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	if err := c.buildSource(); err != nil {
		return nil, err
	}

	srv, err := httpx.NewServer(
		conf.Gifcast.Server.Address,
		func(*httpx.Server) http.Handler {
			h := http.NewServeMux()
			h.HandleFunc("/", c.handleIndex)
			h.HandleFunc("/live.gif", c.handleLive)
			h.HandleFunc("/ws", c.handleWS)
			return h
		},
		httpx.WithServerConfig(conf.Gifcast.Server),
		httpx.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	c.services.Add(srv)
	c.services.AddIf(conf.Gifcast.Monitoring.IsEnabled(),
		monitoring.New(conf.Gifcast.Monitoring, log))
	return c, nil
}

func (c *Caster) Start() {
	if c.watch != nil {
		go c.watch.Watch(c.ctx)
	}
	c.services.Start()
}

func (c *Caster) Shutdown(ctx context.Context) error {
	c.cancel()
	return c.services.Shutdown(ctx)
}

func (c *Caster) buildSource() error {
	s := c.conf.Stream
	switch c.conf.Source.Type {
	case "", "clock":
		c.src = source.Clock(s.Width, s.Height)
	case "solid":
		col, err := parseColor(c.conf.Source.Color)
		if err != nil {
			return err
		}
		c.src = source.Solid(s.Width, s.Height, col)
	case "dir":
		watch, err := source.NewDirWatch(c.conf.Source.Dir, s.Width, s.Height, c.log)
		if err != nil {
			return fmt.Errorf("caster: dir source: %w", err)
		}
		c.watch = watch
		c.src = watch.Source()
	default:
		return fmt.Errorf("caster: unknown source type %q", c.conf.Source.Type)
	}
	c.src = timed(c.src)
	return nil
}

// streamConfig snapshots the per-session stream parameters.
func (c *Caster) streamConfig() stream.Config {
	s := c.conf.Stream
	return stream.Config{
		Interval: s.Interval,
		Width:    s.Width,
		Height:   s.Height,
		Policy:   stream.DelayPolicy(s.DelayPolicy),
		Source:   c.src,
	}
}

func (c *Caster) muxerOptions() []gif.MuxerOption {
	s := c.conf.Stream
	if s.Palette == "auto" {
		return []gif.MuxerOption{gif.WithAutoPalette(s.Colors)}
	}
	return []gif.MuxerOption{gif.WithCompressor(gif.NewCompressor(s.Width, s.Height,
		gif.WithColors(s.Colors), gif.WithDither(s.Dither)))}
}

// timed wraps a source with the generation duration metric.
func timed(src stream.Source) stream.Source {
	return func(ctx context.Context, state any) ([]byte, error) {
		start := time.Now()
		raw, err := src(ctx, state)
		metFrameGen.Observe(time.Since(start).Seconds())
		return raw, err
	}
}

// parseColor reads a #rrggbb hex triple.
func parseColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("caster: bad color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
