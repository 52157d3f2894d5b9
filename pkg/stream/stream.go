// Package stream paces frame production and bridges the resulting GIF
// chunks to a consumer as a lazy, cancellable sequence.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pixelcast/gifcast/pkg/gif"
)

// Source produces one raw RGBA frame per call. The state value is the
// opaque context the stream was configured with; it is passed back on
// every invocation. Sources are never called concurrently with
// themselves and should observe ctx for prompt cancellation.
type Source func(ctx context.Context, state any) ([]byte, error)

// DelayPolicy selects what the per-frame delay field encodes.
type DelayPolicy string

const (
	// DelayMeasured encodes the measured wall-clock gap since the
	// previous frame, so playback stays truthful when generation
	// overruns the interval.
	DelayMeasured DelayPolicy = "measured"
	// DelayNominal always encodes the configured interval.
	DelayNominal DelayPolicy = "nominal"
)

// Config fixes a stream's parameters for its whole lifetime. Width and
// height bind the logical screen descriptor, which is written once.
type Config struct {
	Interval time.Duration
	Width    int
	Height   int
	Policy   DelayPolicy
	// State is handed to the source on every call.
	State  any
	Source Source
}

func (c *Config) validate() error {
	if c.Interval <= 0 {
		return errors.New("stream: interval must be positive")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("stream: dimensions must be positive")
	}
	if c.Source == nil {
		return errors.New("stream: no frame source")
	}
	return nil
}

// Stream is a single-consumer, non-restartable sequence of GIF chunks.
// Run drives it; Chunks yields the output; after Chunks closes, Err
// reports the terminal failure, if any.
type Stream struct {
	conf Config
	mux  *gif.Muxer

	// single-slot handoff to the consumer, bounds the backlog to one
	// undelivered chunk
	out  chan []byte
	err  error
	done chan struct{}
}

// New validates the config and prepares a stream. Muxer options pick the
// palette mode and frame encoding knobs.
func New(conf Config, opts ...gif.MuxerOption) (*Stream, error) {
	if err := conf.validate(); err != nil {
		return nil, err
	}
	if conf.Policy == "" {
		conf.Policy = DelayMeasured
	}
	return &Stream{
		conf: conf,
		mux:  gif.NewMuxer(conf.Width, conf.Height, opts...),
		out:  make(chan []byte, 1),
		done: make(chan struct{}),
	}, nil
}

// Chunks returns the output sequence. It is closed when the stream ends.
func (s *Stream) Chunks() <-chan []byte { return s.out }

// Err reports the terminal error once Chunks has been closed.
// Cancellation is a clean stop, not an error.
func (s *Stream) Err() error {
	<-s.done
	return s.err
}

// Run ticks at the configured interval, pulls a frame from the source,
// muxes it and hands the chunk to the consumer. It blocks until ctx is
// cancelled or a failure ends the stream. Frames are produced strictly
// one at a time: a generation call that overruns the interval defers the
// next tick instead of overlapping it.
func (s *Stream) Run(ctx context.Context) {
	defer close(s.done)
	defer close(s.out)

	ticker := time.NewTicker(s.conf.Interval)
	defer ticker.Stop()

	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		// the select above may pick a pending tick over cancellation
		if ctx.Err() != nil {
			return
		}

		raw, err := s.conf.Source(ctx, s.conf.State)
		if err != nil {
			if ctx.Err() == nil {
				s.err = fmt.Errorf("stream: frame source: %w", err)
			}
			return
		}

		delay := s.conf.Interval
		now := time.Now()
		if s.conf.Policy == DelayMeasured && !last.IsZero() {
			delay = now.Sub(last)
		}
		last = now

		chunk, err := s.mux.NextChunk(raw, delay)
		if err != nil {
			s.err = fmt.Errorf("stream: mux: %w", err)
			return
		}

		select {
		case s.out <- chunk:
		case <-ctx.Done():
			// undelivered chunk is discarded
			return
		}
	}
}

// Copy drains the stream into w, flushing after every chunk when the
// writer supports it. It returns the stream's terminal error, a write
// error, or nil on clean cancellation.
func (s *Stream) Copy(w io.Writer) error {
	flusher, _ := w.(http.Flusher)
	for chunk := range s.Chunks() {
		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("stream: write: %w", err)
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
	return s.Err()
}
