// Package session ties one stream to one consumer for the lifetime of a
// connection. Sessions are independent and share no mutable state.
package session

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gofrs/uuid"

	"github.com/pixelcast/gifcast/pkg/gif"
	"github.com/pixelcast/gifcast/pkg/logger"
	"github.com/pixelcast/gifcast/pkg/stream"
)

type Session struct {
	id  uuid.UUID
	str *stream.Stream
	log *logger.Logger

	// OnChunk, when set, observes every delivered chunk size.
	OnChunk func(n int)
}

func New(conf stream.Config, log *logger.Logger, opts ...gif.MuxerOption) (*Session, error) {
	str, err := stream.New(conf, opts...)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("session: id: %w", err)
	}
	s := &Session{id: id, str: str}
	s.log = log.Extend(log.With().Str("session", s.ID()))
	return s, nil
}

// ID is a short session identifier for logs.
func (s *Session) ID() string { return s.id.String()[:8] }

// Serve runs the stream until ctx is cancelled or it fails, copying
// chunks into w and flushing when the writer supports it. Returns nil on
// clean cancellation, the terminal stream error otherwise.
func (s *Session) Serve(ctx context.Context, w io.Writer) error {
	s.log.Debug().Msg("session started")
	defer s.log.Debug().Msg("session ended")

	go s.str.Run(ctx)

	flusher, _ := w.(http.Flusher)
	for chunk := range s.str.Chunks() {
		if _, err := w.Write(chunk); err != nil {
			// consumer went away, the context cancel stops the stream
			return nil
		}
		if flusher != nil {
			flusher.Flush()
		}
		if s.OnChunk != nil {
			s.OnChunk(len(chunk))
		}
	}
	return s.str.Err()
}

// Stream exposes the underlying stream for transports that frame chunks
// themselves (e.g. WebSocket messages) and drive Run on their own.
func (s *Session) Stream() *stream.Stream { return s.str }

// Log returns the session-scoped logger.
func (s *Session) Log() *logger.Logger { return s.log }
