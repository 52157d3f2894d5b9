package caster

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/pixelcast/gifcast/pkg/session"
	"github.com/pixelcast/gifcast/pkg/stream"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	WriteBufferPool: &sync.Pool{},
	CheckOrigin:     func(*http.Request) bool { return true },
}

const indexPage = `<!doctype html>
<html>
<head><title>gifcast</title></head>
<body style="margin:0;background:#111;display:grid;place-items:center;height:100vh">
<img src="/live.gif" alt="live">
</body>
</html>
`

func (c *Caster) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

// handleLive streams an endless GIF into the response body. The response
// has no length and no end; the client disconnecting is what terminates
// it.
func (c *Caster) handleLive(w http.ResponseWriter, r *http.Request) {
	s, err := session.New(c.streamConfig(), c.log, c.muxerOptions()...)
	if err != nil {
		c.log.Error().Err(err).Msg("couldn't open a session")
		http.Error(w, "stream unavailable", http.StatusInternalServerError)
		return
	}
	for _, h := range stream.Headers {
		w.Header().Add(h[0], h[1])
	}
	s.OnChunk = func(n int) {
		metFrames.Inc()
		metBytes.Add(float64(n))
	}

	metActiveSessions.Inc()
	defer metActiveSessions.Dec()

	if err := s.Serve(r.Context(), w); err != nil {
		metStreamErrors.Inc()
		s.Log().Error().Err(err).Msg("stream ended with an error")
	}
}

// handleWS delivers the same chunk sequence as binary WebSocket
// messages: first the preamble-carrying chunk, then one message per
// frame block.
func (c *Caster) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.log.Error().Err(err).Msg("ws upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	s, err := session.New(c.streamConfig(), c.log, c.muxerOptions()...)
	if err != nil {
		c.log.Error().Err(err).Msg("couldn't open a session")
		return
	}

	metActiveSessions.Inc()
	defer metActiveSessions.Dec()

	// a hijacked connection outlives the request context, so client
	// disconnect is observed through the read pump instead
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	str := s.Stream()
	go str.Run(ctx)
	for chunk := range str.Chunks() {
		if err := conn.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
			cancel()
			break
		}
		metFrames.Inc()
		metBytes.Add(float64(len(chunk)))
	}
	if err := str.Err(); err != nil {
		metStreamErrors.Inc()
		s.Log().Error().Err(err).Msg("ws stream ended with an error")
		msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "stream error")
		_ = conn.WriteMessage(websocket.CloseMessage, msg)
	}
}
