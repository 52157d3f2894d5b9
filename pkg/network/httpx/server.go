package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/pixelcast/gifcast/pkg/logger"
)

type Server struct {
	http.Server

	autoCert *TLS
	opts     Options

	listener *Listener
	log      *logger.Logger
}

// NewServer builds a server around the handler the callback returns.
// The listener is bound immediately so the effective address (after a
// possible port roll) is known before Run.
func NewServer(address string, handler func(*Server) http.Handler, options ...Option) (*Server, error) {
	opts := &Options{
		IdleTimeout: 120 * time.Second,
		ReadTimeout: 30 * time.Second,
	}
	opts.override(options...)

	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}

	server := &Server{
		Server: http.Server{
			Addr:        address,
			IdleTimeout: opts.IdleTimeout,
			ReadTimeout: opts.ReadTimeout,
		},
		opts: *opts,
		log:  opts.Logger,
	}
	server.Handler = handler(server)

	if opts.Https && opts.IsAutoHttpsCert() {
		server.autoCert = NewTLSConfig(opts.HttpsDomain, opts.HttpsCacheDir)
		server.TLSConfig = server.autoCert.CertManager.TLSConfig()
	}

	addr := server.Addr
	if addr == "" {
		addr = ":http"
		if opts.Https {
			addr = ":https"
		}
	}
	listener, err := NewListener(addr, opts.PortRoll)
	if err != nil {
		return nil, err
	}
	server.listener = listener
	server.Addr = mergeAddresses(server.Addr, listener)

	return server, nil
}

func (s *Server) Run() {
	protocol := s.GetProtocol()
	s.log.Info().Msgf("starting %s server on %s", protocol, s.Addr)

	var err error
	if s.opts.Https {
		err = s.ServeTLS(s.listener, s.opts.HttpsCert, s.opts.HttpsKey)
	} else {
		err = s.Serve(s.listener)
	}
	if err != nil && err != http.ErrServerClosed {
		s.log.Error().Err(err).Msgf("%s server failed", protocol)
	}
}

func (s *Server) Shutdown(ctx context.Context) error { return s.Server.Shutdown(ctx) }

func (s *Server) GetProtocol() string {
	if s.opts.Https {
		return "https"
	}
	return "http"
}
