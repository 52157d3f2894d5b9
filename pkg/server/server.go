package server

import (
	"context"
)

// Service is a long-running part of the daemon.
type Service interface {
	Run()
	Shutdown(ctx context.Context) error
}

type Services []Service

func (svs *Services) Add(services ...Service) *Services {
	for _, s := range services {
		if s != nil {
			*svs = append(*svs, s)
		}
	}
	return svs
}

func (svs *Services) AddIf(check bool, services ...Service) *Services {
	if check {
		svs.Add(services...)
	}
	return svs
}

func (svs *Services) Start() {
	for _, s := range *svs {
		s := s
		go s.Run()
	}
}

func (svs *Services) Shutdown(ctx context.Context) (err error) {
	for _, s := range *svs {
		if e := s.Shutdown(ctx); e != nil {
			err = e
		}
	}
	return
}
