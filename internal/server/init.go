package server

import (
	"github.com/rs/zerolog"

	"github.com/goriiin/go-notes/internal/domain"
	"github.com/goriiin/go-notes/internal/journal"
)

type Dispatcher interface {
	Dispatch(req *domain.Request) *domain.Response
}

type Server struct {
	dispatcher   Dispatcher
	journal      journal.Journal
	log          zerolog.Logger
	maxBodyBytes int64
}

type Option func(*Server)

// WithJournal records every answered request. A nil journal disables it.
func WithJournal(j journal.Journal) Option {
	return func(s *Server) { s.journal = j }
}

func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) { s.maxBodyBytes = n }
}

func New(d Dispatcher, log zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		dispatcher: d,
		log:        log,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}
