package server

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/goriiin/go-notes/internal/domain"
	"github.com/goriiin/go-notes/internal/errs"
	"github.com/goriiin/go-notes/internal/journal"
	"github.com/goriiin/go-notes/internal/protocol"
)

const journalTimeout = 5 * time.Second

// HandleConn serves exactly one request on conn and closes it. A request
// that cannot be parsed gets no response.
func (s *Server) HandleConn(conn net.Conn) {
	id := uuid.New()
	log := s.log.With().Str("conn", id.String()).Str("remote", conn.RemoteAddr().String()).Logger()

	defer func(conn net.Conn) {
		if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Debug().Err(err).Msg("close failed")
		}
	}(conn)

	var src io.Reader = conn
	var raw *bytes.Buffer
	if s.journal != nil {
		raw = &bytes.Buffer{}
		src = io.TeeReader(conn, raw)
	}

	reader := protocol.NewReader(bufio.NewReader(src))
	reader.MaxBodyBytes = s.maxBodyBytes

	receivedAt := time.Now()
	req, err := reader.ReadRequest()
	if err != nil {
		if errors.Is(err, errs.UnexpectedEOF) {
			log.Debug().Err(err).Msg("client went away")
		} else {
			log.Warn().Err(err).Msg("failed to read request")
		}
		return
	}

	resp := s.dispatcher.Dispatch(req)
	log.Info().
		Str("method", req.RawMethod).
		Str("path", req.Path).
		Int("status", int(resp.Status)).
		Int("bytes", len(resp.Body)).
		Dur("took", time.Since(receivedAt)).
		Msg("handled")

	if err = protocol.WriteResponse(conn, resp); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}

	if s.journal != nil {
		s.record(id, conn, req, resp, raw.Bytes(), receivedAt)
	}
}

func (s *Server) record(id uuid.UUID, conn net.Conn, req *domain.Request, resp *domain.Response, raw []byte, at time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()

	e := journal.Entry{
		ID:         id.String(),
		RemoteAddr: conn.RemoteAddr().String(),
		Method:     req.RawMethod,
		Path:       req.Path,
		Status:     int(resp.Status),
		RawRequest: string(raw),
		ReceivedAt: uint64(at.Unix()),
	}
	if err := s.journal.Record(ctx, e); err != nil {
		s.log.Warn().Err(err).Str("conn", e.ID).Msg("journal record failed")
	}
}
