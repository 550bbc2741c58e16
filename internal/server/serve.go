package server

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Serve accepts connections on ln until ctx is cancelled, handing each one
// to its own goroutine. In-flight connections are not waited for.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
	})
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				s.log.Warn().Err(err).Msg("accept timed out")
				continue
			}
			return fmt.Errorf("accept: %w", err)
		}

		go s.HandleConn(conn)
	}
}
