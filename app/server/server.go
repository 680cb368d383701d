package server

import (
	"context"
	"fmt"
	"net"

	"github.com/rs/zerolog"

	"github.com/gilbertbrandow/http-server/app/types"
)

// Server accepts TCP connections and runs one worker goroutine per
// connection, unbounded. The route table is fixed at construction and
// never mutated while serving.
type Server struct {
	addr   string
	routes []types.Route
	log    zerolog.Logger
}

func New(addr string, routes []types.Route, log zerolog.Logger) *Server {
	return &Server{
		addr:   addr,
		routes: routes,
		log:    log,
	}
}

// Serve listens on the configured address and accepts until ctx is
// cancelled. Cancellation closes the listener only; workers already
// handling a connection run to completion.
func (s *Server) Serve(ctx context.Context) error {
	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}

	go func() {
		<-ctx.Done()
		l.Close()
	}()

	s.log.Info().Str("addr", s.addr).Msg("listening")

	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.log.Info().Msg("listener stopped")
				return nil
			}
			s.log.Error().Err(err).Msg("accepting connection")
			continue
		}
		go s.handleConnection(conn)
	}
}

// handleConnection is the per-connection worker: one bounded read, parse,
// dispatch, outcome record. The connection is closed on every exit path.
// A read or parse failure drops the connection without a response.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, MaxRequestBytes)
	n, err := conn.Read(buf)
	if err != nil {
		s.log.Warn().Err(err).Msg("reading request")
		return
	}

	req, err := parseRequest(buf[:n])
	if err != nil {
		s.log.Warn().Err(err).Msg("dropping unparsable request")
		return
	}

	outcome := s.dispatch(conn, req)

	s.log.Info().
		Str("method", string(req.Method)).
		Str("path", req.Path).
		Int("status", int(outcome)).
		Msg("request handled")
}
