package server

import (
	"net"
	"strings"

	"github.com/gilbertbrandow/http-server/app/respond"
	"github.com/gilbertbrandow/http-server/app/types"
)

// PrefixSentinel marks a route pattern as a prefix match. The sentinel is
// not part of the compared content.
const PrefixSentinel = "^"

// dispatch walks the route table in order and invokes the first entry
// whose method and pattern match the request. Handler failure is reported
// as an internal-error outcome and never propagates past this request; an
// unmatched request gets a not-found response.
func (s *Server) dispatch(conn net.Conn, req *types.Request) types.Outcome {
	for _, route := range s.routes {
		if route.Method != req.Method || !matchPattern(route.Pattern, req.Path) {
			continue
		}

		if err := route.Action(conn, req); err != nil {
			s.log.Error().
				Err(err).
				Str("pattern", route.Pattern).
				Str("path", req.Path).
				Msg("handler failed")
			if werr := respond.InternalError(conn); werr != nil {
				s.log.Error().Err(werr).Msg("writing internal error response")
			}
			return types.OutcomeInternalError
		}
		return types.OutcomeOK
	}

	if err := respond.NotFound(conn); err != nil {
		s.log.Error().Err(err).Msg("writing not found response")
	}
	return types.OutcomeNotFound
}

func matchPattern(pattern, path string) bool {
	if rest, ok := strings.CutPrefix(pattern, PrefixSentinel); ok {
		return strings.HasPrefix(path, rest)
	}
	return pattern == path
}
