package server

import (
	"errors"
	"net"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilbertbrandow/http-server/app/types"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/", "/", true},
		{"/frida", "/frida", true},
		{"/frida", "/frida/", false},
		{"/frida", "/jean", false},
		{"^/public/images/", "/public/images/cat.png", true},
		{"^/public/images/", "/public/images/deep/cat.png", true},
		{"^/public/images/", "/public/images", false},
		{"^/public/images/", "/other/images/cat.png", false},
		{"^/", "/anything", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPattern(tt.pattern, tt.path),
			"pattern %q against %q", tt.pattern, tt.path)
	}
}

func namedRoute(method types.Method, pattern, name string, invoked *[]string, err error) types.Route {
	return types.Route{
		Method:  method,
		Pattern: pattern,
		Action: func(conn net.Conn, req *types.Request) error {
			*invoked = append(*invoked, name)
			return err
		},
	}
}

func TestDispatchFirstMatchWins(t *testing.T) {
	var invoked []string
	routes := []types.Route{
		namedRoute(types.Get, "^/public/images/", "prefix", &invoked, nil),
		namedRoute(types.Get, "/public/images/cat.png", "exact", &invoked, nil),
	}
	s := New("", routes, zerolog.Nop())

	conn := newMockConn("")
	outcome := s.dispatch(conn, &types.Request{Method: types.Get, Path: "/public/images/cat.png"})

	assert.Equal(t, types.OutcomeOK, outcome)
	assert.Equal(t, []string{"prefix"}, invoked)
}

func TestDispatchExactBeforePrefix(t *testing.T) {
	var invoked []string
	routes := []types.Route{
		namedRoute(types.Get, "/public/images/cat.png", "exact", &invoked, nil),
		namedRoute(types.Get, "^/public/images/", "prefix", &invoked, nil),
	}
	s := New("", routes, zerolog.Nop())

	outcome := s.dispatch(newMockConn(""), &types.Request{Method: types.Get, Path: "/public/images/cat.png"})
	assert.Equal(t, types.OutcomeOK, outcome)
	assert.Equal(t, []string{"exact"}, invoked)

	invoked = nil
	outcome = s.dispatch(newMockConn(""), &types.Request{Method: types.Get, Path: "/public/images/dog.png"})
	assert.Equal(t, types.OutcomeOK, outcome)
	assert.Equal(t, []string{"prefix"}, invoked)
}

func TestDispatchMethodMustMatch(t *testing.T) {
	var invoked []string
	routes := []types.Route{
		namedRoute(types.Post, "/comments", "post", &invoked, nil),
		namedRoute(types.Get, "/comments", "get", &invoked, nil),
	}
	s := New("", routes, zerolog.Nop())

	outcome := s.dispatch(newMockConn(""), &types.Request{Method: types.Get, Path: "/comments"})
	assert.Equal(t, types.OutcomeOK, outcome)
	assert.Equal(t, []string{"get"}, invoked)
}

func TestDispatchUnmatchedRoute(t *testing.T) {
	var invoked []string
	routes := []types.Route{
		namedRoute(types.Get, "/", "index", &invoked, nil),
	}
	s := New("", routes, zerolog.Nop())

	conn := newMockConn("")
	outcome := s.dispatch(conn, &types.Request{Method: types.Get, Path: "/missing"})

	assert.Equal(t, types.OutcomeNotFound, outcome)
	assert.Empty(t, invoked)
	assert.Contains(t, conn.out.String(), "HTTP/1.1 404 Not Found")
}

func TestDispatchHandlerFailure(t *testing.T) {
	var invoked []string
	routes := []types.Route{
		namedRoute(types.Get, "/broken", "broken", &invoked, errors.New("boom")),
	}
	s := New("", routes, zerolog.Nop())

	conn := newMockConn("")
	outcome := s.dispatch(conn, &types.Request{Method: types.Get, Path: "/broken"})

	require.Equal(t, types.OutcomeInternalError, outcome)
	assert.Equal(t, []string{"broken"}, invoked)
	assert.Contains(t, conn.out.String(), "HTTP/1.1 500 Internal Server Error")
}
