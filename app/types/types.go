package types

import "net"

type Method string

const (
	Get     Method = "GET"
	Post    Method = "POST"
	Put     Method = "PUT"
	Delete  Method = "DELETE"
	Patch   Method = "PATCH"
	Head    Method = "HEAD"
	Options Method = "OPTIONS"
	Trace   Method = "TRACE"
	Connect Method = "CONNECT"
)

// MethodFromToken maps a request-line token onto the closed method set.
// Anything outside the set is a fatal parse condition for the connection.
func MethodFromToken(token string) (Method, bool) {
	switch m := Method(token); m {
	case Get, Post, Put, Delete, Patch, Head, Options, Trace, Connect:
		return m, true
	}
	return "", false
}

// Headers holds the fixed set of recognized request headers. Keys outside
// this set are ignored during parsing, not errors. Keys are matched
// case-sensitively.
type Headers struct {
	Host            string
	Connection      string
	CacheControl    string
	UserAgent       string
	Accept          string
	AcceptEncoding  string
	AcceptLanguage  string
	ContentType     string
	Referer         string
	Cookie          string
	SecChUa         string
	SecChUaMobile   string
	SecChUaPlatform string
	SecFetchSite    string
	SecFetchMode    string
	SecFetchDest    string
}

// Request is constructed once per connection from the raw bytes and is
// read-only afterwards. It is never shared across connections.
type Request struct {
	Method  Method
	Path    string
	Version string
	Headers Headers
	Body    []byte
}

// Handler writes a response for a matched request directly to the
// connection. A non-nil error signals handler failure to the dispatcher;
// it must not have any effect beyond this request.
type Handler func(conn net.Conn, req *Request) error

// Route binds a method and a URL pattern to a handler. A pattern starting
// with '^' matches any path with the remainder as prefix; every other
// pattern matches exactly. Tables are ordered and immutable after startup:
// the first matching entry wins.
type Route struct {
	Method  Method
	Pattern string
	Action  Handler
}

// Outcome is the terminal state of dispatching one request. The values
// are the numeric equivalents written to the outcome record.
type Outcome int

const (
	OutcomeOK            Outcome = 200
	OutcomeNotFound      Outcome = 404
	OutcomeInternalError Outcome = 500
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not found"
	case OutcomeInternalError:
		return "internal error"
	}
	return "unknown"
}
