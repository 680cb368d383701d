package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gilbertbrandow/http-server/app/types"
)

const (
	// MaxRequestBytes bounds the single read a connection worker issues.
	MaxRequestBytes = 30000
	// MaxBodyBytes bounds the request body; exceeding it is a parse
	// failure, never a silent truncation.
	MaxBodyBytes = 3000

	maxPathBytes        = 99
	maxVersionBytes     = 9
	maxHeaderValueBytes = 199
)

var (
	ErrEmptyRequest  = errors.New("empty request")
	ErrUnknownMethod = errors.New("unknown method token")
	ErrBodyTooLarge  = errors.New("body exceeds maximum size")
	ErrBadPath       = errors.New("invalid request path")
)

// parseRequest turns a raw request buffer into a Request. Any error is
// fatal for the connection: the worker drops it without responding.
//
// Only the first whitespace-delimited token after a header colon is
// captured, capped at maxHeaderValueBytes; values containing spaces are
// truncated. Unknown header keys are skipped.
func parseRequest(buf []byte) (*types.Request, error) {
	if len(buf) == 0 {
		return nil, ErrEmptyRequest
	}
	if len(buf) > MaxRequestBytes {
		return nil, fmt.Errorf("request of %d bytes exceeds maximum %d", len(buf), MaxRequestBytes)
	}

	lines := strings.Split(string(buf), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	req := &types.Request{}
	if err := parseRequestLine(lines[0], req); err != nil {
		return nil, err
	}

	i := 1
	for ; i < len(lines); i++ {
		if lines[i] == "" {
			i++
			break
		}
		parseHeaderLine(lines[i], &req.Headers)
	}

	if i < len(lines) {
		body := strings.Join(lines[i:], "\n")
		if len(body) > MaxBodyBytes {
			return nil, fmt.Errorf("%w: %d > %d", ErrBodyTooLarge, len(body), MaxBodyBytes)
		}
		if body != "" {
			req.Body = []byte(body)
		}
	}

	return req, nil
}

func parseRequestLine(line string, req *types.Request) error {
	tokens := strings.Fields(line)
	if len(tokens) != 3 {
		return fmt.Errorf("malformed request line %q", line)
	}

	method, ok := types.MethodFromToken(tokens[0])
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, tokens[0])
	}
	req.Method = method

	path := tokens[1]
	if len(path) > maxPathBytes || strings.ContainsRune(path, 0) {
		return fmt.Errorf("%w: %q", ErrBadPath, path)
	}
	req.Path = path

	// The version field was scanned with a fixed width; keep the cap.
	version := tokens[2]
	if len(version) > maxVersionBytes {
		version = version[:maxVersionBytes]
	}
	req.Version = version

	return nil
}

// parseHeaderLine captures a recognized `Key: Value` pair into h. Lines
// without a colon and keys outside the recognized set are ignored.
func parseHeaderLine(line string, h *types.Headers) {
	key, rest, found := strings.Cut(line, ":")
	if !found {
		return
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return
	}
	value := fields[0]
	if len(value) > maxHeaderValueBytes {
		value = value[:maxHeaderValueBytes]
	}

	switch key {
	case "Host":
		h.Host = value
	case "Connection":
		h.Connection = value
	case "Cache-Control":
		h.CacheControl = value
	case "User-Agent":
		h.UserAgent = value
	case "Accept":
		h.Accept = value
	case "Accept-Encoding":
		h.AcceptEncoding = value
	case "Accept-Language":
		h.AcceptLanguage = value
	case "Content-Type":
		h.ContentType = value
	case "Referer":
		h.Referer = value
	case "Cookie":
		h.Cookie = value
	case "sec-ch-ua":
		h.SecChUa = value
	case "sec-ch-ua-mobile":
		h.SecChUaMobile = value
	case "sec-ch-ua-platform":
		h.SecChUaPlatform = value
	case "Sec-Fetch-Site":
		h.SecFetchSite = value
	case "Sec-Fetch-Mode":
		h.SecFetchMode = value
	case "Sec-Fetch-Dest":
		h.SecFetchDest = value
	}
}
