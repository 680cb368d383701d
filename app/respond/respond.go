// Package respond writes wire responses: a status line, a Content-Type
// header, a blank line, and the body. The connection is closed by the
// worker afterwards, which is what delimits the body for the client.
package respond

import (
	"bytes"
	"fmt"
	"net"
)

const crlf = "\r\n"

// HTMLPage writes a 200 response carrying an HTML body.
func HTMLPage(conn net.Conn, body []byte) error {
	return write(conn, 200, "OK", "text/html", body)
}

// JSON writes a response with the given status carrying a JSON body.
func JSON(conn net.Conn, status int, phrase string, body string) error {
	return write(conn, status, phrase, "application/json", []byte(body))
}

// Binary writes a 200 response carrying raw bytes under the given
// content type.
func Binary(conn net.Conn, contentType string, data []byte) error {
	return write(conn, 200, "OK", contentType, data)
}

// Redirect writes a 302 pointing the client at url.
func Redirect(conn net.Conn, url string) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "HTTP/1.1 302 Found%sLocation: %s%s%s", crlf, url, crlf, crlf)
	if _, err := conn.Write(b.Bytes()); err != nil {
		return fmt.Errorf("writing redirect: %w", err)
	}
	return nil
}

func NotFound(conn net.Conn) error {
	return write(conn, 404, "Not Found", "text/html", []byte("<html><body><h1>404 Not Found</h1></body></html>"))
}

func InternalError(conn net.Conn) error {
	return write(conn, 500, "Internal Server Error", "text/html", []byte("<html><body><h1>500 Internal Server Error</h1></body></html>"))
}

func write(conn net.Conn, status int, phrase string, contentType string, body []byte) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "HTTP/1.1 %d %s%sContent-Type: %s%s%s", status, phrase, crlf, contentType, crlf, crlf)
	b.Write(body)
	if _, err := conn.Write(b.Bytes()); err != nil {
		return fmt.Errorf("writing %d response: %w", status, err)
	}
	return nil
}
