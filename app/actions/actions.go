// Package actions holds the route handlers of the gallery site: static
// HTML pages, images served by prefix, and the comment endpoint that
// appends to a shared file.
package actions

import (
	"encoding/json"
	"net"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gilbertbrandow/http-server/app/reslock"
	"github.com/gilbertbrandow/http-server/app/respond"
	"github.com/gilbertbrandow/http-server/app/types"
)

const repositoryURL = "https://github.com/gilbertbrandow/http-server"

// Gallery serves files from root. Every file it touches goes through the
// lock registry, keyed by the path relative to root.
type Gallery struct {
	root  string
	locks *reslock.Registry
	log   zerolog.Logger
}

func New(root string, locks *reslock.Registry, log zerolog.Logger) *Gallery {
	return &Gallery{
		root:  root,
		locks: locks,
		log:   log,
	}
}

func (g *Gallery) IndexPage(conn net.Conn, req *types.Request) error {
	return g.htmlPage(conn, "public/html/index.html")
}

func (g *Gallery) FridaPage(conn net.Conn, req *types.Request) error {
	return g.htmlPage(conn, "public/html/frida.html")
}

func (g *Gallery) JeanPage(conn net.Conn, req *types.Request) error {
	return g.htmlPage(conn, "public/html/jean.html")
}

func (g *Gallery) VincentPage(conn net.Conn, req *types.Request) error {
	return g.htmlPage(conn, "public/html/vincent.html")
}

func (g *Gallery) Favicon(conn net.Conn, req *types.Request) error {
	data, err := g.readBinaryFile("public/images/c-32x32.png")
	if err != nil {
		return err
	}
	return respond.Binary(conn, "image/x-icon", data)
}

// Image serves any file under the ^/public/images/ prefix route. The
// request path doubles as the file path relative to the site root.
func (g *Gallery) Image(conn net.Conn, req *types.Request) error {
	data, err := g.readBinaryFile(strings.TrimPrefix(req.Path, "/"))
	if err != nil {
		return err
	}
	return respond.Binary(conn, "image", data)
}

// Repository redirects to the project sources.
func (g *Gallery) Repository(conn net.Conn, req *types.Request) error {
	return respond.Redirect(conn, repositoryURL)
}

type comment struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

// CreateComment appends a comment from a JSON body to data/comments.txt
// under the resource lock. Client mistakes (wrong media type, missing
// fields) are answered with JSON errors and are not handler failures.
func (g *Gallery) CreateComment(conn net.Conn, req *types.Request) error {
	if req.Headers.ContentType != "application/json" {
		return respond.JSON(conn, 415, "Unsupported Media Type",
			`{"status": "error", "message": "Unsupported Media Type"}`)
	}

	var c comment
	if err := json.Unmarshal(req.Body, &c); err != nil || c.Name == "" || c.Comment == "" {
		return respond.JSON(conn, 400, "Bad Request",
			`{"status": "error", "message": "Bad Request: 'name' and 'comment' cannot be empty"}`)
	}

	if err := g.saveComment(c.Name, c.Comment); err != nil {
		return err
	}

	return respond.JSON(conn, 201, "Created",
		`{"status": "success", "message": "Comment created"}`)
}

func (g *Gallery) htmlPage(conn net.Conn, filename string) error {
	body, err := g.readHTMLFile(filename)
	if err != nil {
		return err
	}
	return respond.HTMLPage(conn, body)
}
