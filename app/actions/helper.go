package actions

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const commentsFile = "data/comments.txt"

// openShared opens a file under the site root after acquiring its
// resource lock. The relative path is the lock key, verbatim. Callers
// must pair it with closeShared on the same path.
func (g *Gallery) openShared(path string, flag int, perm os.FileMode) (*os.File, error) {
	if err := g.locks.Acquire(path); err != nil {
		return nil, fmt.Errorf("locking %q: %w", path, err)
	}

	f, err := os.OpenFile(filepath.Join(g.root, path), flag, perm)
	if err != nil {
		if rerr := g.locks.Release(path); rerr != nil {
			g.log.Error().Err(rerr).Str("resource", path).Msg("releasing after failed open")
		}
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	return f, nil
}

func (g *Gallery) closeShared(f *os.File, path string) error {
	cerr := f.Close()
	if err := g.locks.Release(path); err != nil {
		return err
	}
	return cerr
}

// readHTMLFile reads a page under the shared-file lock. Only .html files
// are served as pages.
func (g *Gallery) readHTMLFile(path string) ([]byte, error) {
	if !strings.HasSuffix(path, ".html") || len(path) <= len(".html") {
		return nil, fmt.Errorf("invalid HTML file %q", path)
	}
	return g.readShared(path)
}

func (g *Gallery) readBinaryFile(path string) ([]byte, error) {
	return g.readShared(path)
}

func (g *Gallery) readShared(path string) ([]byte, error) {
	f, err := g.openShared(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}

	content, rerr := io.ReadAll(f)
	if cerr := g.closeShared(f, path); cerr != nil {
		return nil, cerr
	}
	if rerr != nil {
		return nil, fmt.Errorf("reading %q: %w", path, rerr)
	}
	return content, nil
}

// saveComment appends one formatted comment block to the comments file,
// creating it on first write. The resource lock serializes concurrent
// appends so blocks never interleave.
func (g *Gallery) saveComment(name, comment string) error {
	f, err := g.openShared(commentsFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	_, werr := fmt.Fprintf(f,
		"------------------------------\nName: %s\nComment: %s\n------------------------------\n",
		name, comment)
	if cerr := g.closeShared(f, commentsFile); cerr != nil {
		return cerr
	}
	if werr != nil {
		return fmt.Errorf("appending comment: %w", werr)
	}
	return nil
}
