// Package reslock serializes access to shared on-disk resources at
// per-path granularity. Two workers touching different paths never block
// each other; two touching the same path are fully serialized.
package reslock

import (
	"errors"
	"fmt"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
)

// MaxResourcePathBytes bounds the resource identifiers accepted as
// registry keys.
const MaxResourcePathBytes = 255

var (
	ErrUnknownResource = errors.New("release of unknown resource")
	ErrInvalidResource = errors.New("invalid resource path")
)

// Registry maps resource paths to mutexes, created lazily on first
// acquire and kept until teardown. The map guards its own structure, so a
// worker blocked on one resource never stalls lookups of another.
type Registry struct {
	locks *xsync.MapOf[string, *sync.Mutex]
	log   zerolog.Logger
}

func New(log zerolog.Logger) *Registry {
	return &Registry{
		locks: xsync.NewMapOf[string, *sync.Mutex](),
		log:   log,
	}
}

// Acquire locks the mutex for resourcePath, creating it on first use.
// It blocks while another worker holds the same resource. A rejected
// path leaves the registry unchanged and the caller must abort its file
// operation.
func (r *Registry) Acquire(resourcePath string) error {
	if resourcePath == "" || len(resourcePath) > MaxResourcePathBytes {
		return fmt.Errorf("%w: %q", ErrInvalidResource, resourcePath)
	}
	mu, _ := r.locks.LoadOrStore(resourcePath, &sync.Mutex{})
	mu.Lock()
	return nil
}

// Release unlocks the mutex for resourcePath. Releasing a resource that
// was never acquired is reported and leaves the registry untouched.
func (r *Registry) Release(resourcePath string) error {
	mu, ok := r.locks.Load(resourcePath)
	if !ok {
		r.log.Error().Str("resource", resourcePath).Msg("release of unknown resource")
		return fmt.Errorf("%w: %q", ErrUnknownResource, resourcePath)
	}
	mu.Unlock()
	return nil
}

// Teardown empties the registry. Callers guarantee no worker holds or
// waits on any resource lock; it is meant for process shutdown only.
func (r *Registry) Teardown() {
	r.locks.Clear()
}

// Size reports the number of registered resources.
func (r *Registry) Size() int {
	return r.locks.Size()
}
