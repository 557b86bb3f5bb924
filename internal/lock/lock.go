// Package lock serializes mutating operations per directory across processes.
package lock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const retryDelay = 50 * time.Millisecond

// Locker hands out exclusive file locks keyed by directory.
type Locker struct {
	dir string
}

// New returns a Locker that keeps its lock files in dir.
func New(dir string) *Locker {
	return &Locker{dir: dir}
}

// Lock is a held directory lock.
type Lock struct {
	target string
	flock  *flock.Flock
}

// Acquire blocks until target is locked or ctx is done.
// target is made absolute so that different spellings of a path share one lock.
func (l *Locker) Acquire(ctx context.Context, target string) (*Lock, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("resolve lock target %s: %w", target, err)
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir %s: %w", l.dir, err)
	}

	fl := flock.New(l.PathFor(abs))
	ok, err := fl.TryLockContext(ctx, retryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire lock for %s: %w", abs, err)
	}
	if !ok {
		return nil, fmt.Errorf("acquire lock for %s: %w", abs, ctx.Err())
	}
	return &Lock{target: abs, flock: fl}, nil
}

// PathFor returns the lock file used for an absolute directory path.
func (l *Locker) PathFor(abs string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(l.dir, hex.EncodeToString(sum[:8])+".lock")
}

// Target returns the directory this lock guards.
func (k *Lock) Target() string {
	return k.target
}

// Release unlocks. It is safe to call more than once.
func (k *Lock) Release() error {
	if k == nil || k.flock == nil {
		return nil
	}
	return k.flock.Unlock()
}
