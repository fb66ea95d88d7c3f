package sandbox

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// buildLock serializes docker builds of one image tag across goroutines and
// processes sharing a work dir.
type buildLock struct {
	flock *flock.Flock
	path  string
}

func newBuildLock(root, image string) *buildLock {
	path := filepath.Join(root, "."+lockName(image)+".lock")
	return &buildLock{flock: flock.New(path), path: path}
}

func (l *buildLock) Lock() error {
	if err := l.flock.Lock(); err != nil {
		return fmt.Errorf("acquiring build lock %s: %w", l.path, err)
	}
	return nil
}

func (l *buildLock) Unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("releasing build lock %s: %w", l.path, err)
	}
	return nil
}

// lockName maps an image reference to a file-name-safe string.
func lockName(image string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, image)
}
