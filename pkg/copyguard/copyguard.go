package copyguard

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Guard tracks a destination copy of an image until the operation that
// needed it completes. While armed, Cleanup removes the destination so a
// failed operation never leaves a partial copy behind under its final name.
// This is not rename-based publishing: the destination exists under its
// final name for the whole operation.
type Guard struct {
	path  string
	armed bool
}

// New returns an armed guard for the destination path.
func New(path string) *Guard {
	return &Guard{path: path, armed: true}
}

// Copy duplicates the source image into dest. The caller operates on dest
// afterwards and calls Finish once the operation has fully completed.
func (g *Guard) Copy(source io.Reader, dest io.Writer) error {
	if _, err := io.Copy(dest, source); err != nil {
		return errors.Wrapf(err, "failed to copy image to %s", g.path)
	}
	return nil
}

// Finish marks the operation as complete, keeping the destination file.
func (g *Guard) Finish() {
	if g == nil {
		return
	}
	g.armed = false
}

// Cleanup removes the destination file unless Finish was called. It is meant
// to be deferred on every exit path and is a no-op on a nil guard, so a
// caller that made no copy needs no separate branch.
func (g *Guard) Cleanup() {
	if g == nil || !g.armed {
		return
	}
	g.armed = false
	if err := os.Remove(g.path); err != nil {
		log.WithError(err).Errorf("Failed to remove incomplete copy %s", g.path)
	}
}
