package isoeditor

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrShortImage means the image ends before the embed area descriptor.
	ErrShortImage = errors.New("short image")

	// ErrUnrecognizedImage means the descriptor magic is missing, so the
	// image was not produced by a coreos live ISO build.
	ErrUnrecognizedImage = errors.New("unrecognized image")

	// ErrInvalidImage means the descriptor points outside the image.
	ErrInvalidImage = errors.New("invalid image")

	ErrAlreadyEmbedded  = errors.New("image already has an embedded config; must force to overwrite")
	ErrNoEmbeddedConfig = errors.New("no embedded config")
	ErrShortEmbedRead   = errors.New("couldn't read embedded config")
)

// CapacityError is returned when the compressed ignition archive does not
// fit in the reserved embed area.
type CapacityError struct {
	PayloadLength int64
	AreaLength    int64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("ignition archive length (%d) exceeds embed area size (%d)", e.PayloadLength, e.AreaLength)
}
