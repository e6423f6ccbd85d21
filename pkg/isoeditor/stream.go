package isoeditor

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/tuan-hoang1/coreos-installer/pkg/overlay"
)

// NewIgnitionStreamReader returns a reader over the full image with the
// packed ignition config spliced into the embed area. The source image is
// never written, so this is an alternative to Embed when the result is
// streamed somewhere else instead of patched in place.
func NewIgnitionStreamReader(image io.ReadSeeker, content *IgnitionContent) (io.ReadSeeker, error) {
	area, err := ResolveEmbedArea(image)
	if err != nil {
		return nil, err
	}

	payload, err := NewArchiver().Pack(ignitionFileName, content.Config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to archive ignition config")
	}
	if int64(len(payload)) > area.Length {
		return nil, &CapacityError{PayloadLength: int64(len(payload)), AreaLength: area.Length}
	}

	// pad so the overlay replaces the whole area, same as Embed's zero-fill
	padded := make([]byte, area.Length)
	copy(padded, payload)

	reader, err := overlay.NewOverlayReader(image, overlay.Overlay{
		Reader: bytes.NewReader(padded),
		Offset: area.Offset,
		Length: area.Length,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create overlay reader")
	}
	return reader, nil
}
