package isoeditor

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

const (
	// systemAreaSize is the size of the ISO 9660 system area, the first 16
	// sectors of the image, which the spec leaves for system use.
	systemAreaSize = int64(32768)

	ignitionHeaderKey = "coreiso+"
)

// OffsetInfo is the embed area descriptor the ISO build process writes into
// the last bytes of the system area.
type OffsetInfo struct {
	Key    [8]byte
	Offset uint64
	Length uint64
}

// EmbedArea is the byte range reserved in a live ISO for a compressed
// ignition archive.
type EmbedArea struct {
	Offset int64
	Length int64
}

// ResolveEmbedArea reads the embed area descriptor from the end of the
// system area and validates it against the image size. The image is only
// read, never written.
func ResolveEmbedArea(image io.ReadSeeker) (EmbedArea, error) {
	headerSize := int64(binary.Size(OffsetInfo{}))
	if _, err := image.Seek(systemAreaSize-headerSize, io.SeekStart); err != nil {
		return EmbedArea{}, errors.Wrap(err, "failed to seek to embed area descriptor")
	}

	var info OffsetInfo
	if err := binary.Read(image, binary.LittleEndian, &info); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return EmbedArea{}, ErrShortImage
		}
		return EmbedArea{}, errors.Wrap(err, "failed to read embed area descriptor")
	}

	if string(info.Key[:]) != ignitionHeaderKey {
		return EmbedArea{}, ErrUnrecognizedImage
	}

	imageSize, err := image.Seek(0, io.SeekEnd)
	if err != nil {
		return EmbedArea{}, errors.Wrap(err, "failed to determine image size")
	}
	end := info.Offset + info.Length
	if end < info.Offset || end > uint64(imageSize) {
		return EmbedArea{}, ErrInvalidImage
	}

	return EmbedArea{Offset: int64(info.Offset), Length: int64(info.Length)}, nil
}
