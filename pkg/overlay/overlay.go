package overlay

import (
	"io"

	"github.com/pkg/errors"
)

// Overlay substitutes a range of a base stream with alternate content.
type Overlay struct {
	Reader io.ReadSeeker
	Offset int64
	Length int64
}

type patchedReader struct {
	base  io.ReadSeeker
	patch Overlay

	size int64
	pos  int64
}

// NewOverlayReader returns a ReadSeeker over base with the overlay range
// read from the overlay's reader instead of the base. The overlay must start
// within the base stream but may extend past its end. Neither reader is
// modified; positions are tracked here and the underlying readers are sought
// on every read.
func NewOverlayReader(base io.ReadSeeker, patch Overlay) (io.ReadSeeker, error) {
	size, err := base.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if patch.Offset < 0 || patch.Offset > size {
		return nil, errors.New("overlay offset is beyond the end of the base stream")
	}
	if end := patch.Offset + patch.Length; end > size {
		size = end
	}

	return &patchedReader{base: base, patch: patch, size: size}, nil
}

func (pr *patchedReader) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = pr.pos + offset
	case io.SeekEnd:
		pos = pr.size + offset
	default:
		return 0, errors.Errorf("unsupported whence %d", whence)
	}
	if pos < 0 {
		return 0, errors.New("seek to a negative position")
	}
	pr.pos = pos
	return pos, nil
}

func (pr *patchedReader) Read(p []byte) (int, error) {
	if pr.pos >= pr.size {
		return 0, io.EOF
	}

	var (
		src   io.ReadSeeker
		from  int64
		limit int64
	)
	patchEnd := pr.patch.Offset + pr.patch.Length
	switch {
	case pr.pos < pr.patch.Offset:
		src, from, limit = pr.base, pr.pos, pr.patch.Offset-pr.pos
	case pr.pos < patchEnd:
		src, from, limit = pr.patch.Reader, pr.pos-pr.patch.Offset, patchEnd-pr.pos
	default:
		src, from, limit = pr.base, pr.pos, pr.size-pr.pos
	}

	if int64(len(p)) > limit {
		p = p[:limit]
	}
	if _, err := src.Seek(from, io.SeekStart); err != nil {
		return 0, err
	}

	n, err := src.Read(p)
	pr.pos += int64(n)
	if err == io.EOF && pr.pos < pr.size {
		// more to read from the next section
		err = nil
	}
	return n, err
}
