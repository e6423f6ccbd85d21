package isoeditor

import (
	"io"

	"github.com/pkg/errors"
)

// Editor performs the embed area operations against a single image handle.
// The handle is assumed to be exclusively held for the editor's lifetime.
type Editor interface {
	Embed(content *IgnitionContent, force bool) error
	Show(out io.Writer) error
	Remove() error
}

type ignitionEditor struct {
	image    io.ReadWriteSeeker
	archiver Archiver
}

func NewEditor(image io.ReadWriteSeeker, archiver Archiver) Editor {
	return &ignitionEditor{image: image, archiver: archiver}
}

// Embed packs the config and writes it into the embed area, zero-filling the
// remainder so any previous longer payload leaves no tail behind.
func (e *ignitionEditor) Embed(content *IgnitionContent, force bool) error {
	area, err := ResolveEmbedArea(e.image)
	if err != nil {
		return err
	}

	payload, err := e.archiver.Pack(ignitionFileName, content.Config)
	if err != nil {
		return errors.Wrap(err, "failed to archive ignition config")
	}
	if int64(len(payload)) > area.Length {
		return &CapacityError{PayloadLength: int64(len(payload)), AreaLength: area.Length}
	}

	if !force {
		current, err := e.readArea(area)
		if err != nil {
			return err
		}
		if !allZero(current) {
			return ErrAlreadyEmbedded
		}
	}

	if _, err := e.image.Seek(area.Offset, io.SeekStart); err != nil {
		return errors.Wrap(err, "failed to seek to embed area")
	}
	if _, err := e.image.Write(payload); err != nil {
		return errors.Wrap(err, "failed to write ignition archive")
	}
	if _, err := e.image.Write(make([]byte, area.Length-int64(len(payload)))); err != nil {
		return errors.Wrap(err, "failed to zero-fill embed area")
	}

	return nil
}

// Show unpacks the embedded config and writes it to out exactly as decoded.
func (e *ignitionEditor) Show(out io.Writer) error {
	area, err := ResolveEmbedArea(e.image)
	if err != nil {
		return err
	}

	data, err := e.readArea(area)
	if err != nil {
		return err
	}
	if allZero(data) {
		return ErrNoEmbeddedConfig
	}

	files, err := e.archiver.Unpack(data)
	if err != nil {
		return errors.Wrap(err, "failed to unpack embedded archive")
	}
	config, ok := files[ignitionFileName]
	if !ok {
		return errors.Errorf("no %s entry in embedded archive", ignitionFileName)
	}

	_, err = out.Write(config)
	return err
}

// Remove zeroes the entire embed area. Removing from an image with no
// embedded config is not an error.
func (e *ignitionEditor) Remove() error {
	area, err := ResolveEmbedArea(e.image)
	if err != nil {
		return err
	}

	if _, err := e.image.Seek(area.Offset, io.SeekStart); err != nil {
		return errors.Wrap(err, "failed to seek to embed area")
	}
	if _, err := e.image.Write(make([]byte, area.Length)); err != nil {
		return errors.Wrap(err, "failed to zero embed area")
	}

	return nil
}

func (e *ignitionEditor) readArea(area EmbedArea) ([]byte, error) {
	if _, err := e.image.Seek(area.Offset, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "failed to seek to embed area")
	}
	data := make([]byte, area.Length)
	if _, err := io.ReadFull(e.image, data); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrShortEmbedRead
		}
		return nil, errors.Wrap(err, "failed to read embed area")
	}
	return data, nil
}

func allZero(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
