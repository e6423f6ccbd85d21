package isoeditor

import (
	"bytes"

	"github.com/pkg/errors"
)

const (
	// ignitionFileName is the archive entry the boot process unpacks the
	// config from. Fixed by the live ISO's initramfs layout.
	ignitionFileName = "config.ign"

	ignitionFileMode = 0o100_644
)

// Archiver packs and unpacks the archive format stored in the embed area: a
// gzipped CPIO (newc) stream padded to a 4-byte boundary.
//
//go:generate mockgen -package=isoeditor -destination=mock_archiver.go . Archiver
type Archiver interface {
	Pack(name string, content []byte) ([]byte, error)
	Unpack(data []byte) (map[string][]byte, error)
}

type cpioArchiver struct{}

// NewArchiver returns the native gzip+cpio Archiver.
func NewArchiver() Archiver {
	return cpioArchiver{}
}

func (cpioArchiver) Pack(name string, content []byte) ([]byte, error) {
	return generateCompressedCPIO(content, name, ignitionFileMode)
}

func (cpioArchiver) Unpack(data []byte) (map[string][]byte, error) {
	return extractCompressedCPIO(data)
}

// IgnitionContent is an ignition config to embed in a live ISO.
type IgnitionContent struct {
	Config []byte
}

// Archive packs the config into the archive format the embed area carries.
func (ic *IgnitionContent) Archive() (*bytes.Reader, error) {
	compressedCpio, err := generateCompressedCPIO(ic.Config, ignitionFileName, ignitionFileMode)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(compressedCpio), nil
}

// ExtractIgnition returns the ignition config from an archive read out of an
// embed area. Trailing zero padding after the gzip stream is ignored.
func ExtractIgnition(data []byte) ([]byte, error) {
	files, err := extractCompressedCPIO(data)
	if err != nil {
		return nil, err
	}
	config, ok := files[ignitionFileName]
	if !ok {
		return nil, errors.Errorf("no %s entry in embedded archive", ignitionFileName)
	}
	return config, nil
}
