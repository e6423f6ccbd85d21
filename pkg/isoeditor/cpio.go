package isoeditor

import (
	"bytes"
	"compress/gzip"
	"io"

	"github.com/cavaliercoder/go-cpio"
	"github.com/pkg/errors"
)

func generateCompressedCPIO(fileContent []byte, filePath string, mode cpio.FileMode) ([]byte, error) {
	// Run gzip compression
	compressedBuffer := new(bytes.Buffer)
	gzipWriter := gzip.NewWriter(compressedBuffer)
	// Create CPIO archive
	cpioWriter := cpio.NewWriter(gzipWriter)

	if err := cpioWriter.WriteHeader(&cpio.Header{
		Name: filePath,
		Mode: mode,
		Size: int64(len(fileContent)),
	}); err != nil {
		return nil, errors.Wrap(err, "failed to write cpio header")
	}

	if _, err := cpioWriter.Write(fileContent); err != nil {
		return nil, errors.Wrap(err, "failed to write cpio archive")
	}

	if err := cpioWriter.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to close cpio archive")
	}
	if err := gzipWriter.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to gzip archive")
	}

	// The boot process reads the archive as part of the initrd, which must
	// be 4-byte aligned
	if padding := compressedBuffer.Len() % 4; padding != 0 {
		if _, err := compressedBuffer.Write(make([]byte, 4-padding)); err != nil {
			return nil, errors.Wrap(err, "failed to pad archive")
		}
	}

	return compressedBuffer.Bytes(), nil
}

func extractCompressedCPIO(data []byte) (map[string][]byte, error) {
	gzipReader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress archive")
	}
	defer gzipReader.Close()

	// The cpio reader stops at the trailer entry, so trailing zero padding
	// in the embed area is never consumed
	files := make(map[string][]byte)
	cpioReader := cpio.NewReader(gzipReader)
	for {
		header, err := cpioReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read cpio archive")
		}
		content, err := io.ReadAll(cpioReader)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read cpio entry %s", header.Name)
		}
		files[header.Name] = content
	}

	return files, nil
}
