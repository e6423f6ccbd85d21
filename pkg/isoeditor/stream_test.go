package isoeditor

import (
	"errors"
	"io"
	"os"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("NewIgnitionStreamReader", func() {
	config := []byte(`{"ignition": {"version": "3.1.0"}}`)

	It("splices the archive into the embed area without touching the source", func() {
		isoFile := createTestImage(8192)
		defer os.Remove(isoFile)

		original, err := os.ReadFile(isoFile)
		Expect(err).NotTo(HaveOccurred())

		f, err := os.Open(isoFile)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		reader, err := NewIgnitionStreamReader(f, &IgnitionContent{Config: config})
		Expect(err).NotTo(HaveOccurred())

		streamed, err := io.ReadAll(reader)
		Expect(err).NotTo(HaveOccurred())
		Expect(streamed).To(HaveLen(len(original)))

		payload, err := NewArchiver().Pack(ignitionFileName, config)
		Expect(err).NotTo(HaveOccurred())

		areaEnd := testAreaOffset + 8192
		Expect(streamed[:testAreaOffset]).To(Equal(original[:testAreaOffset]))
		Expect(streamed[areaEnd:]).To(Equal(original[areaEnd:]))
		Expect(streamed[testAreaOffset : testAreaOffset+int64(len(payload))]).To(Equal(payload))
		Expect(streamed[testAreaOffset+int64(len(payload)) : areaEnd]).To(Equal(make([]byte, 8192-len(payload))))

		current, err := os.ReadFile(isoFile)
		Expect(err).NotTo(HaveOccurred())
		Expect(current).To(Equal(original))
	})

	It("rejects a config that does not fit the area", func() {
		isoFile := createTestImage(16)
		defer os.Remove(isoFile)

		f, err := os.Open(isoFile)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		_, err = NewIgnitionStreamReader(f, &IgnitionContent{Config: config})
		var capErr *CapacityError
		Expect(errors.As(err, &capErr)).To(BeTrue())
	})
})
