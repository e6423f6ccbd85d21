package isoeditor

import (
	"io"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("IgnitionContent.Archive", func() {
	var (
		ignitionContent      = []byte("someignitioncontent")
		ignitionArchiveBytes = []byte{
			31, 139, 8, 0, 0, 0, 0, 0, 0, 255, 50, 48, 55, 48, 55, 48,
			52, 128, 0, 48, 109, 97, 232, 104, 98, 128, 29, 24, 162, 113, 141, 113,
			168, 67, 7, 78, 48, 70, 114, 126, 94, 90, 102, 186, 94, 102, 122, 30,
			3, 3, 3, 67, 113, 126, 110, 106, 102, 122, 94, 102, 73, 102, 126, 94,
			114, 126, 94, 73, 106, 94, 9, 3, 138, 123, 8, 1, 98, 213, 225, 116,
			79, 72, 144, 163, 167, 143, 107, 144, 162, 162, 34, 200, 61, 128, 0, 0,
			0, 255, 255, 191, 236, 44, 242, 12, 1, 0, 0, 0}
	)

	It("packs the config into the compressed CPIO archive the boot process expects", func() {
		content := IgnitionContent{Config: ignitionContent}

		data, err := content.Archive()
		Expect(err).NotTo(HaveOccurred())

		archiveBytes, err := io.ReadAll(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(archiveBytes).To(Equal(ignitionArchiveBytes))
		Expect(len(archiveBytes) % 4).To(Equal(0))
	})
})

var _ = Describe("ExtractIgnition", func() {
	archive := func(config []byte) []byte {
		content := IgnitionContent{Config: config}
		data, err := content.Archive()
		Expect(err).NotTo(HaveOccurred())
		archiveBytes, err := io.ReadAll(data)
		Expect(err).NotTo(HaveOccurred())
		return archiveBytes
	}

	It("round-trips a config byte for byte", func() {
		config := []byte(`{"ignition": {"version": "3.1.0"}}`)

		extracted, err := ExtractIgnition(archive(config))
		Expect(err).NotTo(HaveOccurred())
		Expect(extracted).To(Equal(config))
	})

	It("ignores zero padding after the gzip stream", func() {
		config := []byte(`{"ignition": {"version": "3.1.0"}}`)
		padded := append(archive(config), make([]byte, 4096)...)

		extracted, err := ExtractIgnition(padded)
		Expect(err).NotTo(HaveOccurred())
		Expect(extracted).To(Equal(config))
	})

	It("fails when the config entry is missing", func() {
		other, err := NewArchiver().Pack("other.file", []byte("stuff"))
		Expect(err).NotTo(HaveOccurred())

		_, err = ExtractIgnition(other)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring(ignitionFileName))
	})

	It("fails on data that is not a gzip stream", func() {
		_, err := ExtractIgnition([]byte("definitely not an archive"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Archiver", func() {
	It("round-trips arbitrary entries", func() {
		archiver := NewArchiver()

		data, err := archiver.Pack(ignitionFileName, []byte("somecontent"))
		Expect(err).NotTo(HaveOccurred())

		files, err := archiver.Unpack(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(files).To(HaveLen(1))
		Expect(files[ignitionFileName]).To(Equal([]byte("somecontent")))
	})
})
