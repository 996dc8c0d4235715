// BYZRA ⸻ internal/formats/detect.go
// container detection by magic numbers, extension as fallback

package formats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// enough for two transport stream packets plus an m2ts prefix
const sniffLen = 200

func Detect(path string) (Container, error) {
	// 1st magic numbers
	c, err := detectByMagicNumbers(path)
	if err != nil {
		return Container{}, err
	}
	if c.Family != "" {
		return c, nil
	}

	// fallback to extension
	if c, err := ByExtension(filepath.Ext(path)); err == nil {
		return c, nil
	}

	return Container{}, fmt.Errorf("unknown container for %s", path)
}

func detectByMagicNumbers(path string) (Container, error) {
	file, err := os.Open(path)
	if err != nil {
		return Container{}, err
	}
	defer file.Close()

	buffer := make([]byte, sniffLen)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Container{}, err
	}
	return sniff(buffer[:n]), nil
}

// matches a file header; zero Container when nothing fits
func sniff(buf []byte) Container {
	// ISO BMFF / QuickTime: ftyp box at offset 4, brand follows
	if len(buf) >= 12 && bytes.Equal(buf[4:8], []byte("ftyp")) {
		switch string(buf[8:12]) {
		case "qt  ":
			return container(FamilyMP4, "mov")
		case "M4V ", "M4VH", "M4VP":
			return container(FamilyMP4, "m4v")
		case "3gp4", "3gp5", "3gp6", "3ge6", "3gg6":
			return container(FamilyMP4, "3gp")
		case "3g2a", "3g2b", "3g2c":
			return container(FamilyMP4, "3g2")
		}
		return container(FamilyMP4, "mp4")
	}

	// ASF header object GUID 75B22630-668E-11CF-A6D9-00AA0062CE6C
	if bytes.HasPrefix(buf, []byte{0x30, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11}) {
		return container(FamilyASF, "wmv")
	}

	// AVI: 52 49 46 46 ... 41 56 49 20 (RIFF....AVI )
	if len(buf) >= 12 && bytes.HasPrefix(buf, []byte("RIFF")) && bytes.Equal(buf[8:12], []byte("AVI ")) {
		return container(FamilyAVI, "avi")
	}

	// EBML: 1A 45 DF A3, doctype decides webm vs mkv
	if bytes.HasPrefix(buf, []byte{0x1A, 0x45, 0xDF, 0xA3}) {
		if bytes.Contains(buf, []byte("webm")) {
			return container(FamilyMatroska, "webm")
		}
		return container(FamilyMatroska, "mkv")
	}

	// MPEG-PS pack header: 00 00 01 BA
	if bytes.HasPrefix(buf, []byte{0x00, 0x00, 0x01, 0xBA}) {
		return container(FamilyMPEGPS, "mpg")
	}

	// MPEG-TS: sync byte every 188 bytes; m2ts adds a 4 byte timecode
	if len(buf) > 188 && buf[0] == 0x47 && buf[188] == 0x47 {
		return container(FamilyMPEGTS, "ts")
	}
	if len(buf) > 196 && buf[4] == 0x47 && buf[196] == 0x47 {
		return container(FamilyMPEGTS, "m2ts")
	}

	return Container{}
}

func container(family, ext string) Container {
	return Container{Family: family, Extension: ext, MimeType: mimeTypes[ext]}
}
