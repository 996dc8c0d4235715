// BYZRA ⸻ internal/formats/formats.go
// video container families and their extensions

package formats

import (
	"fmt"
	"slices"
	"strings"
)

// container families; files of one family share a property layout
const (
	FamilyMP4      = "mp4"
	FamilyASF      = "asf"
	FamilyAVI      = "avi"
	FamilyMatroska = "matroska"
	FamilyMPEGTS   = "mpegts"
	FamilyMPEGPS   = "mpegps"
)

type Container struct {
	Family    string // "mp4", "asf", ...
	Extension string // "mov", "wmv", etc
	MimeType  string // "video/quicktime", etc
}

func (c Container) String() string {
	if c.Extension == "" || c.Extension == c.Family {
		return c.Family
	}
	return c.Family + "/" + c.Extension
}

// same family
func (c Container) Matches(o Container) bool {
	return c.Family == o.Family
}

// supported extensions by family
var extensions = map[string][]string{
	FamilyMP4:      {"mp4", "m4v", "mov", "3gp", "3g2"},
	FamilyASF:      {"wmv", "asf", "wma"},
	FamilyAVI:      {"avi"},
	FamilyMatroska: {"mkv", "webm", "mka"},
	FamilyMPEGTS:   {"ts", "m2ts", "mts"},
	FamilyMPEGPS:   {"mpg", "mpeg", "vob"},
}

var mimeTypes = map[string]string{
	"mp4":  "video/mp4",
	"m4v":  "video/x-m4v",
	"mov":  "video/quicktime",
	"3gp":  "video/3gpp",
	"3g2":  "video/3gpp2",
	"wmv":  "video/x-ms-wmv",
	"asf":  "video/x-ms-asf",
	"wma":  "audio/x-ms-wma",
	"avi":  "video/x-msvideo",
	"mkv":  "video/x-matroska",
	"webm": "video/webm",
	"mka":  "audio/x-matroska",
	"ts":   "video/mp2t",
	"m2ts": "video/mp2t",
	"mts":  "video/mp2t",
	"mpg":  "video/mpeg",
	"mpeg": "video/mpeg",
	"vob":  "video/mpeg",
}

// list of all supported file extensions
func SupportedExtensions() []string {
	all := []string{}
	for _, exts := range extensions {
		all = append(all, exts...)
	}
	slices.Sort(all)
	return all
}

// checks if a file extension is supported
func IsSupported(extension string) bool {
	_, err := ByExtension(extension)
	return err == nil
}

// container for a given extension, leading dot optional
func ByExtension(extension string) (Container, error) {
	extension = strings.ToLower(strings.TrimPrefix(extension, "."))

	for family, exts := range extensions {
		if slices.Contains(exts, extension) {
			return Container{Family: family, Extension: extension, MimeType: mimeTypes[extension]}, nil
		}
	}
	return Container{}, fmt.Errorf("unsupported extension: %s", extension)
}
