package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	exiflib "github.com/rwcarlsen/goexif/exif"
	"github.com/vidseek/vidseek/internal/models"
)

// Sidecar extensions checked next to a video file, in order. Many cameras
// write a thumbnail image with the clip's EXIF data alongside the video.
var sidecarExts = []string{".thm", ".THM", ".jpg", ".JPG", ".jpeg"}

// SidecarDateTime returns the EXIF DateTimeOriginal of a sidecar image
// next to the video, or nil when no sidecar with a usable date exists.
func SidecarDateTime(videoPath string) *time.Time {
	base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	for _, ext := range sidecarExts {
		if t := exifDateTimeOriginal(base + ext); t != nil {
			return t
		}
	}
	return nil
}

// exifDateTimeOriginal reads DateTimeOriginal from one image file. On any
// error (missing file, no EXIF, no date tag) it returns nil.
func exifDateTimeOriginal(path string) *time.Time {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	x, err := exiflib.Decode(f)
	if err != nil {
		return nil
	}

	tag, err := x.Get(exiflib.DateTimeOriginal)
	if err != nil {
		return nil
	}
	val, err := tag.StringVal()
	if err != nil {
		return nil
	}

	t, err := time.Parse("2006:01:02 15:04:05", val)
	if err != nil {
		return nil
	}
	t = models.Naive(t)
	return &t
}
