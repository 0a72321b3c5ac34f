package metadata

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/vidseek/vidseek/internal/logging"
	"github.com/vidseek/vidseek/internal/models"
	"github.com/vidseek/vidseek/internal/probe"
)

// invalidEpoch is the placeholder date some QuickTime/MP4 muxers emit when
// no real recording date was written (the container epoch zero).
var invalidEpoch = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)

// ProbeFunc obtains container metadata for one file.
type ProbeFunc func(path string) (probe.Result, error)

// SidecarFunc looks up a creation time from a sidecar image next to the
// video file, or nil when there is none.
type SidecarFunc func(videoPath string) *time.Time

// Outcome is the per-file result of metadata extraction. Extraction never
// fails the caller; a file that cannot be used carries Failed and a Reason
// instead. CreationTime and Duration stay nil when the container did not
// provide them, which is distinct from a present zero value.
type Outcome struct {
	Path         string
	CreationTime *time.Time
	Duration     *float64
	Failed       bool
	Reason       string
}

// Extractor produces a best-effort (creation time, duration) pair per file.
type Extractor struct {
	// Probe and Sidecar default to ffprobe and EXIF sidecar lookup; tests
	// swap them out.
	Probe   ProbeFunc
	Sidecar SidecarFunc

	// Adjust subtracts the duration from a creation time taken from the
	// file mtime, compensating for mtime reflecting file close rather
	// than recording start.
	Adjust bool

	log zerolog.Logger
}

// New creates an extractor backed by the given probe client.
func New(client *probe.Client, adjust bool) *Extractor {
	return &Extractor{
		Probe:   client.File,
		Sidecar: SidecarDateTime,
		Adjust:  adjust,
		log:     logging.New("metadata"),
	}
}

// Extract probes one file and resolves its creation time through the
// fallback chain. Any failure is logged and reported in the outcome; it is
// never fatal to the scan.
func (e *Extractor) Extract(path string) Outcome {
	res, err := e.Probe(path)
	if err != nil {
		e.log.Warn().Str("path", path).Err(err).Msg("unable to extract metadata")
		return Outcome{Path: path, Failed: true, Reason: err.Error()}
	}

	creation, found := pickCreationTime(res, e.sidecarTime(path))

	// Missing or the known-invalid epoch date: fall back to the file's
	// modification time.
	if !found || creation.Equal(invalidEpoch) {
		info, err := os.Stat(path)
		if err != nil {
			e.log.Warn().Str("path", path).Err(err).Msg("unable to stat file for mtime fallback")
			return Outcome{Path: path, Failed: true, Reason: err.Error()}
		}
		creation = models.Naive(info.ModTime())
		if e.Adjust && res.Duration != nil {
			creation = creation.Add(-models.DurationSeconds(*res.Duration))
		}
		e.log.Debug().Str("path", path).Time("creation", creation).Msg("using mtime fallback")
	}

	return Outcome{
		Path:         path,
		CreationTime: &creation,
		Duration:     res.Duration,
	}
}

func (e *Extractor) sidecarTime(path string) *time.Time {
	if e.Sidecar == nil {
		return nil
	}
	return e.Sidecar(path)
}

// creationSources is the ordered fallback table for creation time. Earlier
// entries win; a sidecar EXIF time fills the datetime_original slot when
// the container itself has none.
var creationSources = []func(res probe.Result, sidecar *time.Time) *time.Time{
	func(res probe.Result, _ *time.Time) *time.Time { return res.CreationDate },
	func(res probe.Result, sidecar *time.Time) *time.Time {
		if res.DateTimeOriginal != nil {
			return res.DateTimeOriginal
		}
		return sidecar
	},
	func(res probe.Result, _ *time.Time) *time.Time { return res.DateTime },
}

// pickCreationTime evaluates the fallback table in order and returns the
// first present candidate.
func pickCreationTime(res probe.Result, sidecar *time.Time) (time.Time, bool) {
	for _, source := range creationSources {
		if t := source(res, sidecar); t != nil {
			return *t, true
		}
	}
	return time.Time{}, false
}
