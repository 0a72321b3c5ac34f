package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/vidseek/vidseek/internal/logging"
	"github.com/vidseek/vidseek/internal/metadata"
	"github.com/vidseek/vidseek/internal/models"
)

// DefaultExtensions are the video container extensions indexed when the
// configuration does not override them.
var DefaultExtensions = []string{"mp4", "avi", "mov", "mkv", "flv", "wmv"}

// Scanner walks a directory tree and builds the ordered record list.
type Scanner struct {
	extractor  *metadata.Extractor
	extensions map[string]bool
	log        zerolog.Logger
}

// New creates a scanner using the given extractor. An empty extension list
// falls back to DefaultExtensions.
func New(extractor *metadata.Extractor, extensions []string) *Scanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	extMap := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extMap[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	return &Scanner{
		extractor:  extractor,
		extensions: extMap,
		log:        logging.New("scan"),
	}
}

// Scan visits every file under root in traversal order and returns a record
// for each qualifying video with usable metadata. Per-file failures are
// logged and skipped; only a failure to walk the root itself is an error.
func (s *Scanner) Scan(root string) ([]models.VideoRecord, error) {
	var records []models.VideoRecord

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			s.log.Warn().Str("path", path).Err(walkErr).Msg("skipping unreadable entry")
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !s.qualifies(path) {
			return nil
		}

		outcome := s.extractor.Extract(path)
		if record, ok := s.retain(outcome); ok {
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// qualifies reports whether the file extension is one of the indexed video
// types, case-insensitively.
func (s *Scanner) qualifies(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return s.extensions[ext]
}

// retain applies the drop policy: a record needs a creation time and a
// non-zero duration. A missing duration and a present zero duration are
// distinct cases, so each gets its own log line.
func (s *Scanner) retain(outcome metadata.Outcome) (models.VideoRecord, bool) {
	switch {
	case outcome.Failed:
		// Already logged by the extractor.
		return models.VideoRecord{}, false
	case outcome.CreationTime == nil || outcome.CreationTime.IsZero():
		s.log.Debug().Str("path", outcome.Path).Msg("dropping record without creation time")
		return models.VideoRecord{}, false
	case outcome.Duration == nil:
		s.log.Debug().Str("path", outcome.Path).Msg("dropping record without duration")
		return models.VideoRecord{}, false
	case *outcome.Duration == 0:
		s.log.Debug().Str("path", outcome.Path).Msg("dropping record with zero duration")
		return models.VideoRecord{}, false
	}

	return models.VideoRecord{
		Path:         outcome.Path,
		CreationTime: *outcome.CreationTime,
		Duration:     *outcome.Duration,
	}, true
}
