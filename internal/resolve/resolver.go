package resolve

import (
	"time"

	"github.com/vidseek/vidseek/internal/models"
)

// Match pairs the covering record with the elapsed time into it.
type Match struct {
	Record  models.VideoRecord
	Elapsed time.Duration
}

// Timestamp finds the record whose interval covers the target. Records are
// scanned in stored order and the first covering record wins, even when a
// later, tighter interval also covers the target. That tie-break is a
// documented policy, not an accident; keep it if this ever moves to an
// interval index.
func Timestamp(records []models.VideoRecord, target time.Time) (Match, bool) {
	for _, record := range records {
		if record.Contains(target) {
			return Match{
				Record:  record,
				Elapsed: record.Elapsed(target),
			}, true
		}
	}
	return Match{}, false
}
