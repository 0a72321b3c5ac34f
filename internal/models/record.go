package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// CacheTimeLayout is the wall-clock layout used for creation times in the
// cache artifact. Times carry no timezone; everything in the index is a
// naive local timestamp.
const CacheTimeLayout = "2006-01-02T15:04:05"

// QueryTimeLayout is the layout accepted for target timestamps on the
// command line.
const QueryTimeLayout = "2006-01-02 15:04:05"

// VideoRecord describes one video's real-world recording interval.
// Path is the unique key; Duration is in seconds.
type VideoRecord struct {
	Path         string
	CreationTime time.Time
	Duration     float64
}

// Start returns the beginning of the recording interval.
func (r VideoRecord) Start() time.Time {
	return r.CreationTime
}

// End returns the end of the recording interval.
func (r VideoRecord) End() time.Time {
	return r.CreationTime.Add(DurationSeconds(r.Duration))
}

// Contains reports whether the target falls inside the recording interval.
// Both bounds are inclusive.
func (r VideoRecord) Contains(target time.Time) bool {
	return !target.Before(r.Start()) && !target.After(r.End())
}

// Elapsed returns how far into the recording the target is.
// Only meaningful when Contains(target) is true.
func (r VideoRecord) Elapsed(target time.Time) time.Duration {
	return target.Sub(r.CreationTime)
}

// recordJSON is the on-disk shape of a record in the cache artifact.
type recordJSON struct {
	Path         string  `json:"path"`
	CreationTime string  `json:"creation_time"`
	Duration     float64 `json:"duration"`
}

// MarshalJSON encodes the creation time as an ISO-8601 string without
// a timezone suffix.
func (r VideoRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		Path:         r.Path,
		CreationTime: r.CreationTime.Format(CacheTimeLayout),
		Duration:     r.Duration,
	})
}

// UnmarshalJSON decodes the ISO-8601 creation time string back to a
// naive timestamp.
func (r *VideoRecord) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t, err := time.Parse(CacheTimeLayout, raw.CreationTime)
	if err != nil {
		return fmt.Errorf("invalid creation_time %q: %w", raw.CreationTime, err)
	}

	r.Path = raw.Path
	r.CreationTime = t
	r.Duration = raw.Duration
	return nil
}

// ParseQueryTime parses a target timestamp given as "YYYY-MM-DD HH:MM:SS".
func ParseQueryTime(s string) (time.Time, error) {
	t, err := time.Parse(QueryTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (use YYYY-MM-DD HH:MM:SS): %w", s, err)
	}
	return t, nil
}

// Naive strips the timezone and sub-second part from a timestamp, keeping
// the wall-clock reading. Creation times from different sources (container
// tags, file mtimes, query input) must compare on wall-clock values alone,
// and the cache artifact stores second granularity.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// DurationSeconds converts a float second count into a time.Duration.
func DurationSeconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
