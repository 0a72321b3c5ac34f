package models

import (
	"encoding/json"
	"testing"
	"time"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(QueryTimeLayout, value)
	if err != nil {
		t.Fatalf("invalid test timestamp %q: %v", value, err)
	}
	return parsed
}

func TestContainsInclusiveBounds(t *testing.T) {
	record := VideoRecord{
		Path:         "/videos/a.mp4",
		CreationTime: mustTime(t, "2024-06-19 10:00:00"),
		Duration:     300,
	}

	if !record.Contains(record.Start()) {
		t.Error("interval start must be a match")
	}
	if !record.Contains(record.End()) {
		t.Error("interval end must be a match")
	}
	if !record.Contains(mustTime(t, "2024-06-19 10:02:30")) {
		t.Error("interior point must be a match")
	}
}

func TestContainsRejectsOutsideBounds(t *testing.T) {
	record := VideoRecord{
		Path:         "/videos/a.mp4",
		CreationTime: mustTime(t, "2024-06-19 10:00:00"),
		Duration:     300,
	}

	if record.Contains(record.Start().Add(-time.Second)) {
		t.Error("one second before the interval must not match")
	}
	if record.Contains(record.End().Add(time.Second)) {
		t.Error("one second after the interval must not match")
	}
}

func TestElapsed(t *testing.T) {
	record := VideoRecord{
		CreationTime: mustTime(t, "2024-06-19 10:00:00"),
		Duration:     600,
	}

	elapsed := record.Elapsed(mustTime(t, "2024-06-19 10:04:45"))
	if elapsed != 4*time.Minute+45*time.Second {
		t.Errorf("expected 4m45s elapsed, got %s", elapsed)
	}
}

func TestRecordJSONRoundTrip(t *testing.T) {
	original := VideoRecord{
		Path:         "/videos/cam1/clip.mp4",
		CreationTime: mustTime(t, "2024-06-19 19:23:50"),
		Duration:     300.5,
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded VideoRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded.Path != original.Path {
		t.Errorf("path changed: %q != %q", decoded.Path, original.Path)
	}
	if !decoded.CreationTime.Equal(original.CreationTime) {
		t.Errorf("creation time changed: %s != %s", decoded.CreationTime, original.CreationTime)
	}
	if decoded.Duration != original.Duration {
		t.Errorf("duration changed: %v != %v", decoded.Duration, original.Duration)
	}
}

func TestUnmarshalRejectsBadCreationTime(t *testing.T) {
	var record VideoRecord
	err := json.Unmarshal([]byte(`{"path":"a","creation_time":"soon","duration":1}`), &record)
	if err == nil {
		t.Fatal("expected error for invalid creation_time")
	}
}

func TestParseQueryTime(t *testing.T) {
	parsed, err := ParseQueryTime("2024-06-19 19:23:50")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.Hour() != 19 || parsed.Second() != 50 {
		t.Errorf("unexpected parse result: %s", parsed)
	}

	if _, err := ParseQueryTime("2024-06-19T19:23:50"); err == nil {
		t.Error("expected error for ISO separator")
	}
}

func TestNaiveKeepsWallClock(t *testing.T) {
	zone := time.FixedZone("TEST", 3*3600)
	local := time.Date(2024, 6, 19, 10, 0, 0, 500, zone)

	naive := Naive(local)
	if naive.Hour() != 10 || naive.Location() != time.UTC || naive.Nanosecond() != 0 {
		t.Errorf("unexpected naive time: %s", naive)
	}
}
