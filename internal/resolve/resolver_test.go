package resolve

import (
	"testing"
	"time"

	"github.com/vidseek/vidseek/internal/models"
	"github.com/vidseek/vidseek/internal/testutil"
)

func record(t *testing.T, path, start string, duration float64) models.VideoRecord {
	return models.VideoRecord{
		Path:         path,
		CreationTime: testutil.MustTime(t, start),
		Duration:     duration,
	}
}

func TestResolvesBoundariesInclusively(t *testing.T) {
	records := []models.VideoRecord{record(t, "a.mp4", "2024-06-19 10:00:00", 300)}

	for _, target := range []string{"2024-06-19 10:00:00", "2024-06-19 10:05:00"} {
		if _, found := Timestamp(records, testutil.MustTime(t, target)); !found {
			t.Errorf("boundary %s must resolve", target)
		}
	}

	for _, target := range []string{"2024-06-19 09:59:59", "2024-06-19 10:05:01"} {
		if _, found := Timestamp(records, testutil.MustTime(t, target)); found {
			t.Errorf("target %s outside the interval must not resolve", target)
		}
	}
}

func TestFirstMatchInListOrderWins(t *testing.T) {
	// B is the tighter fit but A comes first in stored order.
	records := []models.VideoRecord{
		record(t, "a.mp4", "2024-06-19 10:00:00", 3600),
		record(t, "b.mp4", "2024-06-19 10:04:00", 120),
	}

	match, found := Timestamp(records, testutil.MustTime(t, "2024-06-19 10:04:30"))
	if !found {
		t.Fatal("expected a match")
	}
	if match.Record.Path != "a.mp4" {
		t.Errorf("expected first record in list order, got %s", match.Record.Path)
	}
}

func TestOverlappingRecordingsScenario(t *testing.T) {
	records := []models.VideoRecord{
		record(t, "one.mp4", "2024-06-19 10:00:00", 300),
		record(t, "two.mp4", "2024-06-19 10:04:30", 300),
		record(t, "three.mp4", "2024-06-19 10:20:00", 300),
	}

	match, found := Timestamp(records, testutil.MustTime(t, "2024-06-19 10:04:45"))
	if !found {
		t.Fatal("expected a match")
	}
	if match.Record.Path != "one.mp4" {
		t.Errorf("expected one.mp4 by list order, got %s", match.Record.Path)
	}
	if match.Elapsed != 4*time.Minute+45*time.Second {
		t.Errorf("expected elapsed 4m45s, got %s", match.Elapsed)
	}
}

func TestNoMatch(t *testing.T) {
	records := []models.VideoRecord{
		record(t, "one.mp4", "2024-06-19 10:00:00", 300),
		record(t, "three.mp4", "2024-06-19 10:20:00", 300),
	}

	if _, found := Timestamp(records, testutil.MustTime(t, "2024-06-19 10:10:00")); found {
		t.Error("gap between recordings must not resolve")
	}
}

func TestEmptyList(t *testing.T) {
	if _, found := Timestamp(nil, testutil.MustTime(t, "2024-06-19 10:00:00")); found {
		t.Error("empty index must never resolve")
	}
}
