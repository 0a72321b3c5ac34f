package scan

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vidseek/vidseek/internal/metadata"
	"github.com/vidseek/vidseek/internal/probe"
	"github.com/vidseek/vidseek/internal/testutil"
)

// fakeProbe serves canned results keyed by base filename.
func fakeProbe(results map[string]probe.Result) func(string) (probe.Result, error) {
	return func(path string) (probe.Result, error) {
		return results[filepath.Base(path)], nil
	}
}

func newTestScanner(results map[string]probe.Result) *Scanner {
	e := metadata.New(probe.NewClient("", 0), false)
	e.Probe = fakeProbe(results)
	e.Sidecar = nil
	return New(e, nil)
}

func timePtr(t time.Time) *time.Time { return &t }
func floatPtr(f float64) *float64    { return &f }

func goodResult(hour int) probe.Result {
	return probe.Result{
		Duration:     floatPtr(300),
		CreationDate: timePtr(time.Date(2024, 6, 19, hour, 0, 0, 0, time.UTC)),
	}
}

func TestScanFiltersAndOrders(t *testing.T) {
	lib := testutil.NewTempLibrary(t)
	defer lib.Cleanup()

	now := time.Now()
	lib.AddFile("B.MOV", now)
	lib.AddFile("a.mp4", now)
	lib.AddFile("notes.txt", now)
	lib.AddFile("nested/c.wmv", now)

	scanner := newTestScanner(map[string]probe.Result{
		"B.MOV": goodResult(10),
		"a.mp4": goodResult(11),
		"c.wmv": goodResult(12),
	})

	records, err := scanner.Scan(lib.Path)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	// Discovery order: lexical walk, files before the nested directory.
	wantOrder := []string{"B.MOV", "a.mp4", "c.wmv"}
	for i, want := range wantOrder {
		if filepath.Base(records[i].Path) != want {
			t.Errorf("position %d: expected %s, got %s", i, want, records[i].Path)
		}
	}
}

func TestScanDropsIncompleteRecords(t *testing.T) {
	lib := testutil.NewTempLibrary(t)
	defer lib.Cleanup()

	now := time.Now()
	lib.AddFile("good.mp4", now)
	lib.AddFile("noduration.mkv", now)
	lib.AddFile("zeroduration.avi", now)

	scanner := newTestScanner(map[string]probe.Result{
		"good.mp4": goodResult(10),
		"noduration.mkv": {
			CreationDate: timePtr(time.Date(2024, 6, 19, 11, 0, 0, 0, time.UTC)),
		},
		"zeroduration.avi": {
			Duration:     floatPtr(0),
			CreationDate: timePtr(time.Date(2024, 6, 19, 12, 0, 0, 0, time.UTC)),
		},
	})

	records, err := scanner.Scan(lib.Path)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if len(records) != 1 || filepath.Base(records[0].Path) != "good.mp4" {
		t.Fatalf("expected only good.mp4, got %v", records)
	}
}

func TestScanEmptyLibrary(t *testing.T) {
	lib := testutil.NewTempLibrary(t)
	defer lib.Cleanup()

	records, err := newTestScanner(nil).Scan(lib.Path)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty index, got %d records", len(records))
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := newTestScanner(nil).Scan("/no/such/folder"); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestExtensionMatchingIsCaseInsensitive(t *testing.T) {
	scanner := newTestScanner(nil)

	for _, path := range []string{"a.MP4", "b.Mov", "c.wmv"} {
		if !scanner.qualifies(path) {
			t.Errorf("%s must qualify", path)
		}
	}
	for _, path := range []string{"a.txt", "b.srt", "noext"} {
		if scanner.qualifies(path) {
			t.Errorf("%s must not qualify", path)
		}
	}
}
