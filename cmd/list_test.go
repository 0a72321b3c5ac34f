package cmd

import (
	"testing"

	"github.com/vidseek/vidseek/internal/models"
	"github.com/vidseek/vidseek/internal/testutil"
)

func TestListNoIndex(t *testing.T) {
	setupTest(t)

	listJSON = false
	listToon = false

	// An absent cache is reported, not an error.
	if err := runList(nil, []string{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
}

func TestListWithRecords(t *testing.T) {
	setupTest(t)

	seedCache(t, []models.VideoRecord{
		{Path: "/videos/a.mp4", CreationTime: testutil.MustTime(t, "2024-06-19 10:00:00"), Duration: 300},
		{Path: "/videos/b.mkv", CreationTime: testutil.MustTime(t, "2024-06-19 10:20:00"), Duration: 300},
	})

	listJSON = false
	listToon = false
	if err := runList(nil, []string{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	listJSON = true
	if err := runList(nil, []string{}); err != nil {
		t.Fatalf("list --json failed: %v", err)
	}

	listJSON = false
	listToon = true
	if err := runList(nil, []string{}); err != nil {
		t.Fatalf("list --toon failed: %v", err)
	}
}
