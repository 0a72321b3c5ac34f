package cmd

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/vidseek/vidseek/internal/models"
	"github.com/vidseek/vidseek/internal/testutil"
)

func TestClearRemovesCache(t *testing.T) {
	setupTest(t)

	seedCache(t, []models.VideoRecord{
		{Path: "/videos/a.mp4", CreationTime: testutil.MustTime(t, "2024-06-19 10:00:00"), Duration: 300},
	})

	if err := runClear(nil, []string{}); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if _, err := os.Stat(viper.GetString("cache.file")); !os.IsNotExist(err) {
		t.Error("cache artifact must be gone after clear")
	}
}

func TestClearWithoutCache(t *testing.T) {
	setupTest(t)

	if err := runClear(nil, []string{}); err != nil {
		t.Fatalf("clear without cache must not error: %v", err)
	}
}
