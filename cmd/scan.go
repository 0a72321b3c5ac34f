package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vidseek/vidseek/internal/cache"
	"github.com/vidseek/vidseek/internal/config"
	"github.com/vidseek/vidseek/internal/metadata"
	"github.com/vidseek/vidseek/internal/models"
	"github.com/vidseek/vidseek/internal/probe"
	"github.com/vidseek/vidseek/internal/scan"
)

var (
	scanAdjust bool
	scanForce  bool
	scanTimes  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <folder>",
	Short: "Index the videos under a folder and cache the result",
	Long: `Walk a folder recursively, extract a (creation time, duration) pair for
every video file and persist the index to the cache artifact.

When a cache is already present it is reused as-is; pass --force to discard
it and rescan. The cache never notices changed, added or removed files on
its own.

Examples:
  vidseek scan /mnt/footage
  vidseek scan /mnt/footage --force --adjust
  vidseek scan /mnt/footage --times`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&scanAdjust, "adjust", false, "Subtract the duration from mtime-derived creation times")
	scanCmd.Flags().BoolVar(&scanForce, "force", false, "Discard the cache and rescan")
	scanCmd.Flags().BoolVar(&scanTimes, "times", false, "Show execution times")
}

// newScanner builds the production scanner. Command tests swap this out to
// avoid shelling out to ffprobe.
var newScanner = func(adjust bool) *scan.Scanner {
	client := probe.NewClient(config.FFprobePath(), config.ProbeTimeout())
	extractor := metadata.New(client, adjust || config.AdjustCreationTime())
	return scan.New(extractor, config.Extensions())
}

func runScan(cmd *cobra.Command, args []string) error {
	folder := args[0]

	if !probe.IsAvailable(config.FFprobePath()) {
		return fmt.Errorf("%s not found on PATH", config.FFprobePath())
	}

	records, fromCache, err := loadOrScan(folder, scanAdjust, scanForce, scanTimes)
	if err != nil {
		return err
	}

	if fromCache {
		fmt.Printf("Cache already holds %d video(s); use --force to rescan\n", len(records))
		return nil
	}

	fmt.Printf("Indexed %d video(s)\n", len(records))
	return nil
}

// loadOrScan returns the record list, from the cache when present and not
// forced, otherwise from a fresh scan that is then persisted. The bool
// reports whether the cache satisfied the request.
func loadOrScan(folder string, adjust, force, times bool) ([]models.VideoRecord, bool, error) {
	c := cache.New(config.CacheFile())

	if !force {
		start := time.Now()
		records, err := c.Load()
		if err != nil {
			return nil, false, err
		}
		if len(records) > 0 {
			if times {
				fmt.Printf("Loaded metadata in %s\n", time.Since(start))
			}
			return records, true, nil
		}
	}

	start := time.Now()
	records, err := c.Refresh(func() ([]models.VideoRecord, error) {
		return newScanner(adjust).Scan(folder)
	})
	if err != nil {
		return nil, false, err
	}
	if times {
		fmt.Printf("Found all videos in %s\n", time.Since(start))
	}

	return records, false, nil
}
