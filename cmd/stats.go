package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"
	"github.com/vidseek/vidseek/internal/cache"
	"github.com/vidseek/vidseek/internal/config"
	"github.com/vidseek/vidseek/internal/models"
)

var (
	statsJSON bool
	statsToon bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	Long: `Display statistics about the indexed videos including:
  - Total video count and footage duration
  - Covered time range
  - Breakdown by container extension
  - Largest uncovered gap between recordings

Examples:
  vidseek stats
  vidseek stats --json
  vidseek stats --toon`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsToon, "toon", false, "Output in LLM-friendly toon format")
}

type libraryStats struct {
	TotalVideos   int            `json:"total_videos"`
	TotalFootage  float64        `json:"total_footage_seconds"`
	EarliestStart *time.Time     `json:"earliest_start,omitempty"`
	LatestEnd     *time.Time     `json:"latest_end,omitempty"`
	ByExtension   map[string]int `json:"by_extension"`
	LargestGap    float64        `json:"largest_gap_seconds"`
}

func runStats(cmd *cobra.Command, args []string) error {
	records, err := cache.New(config.CacheFile()).Load()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No videos indexed; run scan first")
		return nil
	}

	stats := collectStats(records)

	if statsJSON {
		output, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if statsToon {
		output, err := gotoon.Encode(stats)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Println("Index Statistics")
	fmt.Println("━━━━━━━━━━━━━━━━")
	fmt.Println()

	fmt.Printf("Total Videos:  %d\n", stats.TotalVideos)
	fmt.Printf("Total Footage: %s\n", models.DurationSeconds(stats.TotalFootage))
	if stats.EarliestStart != nil && stats.LatestEnd != nil {
		fmt.Printf("Covered Range: %s to %s\n",
			stats.EarliestStart.Format(models.QueryTimeLayout),
			stats.LatestEnd.Format(models.QueryTimeLayout))
	}
	if stats.LargestGap > 0 {
		fmt.Printf("Largest Gap:   %s\n", models.DurationSeconds(stats.LargestGap))
	}
	fmt.Println()

	fmt.Println("By Extension:")
	exts := make([]string, 0, len(stats.ByExtension))
	for ext := range stats.ByExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		count := stats.ByExtension[ext]
		percentage := float64(count) / float64(stats.TotalVideos) * 100
		fmt.Printf("  %-6s %3d  (%.1f%%)\n", ext, count, percentage)
	}

	return nil
}

func collectStats(records []models.VideoRecord) *libraryStats {
	stats := &libraryStats{
		TotalVideos: len(records),
		ByExtension: make(map[string]int),
	}

	for _, r := range records {
		stats.TotalFootage += r.Duration

		start, end := r.Start(), r.End()
		if stats.EarliestStart == nil || start.Before(*stats.EarliestStart) {
			stats.EarliestStart = &start
		}
		if stats.LatestEnd == nil || end.After(*stats.LatestEnd) {
			stats.LatestEnd = &end
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(r.Path), "."))
		stats.ByExtension[ext]++
	}

	stats.LargestGap = largestGap(records)
	return stats
}

// largestGap returns the longest stretch of time between the end of one
// recording and the start of the next, ignoring overlaps.
func largestGap(records []models.VideoRecord) float64 {
	if len(records) < 2 {
		return 0
	}

	sorted := make([]models.VideoRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start().Before(sorted[j].Start())
	})

	var gap float64
	coveredUntil := sorted[0].End()
	for _, r := range sorted[1:] {
		if r.Start().After(coveredUntil) {
			if g := r.Start().Sub(coveredUntil).Seconds(); g > gap {
				gap = g
			}
		}
		if r.End().After(coveredUntil) {
			coveredUntil = r.End()
		}
	}
	return gap
}
