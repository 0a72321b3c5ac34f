package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"
	"github.com/vidseek/vidseek/internal/cache"
	"github.com/vidseek/vidseek/internal/config"
	"github.com/vidseek/vidseek/internal/models"
)

var (
	listJSON bool
	listToon bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the indexed videos",
	Long: `List every record in the cache artifact with its path, creation time
and duration.

Examples:
  vidseek list
  vidseek list --json
  vidseek list --toon`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listToon, "toon", false, "Output in LLM-friendly toon format")
}

// recordView is the flattened record shape used for structured output.
type recordView struct {
	Path         string  `json:"path"`
	CreationTime string  `json:"creation_time"`
	Duration     float64 `json:"duration"`
}

func runList(cmd *cobra.Command, args []string) error {
	records, err := cache.New(config.CacheFile()).Load()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No videos indexed; run scan first")
		return nil
	}

	if listJSON {
		output, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if listToon {
		views := make([]recordView, len(records))
		for i, r := range records {
			views[i] = recordView{
				Path:         r.Path,
				CreationTime: r.CreationTime.Format(models.CacheTimeLayout),
				Duration:     r.Duration,
			}
		}
		output, err := gotoon.Encode(views)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Printf("Found %d video(s):\n\n", len(records))
	for _, r := range records {
		fmt.Printf("  %s\n", r.Path)
		fmt.Printf("    Start:    %s\n", r.Start().Format(models.QueryTimeLayout))
		fmt.Printf("    End:      %s\n", r.End().Format(models.QueryTimeLayout))
		fmt.Printf("    Duration: %.1fs\n", r.Duration)
		fmt.Println()
	}

	return nil
}
