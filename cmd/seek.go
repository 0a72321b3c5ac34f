package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vidseek/vidseek/internal/config"
	"github.com/vidseek/vidseek/internal/frame"
	"github.com/vidseek/vidseek/internal/models"
	"github.com/vidseek/vidseek/internal/probe"
	"github.com/vidseek/vidseek/internal/resolve"
)

var (
	seekAt      string
	seekOffset  int
	seekSave    string
	seekDisplay bool
	seekAdjust  bool
	seekTimes   bool
)

var seekCmd = &cobra.Command{
	Use:   "seek <folder>",
	Short: "Find the frame recorded at an absolute point in time",
	Long: `Resolve an absolute timestamp to the video covering it and decode the
frame at that moment. The folder is scanned first unless a cache is already
present.

When several indexed intervals overlap the target, the first one in scan
order wins.

Examples:
  vidseek seek /mnt/footage --at "2024-06-19 19:23:50"
  vidseek seek /mnt/footage --at "2024-06-19 19:23:50" --save frame.png
  vidseek seek /mnt/footage --at "2024-06-19 19:23:50" --offset 5 --display`,
	Args: cobra.ExactArgs(1),
	RunE: runSeek,
}

func init() {
	rootCmd.AddCommand(seekCmd)

	seekCmd.Flags().StringVar(&seekAt, "at", "", "Target timestamp (YYYY-MM-DD HH:MM:SS)")
	seekCmd.Flags().IntVar(&seekOffset, "offset", 0, "Frame offset applied to the computed frame index")
	seekCmd.Flags().StringVar(&seekSave, "save", "", "Save the found frame as a PNG file")
	seekCmd.Flags().BoolVar(&seekDisplay, "display", false, "Open the found frame in the default image viewer")
	seekCmd.Flags().BoolVar(&seekAdjust, "adjust", false, "Subtract the duration from mtime-derived creation times")
	seekCmd.Flags().BoolVar(&seekTimes, "times", false, "Show execution times")
	seekCmd.MarkFlagRequired("at")
}

// newLocator builds the production frame locator. Command tests swap this
// out to avoid shelling out to ffprobe/ffmpeg.
var newLocator = func(offset int) *frame.Locator {
	client := probe.NewClient(config.FFprobePath(), config.ProbeTimeout())
	return frame.New(client, config.FFmpegPath(), config.ProbeTimeout(), offset)
}

func runSeek(cmd *cobra.Command, args []string) error {
	folder := args[0]

	target, err := models.ParseQueryTime(seekAt)
	if err != nil {
		return err
	}

	records, _, err := loadOrScan(folder, seekAdjust, false, seekTimes)
	if err != nil {
		return err
	}

	start := time.Now()
	match, found := resolve.Timestamp(records, target)
	if !found {
		fmt.Println("No video found for the specified datetime.")
		return nil
	}

	fmt.Printf("Matched: %s\n", match.Record.Path)
	fmt.Printf("Elapsed: %s into the recording\n", match.Elapsed)

	img, ok := newLocator(seekOffset).At(match.Record.Path, match.Elapsed)
	if seekTimes {
		fmt.Printf("Found frame in %s\n", time.Since(start))
	}
	if !ok {
		fmt.Println("No frame to display.")
		return nil
	}

	// Display needs the frame on disk; fall back to the default name when
	// only --display was given.
	savePath := seekSave
	if savePath == "" && seekDisplay {
		savePath = "captured_frame.png"
	}

	if savePath != "" {
		if err := frame.SavePNG(img, savePath); err != nil {
			return err
		}
		fmt.Printf("Saved frame to %s\n", savePath)
	}

	if seekDisplay {
		if err := frame.Display(savePath); err != nil {
			return err
		}
	}

	return nil
}
