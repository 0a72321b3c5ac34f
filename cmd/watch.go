package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/vidseek/vidseek/internal/cache"
	"github.com/vidseek/vidseek/internal/config"
	"github.com/vidseek/vidseek/internal/models"
	"github.com/vidseek/vidseek/internal/probe"
)

var (
	watchAdjust   bool
	watchDebounce int
)

var watchCmd = &cobra.Command{
	Use:   "watch <folder>",
	Short: "Keep the cache in sync while the folder changes",
	Long: `Watch a folder for new, changed or removed video files and refresh the
cached index after each burst of changes. This replaces deleting the cache
by hand when footage is still being written.

Runs until interrupted.

Example:
  vidseek watch /mnt/footage --debounce 5`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchAdjust, "adjust", false, "Subtract the duration from mtime-derived creation times")
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 2, "Seconds to wait after the last change before rescanning")
}

func runWatch(cmd *cobra.Command, args []string) error {
	folder := args[0]

	if !probe.IsAvailable(config.FFprobePath()) {
		return fmt.Errorf("%s not found on PATH", config.FFprobePath())
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, folder); err != nil {
		return err
	}

	c := cache.New(config.CacheFile())
	rescan := func() ([]models.VideoRecord, error) {
		return newScanner(watchAdjust).Scan(folder)
	}

	// Initial scan so the cache reflects the folder before any event.
	records, err := c.Refresh(rescan)
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d video(s); watching %s\n", len(records), folder)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	debounce := time.Duration(watchDebounce) * time.Second
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(watcher, event) {
				continue
			}
			// Collapse bursts of events into one rescan.
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Warning: watcher error: %v\n", err)

		case <-timer.C:
			records, err := c.Refresh(rescan)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: rescan failed: %v\n", err)
				continue
			}
			fmt.Printf("Reindexed %d video(s)\n", len(records))

		case <-interrupt:
			fmt.Println("\nStopped watching")
			return nil
		}
	}
}

// watchTree registers the folder and every subdirectory with the watcher.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
		}
		return nil
	})
}

// relevantEvent reports whether an event should trigger a rescan. New
// directories are added to the watch set as a side effect.
func relevantEvent(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			watcher.Add(event.Name)
			return true
		}
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(event.Name), "."))
	for _, known := range config.Extensions() {
		if ext == strings.ToLower(strings.TrimPrefix(known, ".")) {
			return true
		}
	}
	return false
}
