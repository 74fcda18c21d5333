package commands

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// debounceDelay is how long to wait for more changes before rebuilding.
const debounceDelay = 500 * time.Millisecond

// NewWatchCmd creates the watch command: rebuild the registry and
// relationship map whenever repository files change. Every rebuild is
// a full deterministic pass; nothing is patched incrementally.
func NewWatchCmd() *cobra.Command {
	var (
		repoPath   string
		configPath string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild artifacts on file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(repoPath, configPath, outputDir)
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", ".", "Repository root to watch")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Processor config path (YAML)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "docs/nlu", "Directory for output artifacts")

	return cmd
}

func runWatch(repoPath, configPath, outputDir string) error {
	logger := slog.Default()

	pipeline := &Pipeline{Root: repoPath, ConfigPath: configPath, OutputDir: outputDir}

	rebuild := func() error {
		artifacts, err := pipeline.Run()
		if err != nil {
			return err
		}
		return artifacts.WriteCore(outputDir)
	}

	// Initial full build before watching; a broken config should fail
	// now, not on the first change event.
	if err := rebuild(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	root, err := filepath.Abs(repoPath)
	if err != nil {
		return fmt.Errorf("resolve repo path: %w", err)
	}
	absOutput, _ := filepath.Abs(outputDir)

	if err := addDirs(watcher, root, absOutput); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Watching for changes", slog.String("root", root))

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Output artifacts trigger events too; rebuilding on our
			// own writes would loop forever.
			if absOutput != "" && isUnder(event.Name, absOutput) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
			} else {
				timer.Reset(debounceDelay)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			logger.Info("Change detected, rebuilding")
			if err := rebuild(); err != nil {
				logger.Error("Rebuild failed", slog.String("error", err.Error()))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", slog.String("error", err.Error()))

		case <-sigCh:
			logger.Info("Shutting down watcher")
			return nil
		}
	}
}

// addDirs registers every directory under root with the watcher,
// skipping the output directory and dot directories.
func addDirs(watcher *fsnotify.Watcher, root, outputDir string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if p != root && (name == ".git" || name == "node_modules" || name == "__pycache__") {
			return filepath.SkipDir
		}
		if outputDir != "" && isUnder(p, outputDir) {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}

func isUnder(p, dir string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
