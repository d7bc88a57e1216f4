package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ragscholar/scholar-cli/internal/adapters/driven/watcher"
)

// defaultWatchDir is the configured fallback directory, used when the
// command is run without an argument.
var defaultWatchDir string

// SetDefaultWatchDir sets the watch directory fallback from config.
func SetDefaultWatchDir(dir string) {
	defaultWatchDir = dir
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Auto-upload files dropped into a directory",
	Long: `Watches a directory and uploads every new file as a document.
If a class is active, uploads are assigned to it automatically.
Without an argument, the watch.dir config entry names the directory.
Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	dir := defaultWatchDir
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return errors.New("no watch directory: pass one or set watch.dir in the config")
	}

	w, err := watcher.NewUploadWatcher(dir, documentService, 0)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", dir)
	return w.Start(cmd.Context())
}
