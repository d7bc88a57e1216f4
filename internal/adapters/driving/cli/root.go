package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ragscholar/scholar-cli/internal/core/ports/driving"
	"github.com/ragscholar/scholar-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// verbose enables debug logging to stderr.
var verbose bool

// Services the commands call. Wired once at startup via SetServices.
var (
	statusService      driving.StatusService
	classService       driving.ClassService
	documentService    driving.DocumentService
	chatService        driving.ChatService
	achievementService driving.AchievementService
	achievementPoller  driving.Poller
)

// Services bundles the driving ports the CLI depends on.
type Services struct {
	Status       driving.StatusService
	Class        driving.ClassService
	Document     driving.DocumentService
	Chat         driving.ChatService
	Achievements driving.AchievementService
	Poller       driving.Poller
}

// cliLocation is the timezone timestamps are rendered in.
var cliLocation = time.Local

// SetTimezone sets the user's preferred timezone for timestamp
// rendering.
func SetTimezone(loc *time.Location) {
	if loc != nil {
		cliLocation = loc
	}
}

// SetServices wires the service implementations into the command tree.
func SetServices(s Services) {
	statusService = s.Status
	classService = s.Class
	documentService = s.Document
	chatService = s.Chat
	achievementService = s.Achievements
	achievementPoller = s.Poller
}

var rootCmd = &cobra.Command{
	Use:   "scholar",
	Short: "Study assistant for your own course material",
	Long: `Scholar is a retrieval-augmented study assistant.

Upload lecture notes, slides and papers, organise them into classes,
and ask questions answered from your own material with citations.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
