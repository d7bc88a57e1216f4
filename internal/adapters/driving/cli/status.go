package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend and registry status",
	Long:  `Checks backend reachability and summarises classes, documents and sessions.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if statusService == nil {
		return errors.New("status service not configured")
	}

	report, err := statusService.Check(context.Background())
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if report.BackendReachable {
		cmd.Printf("Backend:   reachable\n")
	} else {
		cmd.Printf("Backend:   unreachable (%s)\n", report.BackendError)
	}
	cmd.Printf("Classes:   %d\n", report.Classes)
	cmd.Printf("Documents: %d\n", report.Documents)
	cmd.Printf("Sessions:  %d\n", report.Sessions)
	return nil
}
