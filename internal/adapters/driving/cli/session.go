package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sessionDeleteYes bool

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage chat sessions",
	Long:  `List, rename and delete chat sessions, or print a session's transcript.`,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chat sessions",
	RunE:  runSessionList,
}

var sessionRenameCmd = &cobra.Command{
	Use:   "rename [session-id] [name]",
	Short: "Rename a session",
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionRename,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionDelete,
}

var sessionMessagesCmd = &cobra.Command{
	Use:   "messages [session-id]",
	Short: "Print a session's transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionMessages,
}

func init() {
	sessionDeleteCmd.Flags().BoolVarP(&sessionDeleteYes, "yes", "y", false, "Skip the confirmation prompt")

	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionRenameCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	sessionCmd.AddCommand(sessionMessagesCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionList(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	if err := chatService.RefreshSessions(context.Background()); err != nil {
		return fmt.Errorf("fetching sessions: %w", err)
	}

	sessions := chatService.Sessions()
	if len(sessions) == 0 {
		cmd.Println("No sessions yet. Ask a question with: scholar ask")
		return nil
	}

	for i := range sessions {
		cmd.Printf("%s  %s\n", sessions[i].ID, sessions[i].Name)
		cmd.Printf("    Messages: %d", sessions[i].MessageCount)
		if sessions[i].ClassName != "" {
			cmd.Printf(", class: %s", sessions[i].ClassName)
		}
		if !sessions[i].UpdatedAt.IsZero() {
			cmd.Printf(", updated %s", sessions[i].UpdatedAt.In(cliLocation).Format("2006-01-02 15:04"))
		}
		cmd.Println()
	}
	return nil
}

func runSessionRename(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	ctx := context.Background()
	if err := chatService.RefreshSessions(ctx); err != nil {
		return fmt.Errorf("fetching sessions: %w", err)
	}
	if err := chatService.RenameSession(ctx, args[0], args[1]); err != nil {
		return fmt.Errorf("renaming session: %w", err)
	}

	cmd.Printf("Renamed session %s to %q\n", args[0], args[1])
	return nil
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	if !confirmAction(cmd, fmt.Sprintf("Delete session %s?", args[0]), sessionDeleteYes) {
		cmd.Println("Aborted")
		return nil
	}

	ctx := context.Background()
	if err := chatService.RefreshSessions(ctx); err != nil {
		return fmt.Errorf("fetching sessions: %w", err)
	}
	if err := chatService.DeleteSession(ctx, args[0]); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	cmd.Printf("Deleted session %s\n", args[0])
	return nil
}

func runSessionMessages(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	ctx := context.Background()
	if err := chatService.RefreshSessions(ctx); err != nil {
		return fmt.Errorf("fetching sessions: %w", err)
	}
	if err := chatService.SwitchSession(ctx, args[0]); err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	transcript := chatService.Transcript()
	if transcript.Empty() {
		cmd.Println("No messages in this session")
		return nil
	}

	for _, msg := range transcript {
		cmd.Printf("[%s] %s\n", msg.Role, msg.Content)
		for i := range msg.Citations {
			cmd.Printf("    (%d) %s: %s\n", i+1, msg.Citations[i].Source, msg.Citations[i].Preview)
		}
	}
	return nil
}
