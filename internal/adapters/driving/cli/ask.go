package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askSessionID string
	askNew       bool
	askJSON      bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your material",
	Long: `Sends one question through the chat pipeline and prints the answer
with citations. The first question of a conversation creates a session
automatically; later questions continue it.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askSessionID, "session", "", "Continue a specific session")
	askCmd.Flags().BoolVar(&askNew, "new", false, "Start a new conversation")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Output the reply as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	ctx := context.Background()

	switch {
	case askSessionID != "":
		if err := chatService.RefreshSessions(ctx); err != nil {
			return fmt.Errorf("fetching sessions: %w", err)
		}
		if err := chatService.SwitchSession(ctx, askSessionID); err != nil {
			return fmt.Errorf("switching to session %s: %w", askSessionID, err)
		}
	case askNew:
		if err := chatService.NewChat(ctx); err != nil {
			return fmt.Errorf("starting new conversation: %w", err)
		}
	}

	reply, err := chatService.Send(ctx, args[0])
	if err != nil {
		// A synthetic reply still explains what went wrong.
		if reply != nil && !askJSON {
			cmd.Println(reply.Content)
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(reply, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding reply: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(reply.Content)
	if len(reply.Citations) > 0 {
		cmd.Println("\nSources:")
		for i := range reply.Citations {
			cmd.Printf("  (%d) %s: %s\n", i+1, reply.Citations[i].Source, reply.Citations[i].Preview)
		}
	}

	if session := chatService.ActiveSession(); session != nil {
		cmd.Printf("\nSession: %s (%s)\n", session.Name, session.ID)
	}
	return nil
}
