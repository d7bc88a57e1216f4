package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

var achievementsWatch bool

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show points, streak and achievements",
	Long: `Fetches the profile and lists achievements. With --watch, keeps
polling and announces achievements as they unlock.`,
	RunE: runAchievements,
}

func init() {
	achievementsCmd.Flags().BoolVarP(&achievementsWatch, "watch", "w", false, "Keep polling for new unlocks")
	rootCmd.AddCommand(achievementsCmd)
}

func runAchievements(cmd *cobra.Command, _ []string) error {
	if achievementService == nil {
		return errors.New("achievement service not configured")
	}

	ctx := context.Background()
	if _, err := achievementService.Refresh(ctx); err != nil {
		return fmt.Errorf("fetching profile: %w", err)
	}

	profile := achievementService.Profile()
	cmd.Printf("%s: %d points, %d day streak\n\n", profile.DisplayName, profile.Points, profile.Streak)

	for i := range profile.Achievements {
		a := &profile.Achievements[i]
		if a.Unlocked() {
			cmd.Printf("  [x] %s (+%d) - %s\n", a.Name, a.Points, a.Description)
		} else {
			cmd.Printf("  [ ] %s (+%d) - %s\n", a.Name, a.Points, a.Description)
		}
	}

	if !achievementsWatch {
		return nil
	}
	if achievementPoller == nil {
		return errors.New("achievement poller not configured")
	}

	cmd.Println("\nWatching for new achievements (Ctrl+C to stop)...")

	announce := func(a domain.Achievement) {
		cmd.Printf("Achievement unlocked: %s (+%d points) - %s\n", a.Name, a.Points, a.Description)
		achievementService.Dismiss(a.ID)
	}
	// Anything queued before the watch started is announced first.
	for _, a := range achievementService.Pending() {
		announce(a)
	}
	achievementPoller.SetOnUnlock(announce)
	return achievementPoller.Start(cmd.Context())
}
