package driving

import (
	"context"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

// AchievementService tracks the user's profile and surfaces newly
// unlocked achievements. This is a watched-diff pattern: every refresh
// re-fetches the full profile, there is no push channel.
type AchievementService interface {
	// Refresh fetches the profile and returns achievements that
	// unlocked since the previous refresh. Newly unlocked achievements
	// are also queued as pending notifications.
	Refresh(ctx context.Context) ([]domain.Achievement, error)

	// Profile returns the last fetched profile, nil before the first
	// successful refresh.
	Profile() *domain.Profile

	// Pending returns queued unlock notifications awaiting dismissal.
	Pending() []domain.Achievement

	// Dismiss removes one pending notification by achievement id.
	Dismiss(id string)
}

// Poller runs a recurring background refresh for long-lived frontends.
type Poller interface {
	// Start begins the poll loop. Blocks until the context is
	// cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the poll loop.
	Stop() error

	// SetOnUnlock registers a callback invoked for every achievement
	// that unlocks during a poll. The caller surfaces the
	// notification and dismisses it explicitly.
	SetOnUnlock(fn func(domain.Achievement))
}
