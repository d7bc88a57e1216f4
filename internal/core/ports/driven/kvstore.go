package driven

import "context"

// Well-known KV keys.
const (
	// KeyLastSessionID remembers the last active backend session so a
	// restart can restore the conversation.
	KeyLastSessionID = "last_session_id"

	// KeyActiveClassID remembers the selected class across restarts.
	KeyActiveClassID = "active_class_id"

	// KeyTimezone is the user's preferred IANA timezone.
	KeyTimezone = "timezone"

	// KeyLastAchievementPoll records when the achievement poller last
	// ran, so a restart resumes the schedule instead of resetting it.
	KeyLastAchievementPoll = "last_achievement_poll"
)

// KVStore persists small string values. All entries are best-effort:
// a missing key is returned as an empty string, never an error.
type KVStore interface {
	// Put stores a value under a key.
	Put(ctx context.Context, key, value string) error

	// Get retrieves the value for a key, empty string if absent.
	Get(ctx context.Context, key string) (string, error)

	// Delete removes a key.
	Delete(ctx context.Context, key string) error
}
