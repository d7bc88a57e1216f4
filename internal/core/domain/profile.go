package domain

import "time"

// Achievement is a gamified milestone tracked by the backend.
type Achievement struct {
	// ID is the unique identifier for the achievement.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Description explains how the achievement is earned.
	Description string `json:"description"`

	// Points is the point value awarded on unlock.
	Points int `json:"points"`

	// UnlockedAt is when the achievement was earned, nil while locked.
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// Unlocked returns true if the achievement has been earned.
func (a *Achievement) Unlocked() bool {
	return a.UnlockedAt != nil
}

// Profile is the user's backend profile including gamified usage.
type Profile struct {
	// UserID is the backend user identifier.
	UserID string `json:"user_id"`

	// DisplayName is the user's display name.
	DisplayName string `json:"display_name"`

	// Points is the total accumulated points.
	Points int `json:"points"`

	// Streak is the current daily-usage streak in days.
	Streak int `json:"streak"`

	// Timezone is the user's preferred IANA timezone.
	Timezone string `json:"timezone"`

	// Achievements is the full achievement list, locked and unlocked.
	Achievements []Achievement `json:"achievements"`
}

// NewlyUnlocked compares a previous achievement list against this
// profile's and returns achievements whose UnlockedAt transitioned
// from nil to non-nil. Achievements absent from prev but already
// unlocked here also count as new.
func (p *Profile) NewlyUnlocked(prev []Achievement) []Achievement {
	wasUnlocked := make(map[string]bool, len(prev))
	for i := range prev {
		wasUnlocked[prev[i].ID] = prev[i].Unlocked()
	}

	var unlocked []Achievement
	for i := range p.Achievements {
		if p.Achievements[i].Unlocked() && !wasUnlocked[p.Achievements[i].ID] {
			unlocked = append(unlocked, p.Achievements[i])
		}
	}
	return unlocked
}
