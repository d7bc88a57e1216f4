package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driven"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driving"
)

// Ensure AchievementService implements the interface.
var _ driving.AchievementService = (*AchievementService)(nil)

// AchievementService tracks the user's profile and surfaces newly
// unlocked achievements by diffing successive fetches. The backend
// offers no push channel, so unlock detection is entirely client-side.
type AchievementService struct {
	backend driven.BackendClient

	mu      sync.Mutex
	profile *domain.Profile
	pending []domain.Achievement
}

// NewAchievementService creates a new achievement service.
func NewAchievementService(backend driven.BackendClient) *AchievementService {
	return &AchievementService{backend: backend}
}

// Refresh fetches the profile and returns achievements that unlocked
// since the previous refresh. New unlocks are queued as pending
// notifications until dismissed.
func (s *AchievementService) Refresh(ctx context.Context) ([]domain.Achievement, error) {
	profile, err := s.backend.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("refreshing profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var prev []domain.Achievement
	if s.profile != nil {
		prev = s.profile.Achievements
	}

	var newly []domain.Achievement
	if s.profile != nil {
		// The first fetch establishes a baseline; everything already
		// unlocked then is old news, not a notification.
		newly = profile.NewlyUnlocked(prev)
	}
	s.profile = profile

	for _, a := range newly {
		if !s.isPendingLocked(a.ID) {
			s.pending = append(s.pending, a)
		}
	}
	return newly, nil
}

// Profile returns the last fetched profile, nil before the first
// successful refresh.
func (s *AchievementService) Profile() *domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	profile := *s.profile
	return &profile
}

// Pending returns queued unlock notifications awaiting dismissal.
func (s *AchievementService) Pending() []domain.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Achievement, len(s.pending))
	copy(out, s.pending)
	return out
}

// Dismiss removes one pending notification by achievement id.
func (s *AchievementService) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pending {
		if s.pending[i].ID == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

func (s *AchievementService) isPendingLocked(id string) bool {
	for i := range s.pending {
		if s.pending[i].ID == id {
			return true
		}
	}
	return false
}
