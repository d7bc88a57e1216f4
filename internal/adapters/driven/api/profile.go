package api

import (
	"context"
	"fmt"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

// GetProfile fetches the user profile including achievements.
func (c *Client) GetProfile(ctx context.Context) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.getJSON(ctx, "/profile", &profile); err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	return &profile, nil
}
