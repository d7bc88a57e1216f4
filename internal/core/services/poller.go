package services

import (
	"context"
	"sync"
	"time"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driven"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driving"
	"github.com/ragscholar/scholar-cli/internal/logger"
)

// DefaultPollInterval is how often the poller refreshes achievements
// when no interval is configured.
const DefaultPollInterval = 2 * time.Minute

// Ensure AchievementPoller implements the interface.
var _ driving.Poller = (*AchievementPoller)(nil)

// AchievementPoller drives periodic achievement refreshes for
// long-lived frontends. The last poll time is persisted so a restart
// resumes the schedule instead of polling immediately.
type AchievementPoller struct {
	achievements driving.AchievementService
	kv           driven.KVStore
	interval     time.Duration

	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	wg       sync.WaitGroup
	onUnlock func(domain.Achievement)
}

// NewAchievementPoller creates a poller with the given interval. A
// non-positive interval falls back to the default.
func NewAchievementPoller(achievements driving.AchievementService, kv driven.KVStore, interval time.Duration) *AchievementPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &AchievementPoller{
		achievements: achievements,
		kv:           kv,
		interval:     interval,
	}
}

// SetOnUnlock registers a callback invoked for every achievement that
// unlocks during a poll.
func (p *AchievementPoller) SetOnUnlock(fn func(domain.Achievement)) {
	p.mu.Lock()
	p.onUnlock = fn
	p.mu.Unlock()
}

// Start begins the poll loop. This method blocks until the context is
// cancelled or Stop is called.
func (p *AchievementPoller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil // Already running
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.mu.Unlock()

	// Resume the schedule from the persisted last poll time.
	first := p.interval
	if last, err := p.kv.Get(ctx, driven.KeyLastAchievementPoll); err == nil && last != "" {
		if t, err := time.Parse(time.RFC3339, last); err == nil {
			elapsed := time.Since(t)
			if elapsed >= p.interval {
				first = 0
			} else {
				first = p.interval - elapsed
			}
		}
	}

	timer := time.NewTimer(first)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.wg.Wait()
			return ctx.Err()
		case <-p.stopCh:
			p.wg.Wait()
			return nil
		case <-timer.C:
			p.poll(ctx)
			timer.Reset(p.interval)
		}
	}
}

// Stop gracefully shuts down the poll loop.
func (p *AchievementPoller) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	close(p.stopCh)
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

// poll runs one refresh and records the poll time.
func (p *AchievementPoller) poll(ctx context.Context) {
	p.wg.Add(1)
	defer p.wg.Done()

	newly, err := p.achievements.Refresh(ctx)
	if err != nil {
		logger.Warn("achievement poll: %v", err)
		return
	}
	p.mu.Lock()
	notify := p.onUnlock
	p.mu.Unlock()
	for _, a := range newly {
		logger.Info("achievement unlocked: %s (+%d points)", a.Name, a.Points)
		if notify != nil {
			notify(a)
		}
	}

	if err := p.kv.Put(ctx, driven.KeyLastAchievementPoll, time.Now().Format(time.RFC3339)); err != nil {
		logger.Warn("recording poll time: %v", err)
	}
}
