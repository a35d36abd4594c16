package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

const defaultScanWindow = 30 * time.Second

// ScanGuard suppresses repeated checkpoint scans.
// Key format: scan:<pass_id>:<action>
type ScanGuard struct {
	client *redis.Client
	window time.Duration
}

var _ ports.ScanGuard = (*ScanGuard)(nil)

// NewScanGuard wraps client. A non-positive window falls back to 30s.
func NewScanGuard(client *redis.Client, window time.Duration) *ScanGuard {
	if window <= 0 {
		window = defaultScanWindow
	}
	return &ScanGuard{client: client, window: window}
}

// Acquire reports whether this pass and action were not seen within the
// window, and claims the slot if so.
func (g *ScanGuard) Acquire(ctx context.Context, passID, action string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(passID, action), "1", g.window).Result()
	if err != nil {
		return false, fmt.Errorf("scan guard: %w", err)
	}
	return ok, nil
}

func (g *ScanGuard) key(passID, action string) string {
	return fmt.Sprintf("scan:%s:%s", passID, action)
}
