package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/SeakMengs/CourseCert/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func newTestLimiter(t *testing.T, limit int, enabled bool) (*FixedWindowRateLimiter, *time.Time) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: limit,
		TimeFrame:            time.Minute,
		Enabled:              enabled,
	}, zaptest.NewLogger(t).Sugar())
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestFixedWindowRateLimiter(t *testing.T) {
	rl, now := newTestLimiter(t, 2, true)

	ok, _ := rl.Allow("1.1.1.1")
	assert.True(t, ok)
	ok, _ = rl.Allow("1.1.1.1")
	assert.True(t, ok)

	ok, retryAfter := rl.Allow("1.1.1.1")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retryAfter)

	ok, _ = rl.Allow("2.2.2.2")
	assert.True(t, ok, "keys are counted separately")

	*now = now.Add(20 * time.Second)
	ok, retryAfter = rl.Allow("1.1.1.1")
	assert.False(t, ok)
	assert.Equal(t, 40*time.Second, retryAfter)

	*now = now.Add(40 * time.Second)
	ok, _ = rl.Allow("1.1.1.1")
	assert.True(t, ok, "window resets after the time frame")
}

func TestFixedWindowRateLimiterDisabled(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, false)

	for i := 0; i < 10; i++ {
		ok, _ := rl.Allow("1.1.1.1")
		assert.True(t, ok)
	}
}

func TestFixedWindowRateLimiterSweepsExpiredWindows(t *testing.T) {
	rl, now := newTestLimiter(t, 5, true)

	rl.Allow("a")
	rl.Allow("b")
	*now = now.Add(2 * time.Minute)
	rl.Allow("c")

	assert.Len(t, rl.windows, 1)
}

func TestFixedWindowRateLimiterConcurrent(t *testing.T) {
	rl, _ := newTestLimiter(t, 50, true)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := rl.Allow("shared"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}
