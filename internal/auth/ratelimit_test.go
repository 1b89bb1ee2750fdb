package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter() (*LoginLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	return newLoginLimiterAt(clock.Now), clock
}

func TestLimiterLocksAfterFiveFailures(t *testing.T) {
	l, _ := newTestLimiter()

	for i := 0; i < 4; i++ {
		l.RecordFailure("admin@zidalco.com")
		allowed, _ := l.Check("admin@zidalco.com")
		assert.True(t, allowed, "attempt %d should still be allowed", i+1)
	}

	l.RecordFailure("admin@zidalco.com")
	allowed, retryAfter := l.Check("admin@zidalco.com")
	assert.False(t, allowed)
	assert.Equal(t, 30*time.Minute, retryAfter)
}

func TestLimiterUnlocksAfterLockout(t *testing.T) {
	l, clock := newTestLimiter()

	for i := 0; i < 5; i++ {
		l.RecordFailure("admin@zidalco.com")
	}
	allowed, _ := l.Check("admin@zidalco.com")
	require.False(t, allowed)

	clock.Advance(30*time.Minute + time.Second)
	allowed, _ = l.Check("admin@zidalco.com")
	assert.True(t, allowed)

	// history was cleared with the lockout
	assert.Equal(t, 5, l.Remaining("admin@zidalco.com"))
}

func TestLimiterWindowExpiry(t *testing.T) {
	l, clock := newTestLimiter()

	for i := 0; i < 4; i++ {
		l.RecordFailure("admin@zidalco.com")
	}
	assert.Equal(t, 1, l.Remaining("admin@zidalco.com"))

	// a failure after the window starts a fresh count instead of locking
	clock.Advance(16 * time.Minute)
	l.RecordFailure("admin@zidalco.com")
	allowed, _ := l.Check("admin@zidalco.com")
	assert.True(t, allowed)
	assert.Equal(t, 4, l.Remaining("admin@zidalco.com"))
}

func TestLimiterSuccessClearsHistory(t *testing.T) {
	l, _ := newTestLimiter()

	for i := 0; i < 4; i++ {
		l.RecordFailure("admin@zidalco.com")
	}
	l.RecordSuccess("admin@zidalco.com")

	assert.Equal(t, 5, l.Remaining("admin@zidalco.com"))
	l.RecordFailure("admin@zidalco.com")
	allowed, _ := l.Check("admin@zidalco.com")
	assert.True(t, allowed)
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter()

	for i := 0; i < 5; i++ {
		l.RecordFailure("first@zidalco.com")
	}
	blocked, _ := l.Check("first@zidalco.com")
	assert.False(t, blocked)

	allowed, _ := l.Check("second@zidalco.com")
	assert.True(t, allowed)
}
