package auth

import (
	"sync"
	"time"
)

const (
	maxLoginAttempts = 5
	attemptWindow    = 15 * time.Minute
	lockoutDuration  = 30 * time.Minute
)

type attemptState struct {
	count       int
	windowStart time.Time
	lockedUntil time.Time
}

// LoginLimiter throttles login attempts per client IP.
// Five failures within a 15 minute window lock the key out for 30 minutes.
// A successful login clears the key immediately.
type LoginLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptState
	now      func() time.Time
}

func NewLoginLimiter() *LoginLimiter {
	l := &LoginLimiter{
		attempts: make(map[string]*attemptState),
		now:      time.Now,
	}
	go l.cleanup()
	return l
}

// newLoginLimiterAt builds a limiter with a fixed clock and no background
// cleanup; tests use it.
func newLoginLimiterAt(now func() time.Time) *LoginLimiter {
	return &LoginLimiter{
		attempts: make(map[string]*attemptState),
		now:      now,
	}
}

// Check reports whether the key may attempt a login. When blocked it also
// returns how long until the lockout lifts.
func (l *LoginLimiter) Check(key string) (allowed bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.attempts[key]
	if !ok {
		return true, 0
	}

	now := l.now()
	if !st.lockedUntil.IsZero() {
		if now.Before(st.lockedUntil) {
			return false, st.lockedUntil.Sub(now)
		}
		delete(l.attempts, key)
		return true, 0
	}
	if now.Sub(st.windowStart) > attemptWindow {
		delete(l.attempts, key)
	}
	return true, 0
}

// RecordFailure counts a failed attempt and locks the key after the fifth
// failure inside the window.
func (l *LoginLimiter) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	st, ok := l.attempts[key]
	if !ok || now.Sub(st.windowStart) > attemptWindow {
		l.attempts[key] = &attemptState{count: 1, windowStart: now}
		return
	}

	st.count++
	if st.count >= maxLoginAttempts {
		st.lockedUntil = now.Add(lockoutDuration)
	}
}

// RecordSuccess clears any failure history for the key.
func (l *LoginLimiter) RecordSuccess(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}

// Remaining returns how many attempts the key has left in the current
// window.
func (l *LoginLimiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.attempts[key]
	if !ok || l.now().Sub(st.windowStart) > attemptWindow {
		return maxLoginAttempts
	}
	if n := maxLoginAttempts - st.count; n > 0 {
		return n
	}
	return 0
}

func (l *LoginLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := l.now()
		for key, st := range l.attempts {
			expired := now.Sub(st.windowStart) > attemptWindow
			unlocked := !st.lockedUntil.IsZero() && now.After(st.lockedUntil)
			if (st.lockedUntil.IsZero() && expired) || unlocked {
				delete(l.attempts, key)
			}
		}
		l.mu.Unlock()
	}
}
