package limiters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nivora-app/sanctum/storage"
)

// LockoutConfig holds configuration for the failed-attempt lockout limiter.
type LockoutConfig struct {
	Enabled   bool
	Threshold int
	Cooldown  time.Duration
}

// ErrLockoutUnavailable indicates the counter backend is unreachable.
var ErrLockoutUnavailable = errors.New("lockout backend unavailable")

// Lockout tracks consecutive secret-verification failures per operation and
// reports when the threshold is reached. Counters live in the same key-value
// store as the session state, under prefix-scoped keys.
type Lockout struct {
	store  storage.Store
	prefix string
	config LockoutConfig
	now    func() time.Time
}

type counterRecord struct {
	Count   int   `json:"count"`
	ResetAt int64 `json:"resetAt"` // unix seconds; 0 = no expiry recorded yet
}

// NewLockout creates a lockout limiter. now is injectable for tests; nil
// means time.Now.
func NewLockout(store storage.Store, prefix string, cfg LockoutConfig, now func() time.Time) *Lockout {
	if now == nil {
		now = time.Now
	}
	return &Lockout{store: store, prefix: prefix, config: cfg, now: now}
}

func (l *Lockout) key(op string) string {
	return l.prefix + ":lock:" + op
}

// Blocked reports whether op is currently locked out, and if so for how much
// longer.
func (l *Lockout) Blocked(ctx context.Context, op string) (bool, time.Duration, error) {
	if !l.config.Enabled {
		return false, 0, nil
	}

	rec, ok, err := l.read(ctx, op)
	if err != nil {
		return false, 0, err
	}
	if !ok {
		return false, 0, nil
	}

	if rec.Count < l.config.Threshold {
		return false, 0, nil
	}

	remaining := time.Unix(rec.ResetAt, 0).Sub(l.now())
	if remaining <= 0 {
		// Cooldown elapsed; the stale counter is cleared lazily on the next
		// RecordFailure or Reset.
		return false, 0, nil
	}

	return true, remaining, nil
}

// RecordFailure increments the failure counter for op. Returns true when the
// threshold has been reached and the operation is now locked out.
func (l *Lockout) RecordFailure(ctx context.Context, op string) (bool, error) {
	if !l.config.Enabled {
		return false, nil
	}

	rec, ok, err := l.read(ctx, op)
	if err != nil {
		return false, err
	}

	now := l.now()
	if !ok || (rec.ResetAt > 0 && now.Unix() >= rec.ResetAt) {
		rec = counterRecord{}
	}

	rec.Count++
	if rec.Count == 1 {
		// The expiry is fixed at the first failure so the window rolls
		// rather than extending with every attempt.
		rec.ResetAt = now.Add(l.config.Cooldown).Unix()
	}

	if err := l.write(ctx, op, rec); err != nil {
		return false, err
	}

	return rec.Count >= l.config.Threshold, nil
}

// Reset clears the failure counter for op, e.g. after a successful
// verification.
func (l *Lockout) Reset(ctx context.Context, op string) error {
	if !l.config.Enabled {
		return nil
	}

	if err := l.store.Remove(ctx, l.key(op)); err != nil {
		return fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
	}
	return nil
}

// FailureCount returns the current counter value for op. Expired windows
// read as zero.
func (l *Lockout) FailureCount(ctx context.Context, op string) (int, error) {
	if !l.config.Enabled {
		return 0, nil
	}

	rec, ok, err := l.read(ctx, op)
	if err != nil {
		return 0, err
	}
	if !ok || (rec.ResetAt > 0 && l.now().Unix() >= rec.ResetAt) {
		return 0, nil
	}
	return rec.Count, nil
}

func (l *Lockout) read(ctx context.Context, op string) (counterRecord, bool, error) {
	blob, ok, err := l.store.Get(ctx, l.key(op))
	if err != nil {
		return counterRecord{}, false, fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
	}
	if !ok {
		return counterRecord{}, false, nil
	}

	var rec counterRecord
	if err := json.Unmarshal([]byte(blob), &rec); err != nil {
		// A corrupt counter fails open; it only guards retry pacing.
		return counterRecord{}, false, nil
	}
	return rec, true, nil
}

func (l *Lockout) write(ctx context.Context, op string, rec counterRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := l.store.Set(ctx, l.key(op), string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
	}
	return nil
}
