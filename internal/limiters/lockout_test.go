package limiters

import (
	"context"
	"testing"
	"time"

	"github.com/nivora-app/sanctum/storage"
)

func testLockout(t *testing.T, threshold int, cooldown time.Duration) (*Lockout, *time.Time) {
	t.Helper()

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	l := NewLockout(storage.NewMemory(), "nv", LockoutConfig{
		Enabled:   true,
		Threshold: threshold,
		Cooldown:  cooldown,
	}, func() time.Time { return now })

	return l, &now
}

func TestLockoutThreshold(t *testing.T) {
	l, _ := testLockout(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		locked, err := l.RecordFailure(ctx, "unlock")
		if err != nil {
			t.Fatalf("RecordFailure error: %v", err)
		}
		if locked {
			t.Fatalf("locked after %d failures, threshold is 3", i+1)
		}
	}

	locked, err := l.RecordFailure(ctx, "unlock")
	if err != nil {
		t.Fatalf("RecordFailure error: %v", err)
	}
	if !locked {
		t.Fatal("expected lockout at threshold")
	}

	blocked, remaining, err := l.Blocked(ctx, "unlock")
	if err != nil {
		t.Fatalf("Blocked error: %v", err)
	}
	if !blocked {
		t.Fatal("expected Blocked after threshold")
	}
	if remaining <= 0 || remaining > time.Minute {
		t.Fatalf("unexpected remaining cooldown %v", remaining)
	}
}

func TestLockoutCooldownExpires(t *testing.T) {
	l, now := testLockout(t, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := l.RecordFailure(ctx, "unlock"); err != nil {
			t.Fatalf("RecordFailure error: %v", err)
		}
	}

	*now = now.Add(61 * time.Second)

	blocked, _, err := l.Blocked(ctx, "unlock")
	if err != nil {
		t.Fatalf("Blocked error: %v", err)
	}
	if blocked {
		t.Fatal("expected cooldown to have expired")
	}

	count, err := l.FailureCount(ctx, "unlock")
	if err != nil {
		t.Fatalf("FailureCount error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected expired window to read zero, got %d", count)
	}

	// The first failure after expiry restarts the window.
	locked, err := l.RecordFailure(ctx, "unlock")
	if err != nil {
		t.Fatalf("RecordFailure error: %v", err)
	}
	if locked {
		t.Fatal("expected fresh window after expiry")
	}
}

func TestLockoutReset(t *testing.T) {
	l, _ := testLockout(t, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := l.RecordFailure(ctx, "unlock"); err != nil {
			t.Fatalf("RecordFailure error: %v", err)
		}
	}
	if err := l.Reset(ctx, "unlock"); err != nil {
		t.Fatalf("Reset error: %v", err)
	}

	blocked, _, err := l.Blocked(ctx, "unlock")
	if err != nil {
		t.Fatalf("Blocked error: %v", err)
	}
	if blocked {
		t.Fatal("expected Reset to clear the lockout")
	}
}

func TestLockoutDisabled(t *testing.T) {
	l := NewLockout(storage.NewMemory(), "nv", LockoutConfig{Enabled: false, Threshold: 1, Cooldown: time.Minute}, nil)
	ctx := context.Background()

	locked, err := l.RecordFailure(ctx, "unlock")
	if err != nil || locked {
		t.Fatalf("disabled limiter should never lock: locked=%v err=%v", locked, err)
	}
}

func TestLockoutOperationsIsolated(t *testing.T) {
	l, _ := testLockout(t, 1, time.Minute)
	ctx := context.Background()

	if _, err := l.RecordFailure(ctx, "unlock"); err != nil {
		t.Fatalf("RecordFailure error: %v", err)
	}

	blocked, _, err := l.Blocked(ctx, "signin")
	if err != nil {
		t.Fatalf("Blocked error: %v", err)
	}
	if blocked {
		t.Fatal("failure on one operation must not lock another")
	}
}
