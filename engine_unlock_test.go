package sanctum

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestUnlockAppCorrectPIN(t *testing.T) {
	engine, _, _ := newTestEngine(t, testConfig())
	signUpTestAccount(t, engine)
	ctx := context.Background()

	if err := engine.LockApp(ctx); err != nil {
		t.Fatalf("LockApp failed: %v", err)
	}

	ok, err := engine.UnlockApp(ctx, "482913")
	if err != nil {
		t.Fatalf("UnlockApp failed: %v", err)
	}
	if !ok {
		t.Fatal("expected unlock to succeed")
	}
	if snap := engine.Snapshot(); !snap.IsUnlocked {
		t.Fatal("expected unlocked session")
	}
}

func TestUnlockAppWrongPIN(t *testing.T) {
	engine, _, _ := newTestEngine(t, testConfig())
	signUpTestAccount(t, engine)
	ctx := context.Background()

	if err := engine.LockApp(ctx); err != nil {
		t.Fatalf("LockApp failed: %v", err)
	}

	ok, err := engine.UnlockApp(ctx, "000000")
	if err != nil {
		t.Fatalf("UnlockApp returned error: %v", err)
	}
	if ok {
		t.Fatal("expected unlock to fail")
	}
	if snap := engine.Snapshot(); snap.IsUnlocked {
		t.Fatal("expected session to stay locked")
	}
}

func TestUnlockAppNoAccount(t *testing.T) {
	engine, _, _ := newTestEngine(t, testConfig())

	ok, err := engine.UnlockApp(context.Background(), "482913")
	if err != nil {
		t.Fatalf("UnlockApp returned error: %v", err)
	}
	if ok {
		t.Fatal("expected unlock to fail without an account")
	}
}

func TestUnlockAppLockout(t *testing.T) {
	cfg := testConfig()
	engine, _, clock := newTestEngine(t, cfg)
	signUpTestAccount(t, engine)
	ctx := context.Background()

	if err := engine.LockApp(ctx); err != nil {
		t.Fatalf("LockApp failed: %v", err)
	}

	var lastErr error
	for i := 0; i < cfg.Lockout.Threshold; i++ {
		_, lastErr = engine.UnlockApp(ctx, "000000")
	}
	if !errors.Is(lastErr, ErrUnlockLockedOut) {
		t.Fatalf("attempt %d: got %v, want ErrUnlockLockedOut", cfg.Lockout.Threshold, lastErr)
	}

	// The correct PIN is refused while the cooldown runs and no argon2 work
	// happens for it.
	if _, err := engine.UnlockApp(ctx, "482913"); !errors.Is(err, ErrUnlockLockedOut) {
		t.Fatalf("during cooldown: got %v, want ErrUnlockLockedOut", err)
	}

	clock.Advance(cfg.Lockout.Cooldown + time.Second)

	ok, err := engine.UnlockApp(ctx, "482913")
	if err != nil || !ok {
		t.Fatalf("after cooldown: ok=%v err=%v", ok, err)
	}
}

func TestUnlockLockoutSurvivesRestart(t *testing.T) {
	cfg := testConfig()
	engine, store, clock := newTestEngine(t, cfg)
	signUpTestAccount(t, engine)
	ctx := context.Background()

	if err := engine.LockApp(ctx); err != nil {
		t.Fatalf("LockApp failed: %v", err)
	}
	for i := 0; i < cfg.Lockout.Threshold; i++ {
		_, _ = engine.UnlockApp(ctx, "000000")
	}

	// Force-quitting the app must not reset the attempt budget.
	restarted, err := New().
		WithConfig(cfg).
		WithStorage(store).
		WithClock(clock.Now).
		WithLogger(func(string, ...any) {}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer restarted.Close()

	if err := restarted.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := restarted.UnlockApp(ctx, "482913"); !errors.Is(err, ErrUnlockLockedOut) {
		t.Fatalf("after restart: got %v, want ErrUnlockLockedOut", err)
	}
}

func TestSignInResetsUnlockCounterOnlyViaSignOut(t *testing.T) {
	cfg := testConfig()
	engine, _, _ := newTestEngine(t, cfg)
	signUpTestAccount(t, engine)
	ctx := context.Background()

	if err := engine.LockApp(ctx); err != nil {
		t.Fatalf("LockApp failed: %v", err)
	}
	for i := 0; i < cfg.Lockout.Threshold-1; i++ {
		if _, err := engine.UnlockApp(ctx, "000000"); err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}

	// A successful unlock resets the counter.
	if ok, err := engine.UnlockApp(ctx, "482913"); err != nil || !ok {
		t.Fatalf("unlock: ok=%v err=%v", ok, err)
	}
	if err := engine.LockApp(ctx); err != nil {
		t.Fatalf("LockApp failed: %v", err)
	}
	for i := 0; i < cfg.Lockout.Threshold-1; i++ {
		if _, err := engine.UnlockApp(ctx, "000000"); err != nil {
			t.Fatalf("expected fresh budget after successful unlock, attempt %d: %v", i, err)
		}
	}
}
