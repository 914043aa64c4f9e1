package sanctum

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestResetCredentialsSuccess(t *testing.T) {
	engine, _, _ := newTestEngine(t, testConfig())
	signUpTestAccount(t, engine)
	ctx := context.Background()

	challenge := RecoveryChallenge{SecurityImage: "3", Answer: "Biscuit"}
	update := ProfileUpdate{
		Password: strPtr("battery-staple-correct-horse"),
		PIN:      strPtr("111222"),
	}
	if err := engine.ResetCredentials(ctx, challenge, update); err != nil {
		t.Fatalf("ResetCredentials failed: %v", err)
	}

	if !engine.Snapshot().HasChangedPassword {
		t.Fatal("expected hasChangedPassword flag")
	}
	if err := engine.SignIn(ctx, SignInRequest{Username: "alice", Password: "battery-staple-correct-horse"}); err != nil {
		t.Fatalf("SignIn with reset password: %v", err)
	}
}

func TestResetCredentialsAnswerCaseInsensitive(t *testing.T) {
	engine, _, _ := newTestEngine(t, testConfig())
	signUpTestAccount(t, engine)
	ctx := context.Background()

	// Enrolled as "Biscuit"; submitted with different casing and padding.
	challenge := RecoveryChallenge{SecurityImage: "3", Answer: "  bIsCuIt "}
	if err := engine.ResetCredentials(ctx, challenge, ProfileUpdate{PIN: strPtr("111222")}); err != nil {
		t.Fatalf("ResetCredentials failed: %v", err)
	}
}

func TestResetCredentialsImageMustMatchExactly(t *testing.T) {
	engine, _, _ := newTestEngine(t, testConfig())
	signUpTestAccount(t, engine)
	ctx := context.Background()

	challenge := RecoveryChallenge{SecurityImage: "4", Answer: "Biscuit"}
	err := engine.ResetCredentials(ctx, challenge, ProfileUpdate{PIN: strPtr("111222")})
	if !errors.Is(err, ErrRecoveryChallengeFailed) {
		t.Fatalf("wrong image: got %v, want ErrRecoveryChallengeFailed", err)
	}
}

func TestResetCredentialsWrongAnswer(t *testing.T) {
	engine, _, _ := newTestEngine(t, testConfig())
	signUpTestAccount(t, engine)
	ctx := context.Background()

	challenge := RecoveryChallenge{SecurityImage: "3", Answer: "Rex"}
	err := engine.ResetCredentials(ctx, challenge, ProfileUpdate{PIN: strPtr("111222")})
	if !errors.Is(err, ErrRecoveryChallengeFailed) {
		t.Fatalf("wrong answer: got %v, want ErrRecoveryChallengeFailed", err)
	}

	// The failed challenge must not have touched the PIN.
	if err := engine.LockApp(ctx); err != nil {
		t.Fatalf("LockApp failed: %v", err)
	}
	if ok, err := engine.UnlockApp(ctx, "482913"); err != nil || !ok {
		t.Fatalf("original PIN: ok=%v err=%v", ok, err)
	}
}

func TestResetCredentialsNoAccount(t *testing.T) {
	engine, _, _ := newTestEngine(t, testConfig())

	challenge := RecoveryChallenge{SecurityImage: "3", Answer: "Biscuit"}
	err := engine.ResetCredentials(context.Background(), challenge, ProfileUpdate{PIN: strPtr("111222")})
	if !errors.Is(err, ErrRecoveryChallengeFailed) {
		t.Fatalf("no account: got %v, want ErrRecoveryChallengeFailed", err)
	}
}

func TestResetCredentialsLockout(t *testing.T) {
	cfg := testConfig()
	engine, _, clock := newTestEngine(t, cfg)
	signUpTestAccount(t, engine)
	ctx := context.Background()

	bad := RecoveryChallenge{SecurityImage: "3", Answer: "wrong"}
	var lastErr error
	for i := 0; i < cfg.Lockout.Threshold; i++ {
		lastErr = engine.ResetCredentials(ctx, bad, ProfileUpdate{PIN: strPtr("111222")})
	}
	if !errors.Is(lastErr, ErrRecoveryLockedOut) {
		t.Fatalf("attempt %d: got %v, want ErrRecoveryLockedOut", cfg.Lockout.Threshold, lastErr)
	}

	good := RecoveryChallenge{SecurityImage: "3", Answer: "Biscuit"}
	if err := engine.ResetCredentials(ctx, good, ProfileUpdate{PIN: strPtr("111222")}); !errors.Is(err, ErrRecoveryLockedOut) {
		t.Fatalf("during cooldown: got %v, want ErrRecoveryLockedOut", err)
	}

	clock.Advance(cfg.Lockout.Cooldown + time.Second)

	if err := engine.ResetCredentials(ctx, good, ProfileUpdate{PIN: strPtr("111222")}); err != nil {
		t.Fatalf("after cooldown: %v", err)
	}
}
