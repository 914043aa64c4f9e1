package sanctum

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSignInWithPassword(t *testing.T) {
	engine, _, _ := newTestEngine(t, testConfig())
	signUpTestAccount(t, engine)
	ctx := context.Background()

	if err := engine.LockApp(ctx); err != nil {
		t.Fatalf("LockApp failed: %v", err)
	}

	if err := engine.SignIn(ctx, SignInRequest{Username: "alice", Password: "correct-horse-battery-staple"}); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	snap := engine.Snapshot()
	if !snap.IsLoggedIn || snap.IsGuest || !snap.IsUnlocked {
		t.Fatalf("expected authenticated unlocked session, got %+v", snap)
	}
}

func TestSignInWithPIN(t *testing.T) {
	engine, _, _ := newTestEngine(t, testConfig())
	signUpTestAccount(t, engine)
	ctx := context.Background()

	if err := engine.LockApp(ctx); err != nil {
		t.Fatalf("LockApp failed: %v", err)
	}
	if err := engine.SignIn(ctx, SignInRequest{Username: "alice", PIN: "482913"}); err != nil {
		t.Fatalf("SignIn with PIN failed: %v", err)
	}
	if snap := engine.Snapshot(); !snap.IsUnlocked {
		t.Fatalf("expected unlocked session, got %+v", snap)
	}
}

func TestSignInRequestShape(t *testing.T) {
	engine, _, _ := newTestEngine(t, testConfig())
	signUpTestAccount(t, engine)
	ctx := context.Background()

	cases := []struct {
		name string
		req  SignInRequest
	}{
		{"no username", SignInRequest{Password: "x"}},
		{"no secret", SignInRequest{Username: "alice"}},
		{"both secrets", SignInRequest{Username: "alice", Password: "x", PIN: "482913"}},
	}
	for _, tc := range cases {
		if err := engine.SignIn(ctx, tc.req); !errors.Is(err, ErrSignInInvalid) {
			t.Fatalf("%s: got %v, want ErrSignInInvalid", tc.name, err)
		}
	}
}

func TestSignInWrongCredentials(t *testing.T) {
	engine, _, _ := newTestEngine(t, testConfig())
	signUpTestAccount(t, engine)
	ctx := context.Background()

	if err := engine.SignIn(ctx, SignInRequest{Username: "alice", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if err := engine.SignIn(ctx, SignInRequest{Username: "mallory", Password: "correct-horse-battery-staple"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong username: got %v, want ErrInvalidCredentials", err)
	}
}

func TestSignInLockout(t *testing.T) {
	cfg := testConfig()
	engine, _, clock := newTestEngine(t, cfg)
	signUpTestAccount(t, engine)
	ctx := context.Background()

	var lastErr error
	for i := 0; i < cfg.Lockout.Threshold; i++ {
		lastErr = engine.SignIn(ctx, SignInRequest{Username: "alice", Password: "wrong"})
	}
	if !errors.Is(lastErr, ErrSignInLockedOut) {
		t.Fatalf("attempt %d: got %v, want ErrSignInLockedOut", cfg.Lockout.Threshold, lastErr)
	}

	// Correct credentials are refused while the cooldown runs.
	if err := engine.SignIn(ctx, SignInRequest{Username: "alice", Password: "correct-horse-battery-staple"}); !errors.Is(err, ErrSignInLockedOut) {
		t.Fatalf("during cooldown: got %v, want ErrSignInLockedOut", err)
	}

	clock.Advance(cfg.Lockout.Cooldown + time.Second)

	if err := engine.SignIn(ctx, SignInRequest{Username: "alice", Password: "correct-horse-battery-staple"}); err != nil {
		t.Fatalf("after cooldown: %v", err)
	}
}

func TestSignUpValidation(t *testing.T) {
	engine, _, _ := newTestEngine(t, testConfig())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*SignUpRequest)
		want   error
	}{
		{"empty username", func(r *SignUpRequest) { r.Username = "  " }, ErrSignUpInvalid},
		{"bad email", func(r *SignUpRequest) { r.Email = "not-an-email" }, ErrSignUpInvalid},
		{"weak password", func(r *SignUpRequest) { r.Password = "aaa" }, ErrPasswordPolicy},
		{"short pin", func(r *SignUpRequest) { r.PIN = "12345" }, ErrPINFormat},
		{"alpha pin", func(r *SignUpRequest) { r.PIN = "12a456" }, ErrPINFormat},
		{"unknown image", func(r *SignUpRequest) { r.SecurityImage = "99" }, ErrSecurityImageUnknown},
		{"no quiz answer", func(r *SignUpRequest) { r.SecurityQuiz.Answer = " " }, ErrSecurityQuizIncomplete},
	}
	for _, tc := range cases {
		req := testSignUpRequest()
		tc.mutate(&req)
		if _, err := engine.SignUp(ctx, req); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestSignUpAssignsNivoraID(t *testing.T) {
	engine, store, _ := newTestEngine(t, testConfig())

	nivoraID := signUpTestAccount(t, engine)
	if len(nivoraID) != 14 || nivoraID[:3] != "NV-" {
		t.Fatalf("unexpected id shape: %q", nivoraID)
	}

	snap := engine.Snapshot()
	if snap.NivoraID != nivoraID {
		t.Fatalf("snapshot id %q != returned id %q", snap.NivoraID, nivoraID)
	}
	if !snap.IsLoggedIn || !snap.IsUnlocked || !snap.HasCompletedOnboarding {
		t.Fatalf("expected logged-in unlocked onboarded session, got %+v", snap)
	}

	if _, found, err := store.Get(context.Background(), "nv:auth:state"); err != nil || !found {
		t.Fatalf("expected persisted record, found=%v err=%v", found, err)
	}
}

func TestSignUpSurfacesWriteError(t *testing.T) {
	store := newFailingStore()
	engine, err := New().
		WithConfig(testConfig()).
		WithStorage(store).
		WithLogger(func(string, ...any) {}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	if err := engine.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	store.failWrites = true
	if _, err := engine.SignUp(context.Background(), testSignUpRequest()); err == nil {
		t.Fatal("expected SignUp to surface the write error")
	}
}
