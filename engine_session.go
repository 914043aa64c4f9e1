package sanctum

import (
	"context"

	"github.com/nivora-app/sanctum/internal/state"
)

// SignOut drops the session back to the signed-out default and removes the
// persisted record plus any lockout counters. Storage failures are logged
// and swallowed; the in-memory sign-out always completes, so the user is
// never trapped in an account the backend refuses to release.
func (e *Engine) SignOut(ctx context.Context) error {
	if !e.loaded.Load() {
		return ErrNotLoaded
	}

	e.mu.Lock()
	nivoraID := e.rec.NivoraID
	e.rec = state.Empty()
	e.mu.Unlock()

	if err := e.store.Remove(ctx, e.stateKey()); err != nil {
		e.metrics.Inc(MetricPersistFailure)
		e.logf("sanctum: state remove failed: %v", err)
	}
	for _, op := range []string{opSignIn, opUnlock, opRecovery} {
		if err := e.lockout.Reset(ctx, op); err != nil {
			e.logf("sanctum: lockout reset failed for %s: %v", op, err)
		}
	}

	e.metrics.Inc(MetricSignOut)
	e.emitAudit(ctx, eventSignOut, nivoraID, true, "")
	return nil
}

// EnterAsGuest starts an anonymous session: unlocked, no account fields, no
// durable trace. Guest sessions live only in memory; nothing is written, so
// a restart lands back on the signed-out default.
func (e *Engine) EnterAsGuest(ctx context.Context) error {
	if !e.loaded.Load() {
		return ErrNotLoaded
	}

	rec := state.Empty()
	rec.IsGuest = true
	rec.IsUnlocked = true

	e.mu.Lock()
	e.rec = rec
	e.mu.Unlock()

	e.metrics.Inc(MetricGuestEntry)
	e.emitAudit(ctx, eventGuestEntry, "", true, "")
	return nil
}

// LockApp re-locks an authenticated session so the next foreground
// navigation hits the PIN gate. Guests have no PIN and are never locked, so
// for them this is a no-op.
func (e *Engine) LockApp(ctx context.Context) error {
	if !e.loaded.Load() {
		return ErrNotLoaded
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.rec.IsLoggedIn || e.rec.IsGuest {
		return nil
	}

	// Not written through: the persisted copy is always read back locked, so
	// the durable unlocked bit is meaningless either way.
	e.rec.IsUnlocked = false

	e.metrics.Inc(MetricLock)
	e.emitAudit(ctx, eventLock, e.rec.NivoraID, true, "")
	return nil
}

// CompleteOnboarding marks the intro flow as done. Independent of login
// state; a visitor can finish onboarding before creating an account.
func (e *Engine) CompleteOnboarding(ctx context.Context) error {
	if !e.loaded.Load() {
		return ErrNotLoaded
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rec.HasCompletedOnboarding {
		return nil
	}
	e.rec.HasCompletedOnboarding = true
	e.persist(ctx)

	e.metrics.Inc(MetricOnboardingCompleted)
	e.emitAudit(ctx, eventOnboarding, e.rec.NivoraID, true, "")
	return nil
}
