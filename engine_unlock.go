package sanctum

import (
	"context"
)

// UnlockApp verifies the PIN against the stored hash and, on success,
// unlocks the session in memory. A wrong PIN returns (false, nil) with the
// state untouched; only infrastructure problems and the lockout surface as
// errors.
//
// Failures feed a persisted counter so force-quitting the app does not
// reset the attempt budget. Once the counter reaches the configured
// threshold every attempt fails with ErrUnlockLockedOut, without touching
// the hasher, until the cooldown expires or a full sign-in succeeds.
func (e *Engine) UnlockApp(ctx context.Context, pin string) (bool, error) {
	if !e.loaded.Load() {
		return false, ErrNotLoaded
	}

	if blocked, _, err := e.lockout.Blocked(ctx, opUnlock); err != nil {
		e.logf("sanctum: unlock lockout check failed: %v", err)
	} else if blocked {
		e.metrics.Inc(MetricUnlockLockedOut)
		e.emitAudit(ctx, eventUnlock, "", false, ErrUnlockLockedOut.Error())
		return false, ErrUnlockLockedOut
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// No account or no PIN enrolled: nothing to verify against.
	if !e.rec.IsLoggedIn || e.rec.IsGuest || e.rec.PINHash == "" {
		return false, nil
	}

	verified, err := e.hasher.Verify(pin, e.rec.PINHash)
	if err != nil {
		e.logf("sanctum: pin verify failed: %v", err)
		verified = false
	}

	if !verified {
		e.metrics.Inc(MetricUnlockFailure)
		if tripped, err := e.lockout.RecordFailure(ctx, opUnlock); err != nil {
			e.logf("sanctum: unlock lockout record failed: %v", err)
		} else if tripped {
			e.metrics.Inc(MetricUnlockLockedOut)
			e.emitAudit(ctx, eventUnlock, e.rec.NivoraID, false, ErrUnlockLockedOut.Error())
			return false, ErrUnlockLockedOut
		}
		e.emitAudit(ctx, eventUnlock, e.rec.NivoraID, false, "pin mismatch")
		return false, nil
	}

	if err := e.lockout.Reset(ctx, opUnlock); err != nil {
		e.logf("sanctum: unlock lockout reset failed: %v", err)
	}

	// In-memory only. The persisted record always reads back locked.
	e.rec.IsUnlocked = true

	e.metrics.Inc(MetricUnlockSuccess)
	e.emitAudit(ctx, eventUnlock, e.rec.NivoraID, true, "")
	return true, nil
}
