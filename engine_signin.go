package sanctum

import (
	"context"
	"strings"
)

// SignIn verifies credentials against the stored account and, on success,
// transitions to an authenticated, unlocked session. Exactly one of
// Password or PIN must be set alongside the username; supplying both or
// neither is a request-shape error, not a credential failure.
//
// Verification failures feed the sign-in lockout counter. While the counter
// is tripped every attempt fails with ErrSignInLockedOut without touching
// the hasher, so the cooldown also bounds CPU spent on argon2.
func (e *Engine) SignIn(ctx context.Context, req SignInRequest) error {
	if !e.loaded.Load() {
		return ErrNotLoaded
	}

	username := strings.TrimSpace(req.Username)
	hasPassword := req.Password != ""
	hasPIN := req.PIN != ""
	if username == "" || hasPassword == hasPIN {
		return ErrSignInInvalid
	}

	if blocked, _, err := e.lockout.Blocked(ctx, opSignIn); err != nil {
		e.logf("sanctum: sign-in lockout check failed: %v", err)
	} else if blocked {
		e.metrics.Inc(MetricSignInLockedOut)
		e.emitAudit(ctx, eventSignIn, "", false, ErrSignInLockedOut.Error())
		return ErrSignInLockedOut
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	secret := req.Password
	storedHash := e.rec.PasswordHash
	if hasPIN {
		secret = req.PIN
		storedHash = e.rec.PINHash
	}

	ok := e.rec.Username == username && storedHash != ""
	if ok {
		verified, err := e.hasher.Verify(secret, storedHash)
		if err != nil {
			e.logf("sanctum: credential verify failed: %v", err)
			verified = false
		}
		ok = verified
	}

	if !ok {
		e.metrics.Inc(MetricSignInFailure)
		if tripped, err := e.lockout.RecordFailure(ctx, opSignIn); err != nil {
			e.logf("sanctum: sign-in lockout record failed: %v", err)
		} else if tripped {
			e.metrics.Inc(MetricSignInLockedOut)
			e.emitAudit(ctx, eventSignIn, e.rec.NivoraID, false, ErrSignInLockedOut.Error())
			return ErrSignInLockedOut
		}
		e.emitAudit(ctx, eventSignIn, e.rec.NivoraID, false, ErrInvalidCredentials.Error())
		return ErrInvalidCredentials
	}

	if err := e.lockout.Reset(ctx, opSignIn); err != nil {
		e.logf("sanctum: sign-in lockout reset failed: %v", err)
	}

	e.rec.IsLoggedIn = true
	e.rec.IsGuest = false
	e.rec.IsUnlocked = true
	e.maybeUpgradeHash(secret, storedHash, hasPIN)
	e.persist(ctx)

	e.metrics.Inc(MetricSignInSuccess)
	e.emitAudit(ctx, eventSignIn, e.rec.NivoraID, true, "")
	return nil
}

// maybeUpgradeHash rehashes the freshly verified secret when the stored hash
// predates the current cost parameters. Callers must hold e.mu.
func (e *Engine) maybeUpgradeHash(secret, storedHash string, isPIN bool) {
	upgrade, err := e.hasher.NeedsUpgrade(storedHash)
	if err != nil || !upgrade {
		return
	}

	var rehashed string
	if isPIN {
		rehashed, err = e.hasher.HashRaw(secret)
	} else {
		rehashed, err = e.hasher.Hash(secret)
	}
	if err != nil {
		e.logf("sanctum: hash upgrade failed: %v", err)
		return
	}

	if isPIN {
		e.rec.PINHash = rehashed
	} else {
		e.rec.PasswordHash = rehashed
	}
}
