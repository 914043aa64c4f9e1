package sanctum

import (
	"context"
)

// ResetCredentials verifies a recovery challenge and, on success, applies
// the given update (typically a new password and PIN). The challenge passes
// only when the submitted security-image id is exactly the enrolled one and
// the quiz answer matches case-insensitively.
//
// A failed challenge never reveals which half was wrong. Failures feed a
// persisted counter with the same cooldown policy as unlock, so the quiz
// cannot be brute-forced by restarting the app.
func (e *Engine) ResetCredentials(ctx context.Context, challenge RecoveryChallenge, update ProfileUpdate) error {
	if !e.loaded.Load() {
		return ErrNotLoaded
	}

	if blocked, _, err := e.lockout.Blocked(ctx, opRecovery); err != nil {
		e.logf("sanctum: recovery lockout check failed: %v", err)
	} else if blocked {
		e.metrics.Inc(MetricRecoveryFailure)
		e.emitAudit(ctx, eventRecovery, "", false, ErrRecoveryLockedOut.Error())
		return ErrRecoveryLockedOut
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	passed := e.rec.IsLoggedIn && !e.rec.IsGuest &&
		e.rec.SecurityImage != "" && e.rec.SecurityAnswerHash != "" &&
		challenge.SecurityImage == e.rec.SecurityImage
	if passed {
		match, err := e.hasher.Verify(normalizeAnswer(challenge.Answer), e.rec.SecurityAnswerHash)
		if err != nil {
			e.logf("sanctum: recovery answer verify failed: %v", err)
			match = false
		}
		passed = match
	}

	if !passed {
		e.metrics.Inc(MetricRecoveryFailure)
		if tripped, err := e.lockout.RecordFailure(ctx, opRecovery); err != nil {
			e.logf("sanctum: recovery lockout record failed: %v", err)
		} else if tripped {
			e.emitAudit(ctx, eventRecovery, e.rec.NivoraID, false, ErrRecoveryLockedOut.Error())
			return ErrRecoveryLockedOut
		}
		e.emitAudit(ctx, eventRecovery, e.rec.NivoraID, false, ErrRecoveryChallengeFailed.Error())
		return ErrRecoveryChallengeFailed
	}

	if err := e.lockout.Reset(ctx, opRecovery); err != nil {
		e.logf("sanctum: recovery lockout reset failed: %v", err)
	}

	if err := e.applyProfileLocked(ctx, update); err != nil {
		return err
	}

	e.metrics.Inc(MetricRecoverySuccess)
	e.emitAudit(ctx, eventRecovery, e.rec.NivoraID, true, "")
	return nil
}
