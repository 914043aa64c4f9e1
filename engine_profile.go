package sanctum

import (
	"context"
	"strings"

	passwordvalidator "github.com/wagslane/go-password-validator"
)

// UpdateProfile applies a shallow merge of the set fields onto the current
// account. Nil fields are left alone; set fields are validated with the same
// rules as sign-up, and secrets are rehashed before storage.
//
// Re-submitting a secret equal to the stored one keeps the existing hash
// instead of rehashing under a fresh salt, so applying the same update twice
// leaves the record byte-identical.
func (e *Engine) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	if !e.loaded.Load() {
		return ErrNotLoaded
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.applyProfileLocked(ctx, update)
}

// applyProfileLocked validates and merges update into the current record.
// Shared by UpdateProfile and ResetCredentials. Callers must hold e.mu.
func (e *Engine) applyProfileLocked(ctx context.Context, update ProfileUpdate) error {
	next := e.rec
	changed := false

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if username == "" {
			return ErrSignUpInvalid
		}
		if username != next.Username {
			next.Username = username
			next.HasChangedUsername = true
			changed = true
		}
	}

	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if email == "" || !strings.Contains(email, "@") {
			return ErrSignUpInvalid
		}
		if email != next.Email {
			next.Email = email
			changed = true
		}
	}

	if update.Password != nil {
		if err := passwordvalidator.Validate(*update.Password, e.cfg.Password.MinEntropyBits); err != nil {
			return ErrPasswordPolicy
		}
		same, hash, err := e.rehashIfChanged(*update.Password, next.PasswordHash, false)
		if err != nil {
			return err
		}
		if !same {
			next.PasswordHash = hash
			next.HasChangedPassword = true
			changed = true
		}
	}

	if update.PIN != nil {
		if !pinPattern.MatchString(*update.PIN) {
			return ErrPINFormat
		}
		same, hash, err := e.rehashIfChanged(*update.PIN, next.PINHash, true)
		if err != nil {
			return err
		}
		if !same {
			next.PINHash = hash
			changed = true
		}
	}

	if update.SecurityImage != nil {
		if !validSecurityImage(*update.SecurityImage) {
			return ErrSecurityImageUnknown
		}
		if *update.SecurityImage != next.SecurityImage {
			next.SecurityImage = *update.SecurityImage
			changed = true
		}
	}

	if update.SecurityQuiz != nil {
		question := strings.TrimSpace(update.SecurityQuiz.Question)
		answer := normalizeAnswer(update.SecurityQuiz.Answer)
		if question == "" || answer == "" {
			return ErrSecurityQuizIncomplete
		}
		if question != next.SecurityQuestion {
			next.SecurityQuestion = question
			changed = true
		}
		same, hash, err := e.rehashIfChanged(answer, next.SecurityAnswerHash, true)
		if err != nil {
			return err
		}
		if !same {
			next.SecurityAnswerHash = hash
			changed = true
		}
	}

	if !changed {
		return nil
	}

	e.rec = next
	e.persist(ctx)

	e.metrics.Inc(MetricProfileUpdated)
	e.emitAudit(ctx, eventProfileUpdate, e.rec.NivoraID, true, "")
	return nil
}

// rehashIfChanged reports whether secret already matches storedHash and, if
// not, returns a fresh hash. Keeping the old hash for an unchanged secret
// avoids salt churn on repeated identical updates.
func (e *Engine) rehashIfChanged(secret, storedHash string, raw bool) (same bool, hash string, err error) {
	if storedHash != "" {
		match, err := e.hasher.Verify(secret, storedHash)
		if err == nil && match {
			return true, storedHash, nil
		}
	}

	if raw {
		hash, err = e.hasher.HashRaw(secret)
	} else {
		hash, err = e.hasher.Hash(secret)
	}
	return false, hash, err
}
