package sanctum

import (
	"context"
	"regexp"
	"strings"

	passwordvalidator "github.com/wagslane/go-password-validator"

	"github.com/nivora-app/sanctum/internal"
	"github.com/nivora-app/sanctum/internal/state"
)

var pinPattern = regexp.MustCompile(`^[0-9]{6}$`)

// normalizeAnswer folds a security-quiz answer for case-insensitive
// matching. Applied identically at enrollment and at recovery.
func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// SignUp validates the request, hashes every secret, assigns a fresh Nivora
// ID, and replaces whatever session existed before with a new authenticated,
// unlocked, onboarded account. It is the only mutation that surfaces a
// storage write error: an account that exists in memory but not on disk
// would silently vanish on the next launch, so the caller must know.
//
// The returned string is the assigned Nivora ID.
func (e *Engine) SignUp(ctx context.Context, req SignUpRequest) (string, error) {
	if !e.loaded.Load() {
		return "", ErrNotLoaded
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || !strings.Contains(email, "@") {
		e.metrics.Inc(MetricSignUpRejected)
		return "", ErrSignUpInvalid
	}
	if err := passwordvalidator.Validate(req.Password, e.cfg.Password.MinEntropyBits); err != nil {
		e.metrics.Inc(MetricSignUpRejected)
		e.emitAudit(ctx, eventSignUp, "", false, err.Error())
		return "", ErrPasswordPolicy
	}
	if !pinPattern.MatchString(req.PIN) {
		e.metrics.Inc(MetricSignUpRejected)
		return "", ErrPINFormat
	}
	if !validSecurityImage(req.SecurityImage) {
		e.metrics.Inc(MetricSignUpRejected)
		return "", ErrSecurityImageUnknown
	}
	if strings.TrimSpace(req.SecurityQuiz.Question) == "" || strings.TrimSpace(req.SecurityQuiz.Answer) == "" {
		e.metrics.Inc(MetricSignUpRejected)
		return "", ErrSecurityQuizIncomplete
	}

	passwordHash, err := e.hasher.Hash(req.Password)
	if err != nil {
		e.metrics.Inc(MetricSignUpRejected)
		return "", err
	}
	pinHash, err := e.hasher.HashRaw(req.PIN)
	if err != nil {
		e.metrics.Inc(MetricSignUpRejected)
		return "", err
	}
	answerHash, err := e.hasher.HashRaw(normalizeAnswer(req.SecurityQuiz.Answer))
	if err != nil {
		e.metrics.Inc(MetricSignUpRejected)
		return "", err
	}

	nivoraID, err := internal.NewNivoraID()
	if err != nil {
		return "", err
	}

	rec := state.Empty()
	rec.IsLoggedIn = true
	rec.IsUnlocked = true
	rec.HasCompletedOnboarding = true
	rec.Username = username
	rec.Email = email
	rec.PasswordHash = passwordHash
	rec.PINHash = pinHash
	rec.SecurityImage = req.SecurityImage
	rec.SecurityQuestion = strings.TrimSpace(req.SecurityQuiz.Question)
	rec.SecurityAnswerHash = answerHash
	rec.NivoraID = nivoraID

	e.mu.Lock()
	defer e.mu.Unlock()

	e.rec = rec
	if err := e.persistStrict(ctx); err != nil {
		e.metrics.Inc(MetricPersistFailure)
		e.emitAudit(ctx, eventSignUp, nivoraID, false, err.Error())
		return nivoraID, err
	}

	e.metrics.Inc(MetricSignUpSuccess)
	e.emitAudit(ctx, eventSignUp, nivoraID, true, "")
	return nivoraID, nil
}
