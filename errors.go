package sanctum

import "errors"

var (
	// ErrNotLoaded is returned when an operation runs before Load completes.
	ErrNotLoaded = errors.New("session state not loaded")
	// ErrInvalidCredentials is returned when sign-in verification fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSignInInvalid is returned when a sign-in request does not carry
	// exactly one of password or PIN.
	ErrSignInInvalid = errors.New("sign-in requires a username and exactly one of password or pin")
	// ErrSignInLockedOut is returned while sign-in attempts are in cooldown.
	ErrSignInLockedOut = errors.New("sign-in locked out")
	// ErrUnlockLockedOut is returned while PIN unlock attempts are in cooldown.
	ErrUnlockLockedOut = errors.New("pin unlock locked out")
	// ErrRecoveryLockedOut is returned while recovery attempts are in cooldown.
	ErrRecoveryLockedOut = errors.New("account recovery locked out")
	// ErrRecoveryChallengeFailed is returned when the security image or quiz
	// answer does not match the stored challenge.
	ErrRecoveryChallengeFailed = errors.New("recovery challenge failed")
	// ErrPasswordPolicy is returned when a password is below the configured
	// entropy floor.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrPINFormat is returned when a PIN is not exactly 6 ASCII digits.
	ErrPINFormat = errors.New("pin must be exactly 6 digits")
	// ErrSecurityImageUnknown is returned when a security image id is not in
	// the catalog.
	ErrSecurityImageUnknown = errors.New("unknown security image")
	// ErrSecurityQuizIncomplete is returned when a quiz is missing its
	// question or answer.
	ErrSecurityQuizIncomplete = errors.New("security quiz requires question and answer")
	// ErrSignUpInvalid is returned when a sign-up request is missing
	// required identity fields.
	ErrSignUpInvalid = errors.New("sign-up requires username and email")
	// ErrNotUnlocked is returned when a ticket is requested while the
	// session is locked.
	ErrNotUnlocked = errors.New("session is locked")
	// ErrTicketsDisabled is returned when ticket issuance is not configured.
	ErrTicketsDisabled = errors.New("session tickets disabled")
)
