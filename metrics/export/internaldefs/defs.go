package internaldefs

import (
	sanctum "github.com/nivora-app/sanctum"
)

// CounterDef maps one engine counter to its exported name and help text.
type CounterDef struct {
	ID   sanctum.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter. Order is the exposition order.
var CounterDefs = []CounterDef{
	{ID: sanctum.MetricSignInSuccess, Name: "sanctum_signin_success_total", Help: "Successful credential sign-ins."},
	{ID: sanctum.MetricSignInFailure, Name: "sanctum_signin_failure_total", Help: "Failed credential sign-ins."},
	{ID: sanctum.MetricSignInLockedOut, Name: "sanctum_signin_locked_out_total", Help: "Sign-ins refused by the lockout window."},
	{ID: sanctum.MetricSignUpSuccess, Name: "sanctum_signup_success_total", Help: "Created accounts."},
	{ID: sanctum.MetricSignUpRejected, Name: "sanctum_signup_rejected_total", Help: "Sign-ups rejected by validation or policy."},
	{ID: sanctum.MetricSignOut, Name: "sanctum_signout_total", Help: "Sign-out operations."},
	{ID: sanctum.MetricGuestEntry, Name: "sanctum_guest_entry_total", Help: "Guest session entries."},
	{ID: sanctum.MetricUnlockSuccess, Name: "sanctum_unlock_success_total", Help: "Successful PIN unlocks."},
	{ID: sanctum.MetricUnlockFailure, Name: "sanctum_unlock_failure_total", Help: "Failed PIN unlocks."},
	{ID: sanctum.MetricUnlockLockedOut, Name: "sanctum_unlock_locked_out_total", Help: "Unlocks refused by the lockout window."},
	{ID: sanctum.MetricLock, Name: "sanctum_lock_total", Help: "App re-lock operations."},
	{ID: sanctum.MetricProfileUpdated, Name: "sanctum_profile_updated_total", Help: "Applied profile updates."},
	{ID: sanctum.MetricOnboardingCompleted, Name: "sanctum_onboarding_completed_total", Help: "Onboarding completions."},
	{ID: sanctum.MetricRecoverySuccess, Name: "sanctum_recovery_success_total", Help: "Accepted recovery challenges."},
	{ID: sanctum.MetricRecoveryFailure, Name: "sanctum_recovery_failure_total", Help: "Rejected recovery challenges."},
	{ID: sanctum.MetricTicketIssued, Name: "sanctum_ticket_issued_total", Help: "Proxy tickets minted."},
	{ID: sanctum.MetricGuardAllowed, Name: "sanctum_guard_allowed_total", Help: "Navigations the guard let through."},
	{ID: sanctum.MetricGuardRedirected, Name: "sanctum_guard_redirected_total", Help: "Navigations redirected to the unlock screen."},
	{ID: sanctum.MetricPersistFailure, Name: "sanctum_persist_failure_total", Help: "Swallowed storage write failures."},
}
