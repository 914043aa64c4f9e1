package sanctum

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nivora-app/sanctum/internal/audit"
	"github.com/nivora-app/sanctum/internal/limiters"
	"github.com/nivora-app/sanctum/internal/state"
	"github.com/nivora-app/sanctum/password"
	"github.com/nivora-app/sanctum/storage"
	"github.com/nivora-app/sanctum/ticket"
)

// Lockout counter namespaces. Each secret-bearing operation keeps its own
// failure counter so a burst of wrong PINs cannot lock sign-in out too.
const (
	opSignIn   = "signin"
	opUnlock   = "unlock"
	opRecovery = "recovery"
)

// Audit event types emitted by the engine.
const (
	eventSignIn        = "signin"
	eventSignUp        = "signup"
	eventSignOut       = "signout"
	eventGuestEntry    = "guest_entry"
	eventUnlock        = "unlock"
	eventLock          = "lock"
	eventProfileUpdate = "profile_update"
	eventOnboarding    = "onboarding_complete"
	eventRecovery      = "recovery"
	eventTicketIssued  = "ticket_issued"
	eventGuardRedirect = "guard_redirect"
)

// Engine is the session core: it owns the authoritative in-memory session
// record, mirrors the durable subset of it into storage, and answers the
// navigation guard. All exported methods are safe for concurrent use.
//
// A fresh Engine knows nothing; call Load once at startup before any other
// session operation.
type Engine struct {
	cfg     Config
	store   storage.Store
	hasher  *password.Argon2
	lockout *limiters.Lockout
	tickets *ticket.Manager
	audit   *audit.Dispatcher
	metrics *Metrics
	now     func() time.Time
	logf    func(format string, args ...any)

	loaded atomic.Bool

	mu  sync.RWMutex
	rec state.Record
}

// stateKey is where the durable session record lives in storage.
func (e *Engine) stateKey() string {
	return e.cfg.Storage.KeyPrefix + ":auth:state"
}

// Close flushes the audit dispatcher. The Engine must not be used after
// Close.
func (e *Engine) Close() {
	e.audit.Close()
}

// Loaded reports whether Load has completed.
func (e *Engine) Loaded() bool {
	return e.loaded.Load()
}

// Snapshot returns a copy of the public session state. Secret hashes never
// leave the engine.
func (e *Engine) Snapshot() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return stateFromRecord(e.rec)
}

// MetricsSnapshot returns the current counter values, or the zero snapshot
// when metrics are disabled.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}

// AuditDropped reports how many audit events were discarded because the
// dispatcher buffer was full.
func (e *Engine) AuditDropped() uint64 {
	return e.audit.Dropped()
}

func stateFromRecord(r state.Record) State {
	return State{
		IsLoggedIn:             r.IsLoggedIn,
		IsGuest:                r.IsGuest,
		IsUnlocked:             r.IsUnlocked,
		Username:               r.Username,
		Email:                  r.Email,
		SecurityImage:          r.SecurityImage,
		SecurityQuestion:       r.SecurityQuestion,
		HasChangedUsername:     r.HasChangedUsername,
		HasChangedPassword:     r.HasChangedPassword,
		HasCompletedOnboarding: r.HasCompletedOnboarding,
		NivoraID:               r.NivoraID,
	}
}

// persist writes the current record to storage, logging and swallowing any
// backend error. Session mutations stay valid in memory even when the
// write-through fails; the durable copy catches up on the next mutation.
// Callers must hold e.mu.
func (e *Engine) persist(ctx context.Context) {
	if err := e.persistStrict(ctx); err != nil {
		e.metrics.Inc(MetricPersistFailure)
		e.logf("sanctum: state write failed: %v", err)
	}
}

// persistStrict writes the current record to storage and returns the error.
// Callers must hold e.mu.
func (e *Engine) persistStrict(ctx context.Context) error {
	blob, err := state.Encode(e.rec)
	if err != nil {
		return err
	}
	return e.store.Set(ctx, e.stateKey(), blob)
}

// newAuditEvent stamps an event with the engine clock.
func (e *Engine) newAuditEvent(eventType string) audit.Event {
	return audit.NewEvent(eventType, e.now())
}

// emitAudit fills in the common envelope and hands the event to the
// dispatcher. nivoraID may be empty for pre-auth failures. Nil-safe when
// audit is disabled; never touches e.mu, so it is callable under either
// lock mode.
func (e *Engine) emitAudit(ctx context.Context, eventType, nivoraID string, success bool, errMsg string) {
	if e.audit == nil {
		return
	}
	event := e.newAuditEvent(eventType)
	event.NivoraID = nivoraID
	event.Success = success
	event.Error = errMsg

	e.audit.Emit(ctx, event)
}
