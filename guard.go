package sanctum

import (
	"context"
	"strings"
)

// UnlockRoute is where the guard sends a locked session.
const UnlockRoute = "auth/pin-unlock"

// Decision is the guard's verdict for one navigation. When Allowed is
// false, RedirectTo names the route to dispatch instead.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Guard gates navigation while the app is locked. It is consulted once per
// route dispatch, before the destination renders, so a locked session can
// never show a protected screen even transiently.
//
// The guard redirects only when the session is authenticated, locked, and
// past onboarding. Guests are always unlocked, pre-onboarding users still
// need the intro screens, and a signed-out session has nothing to protect.
type Guard struct {
	engine *Engine
}

// NewGuard returns a guard bound to the engine. A nil engine yields a guard
// that allows everything.
func NewGuard(engine *Engine) *Guard {
	return &Guard{engine: engine}
}

// Routes reachable while locked. Emergency stays reachable because a crisis
// does not wait for a PIN; the auth screens must be reachable or the user
// could never unlock.
func routeAllowedWhileLocked(segments []string) bool {
	switch segments[0] {
	case "index", "onboarding", "onboarding2":
		return true
	case "(tabs)":
		return len(segments) > 1 && segments[1] == "emergency"
	case "auth":
		if len(segments) < 2 {
			return false
		}
		switch segments[1] {
		case "login", "signup", "credential-setup", "pin-unlock":
			return true
		}
	}
	return false
}

// Check evaluates one route. The route is a slash-separated path without a
// leading slash, e.g. "(tabs)/diary". An empty route means navigation state
// has not settled yet and is always allowed; the next settled dispatch gets
// checked.
func (g *Guard) Check(route string) Decision {
	if g == nil || g.engine == nil || !g.engine.Loaded() {
		return Decision{Allowed: true}
	}

	snap := g.engine.Snapshot()
	locked := snap.IsLoggedIn && !snap.IsUnlocked && snap.HasCompletedOnboarding
	if !locked || route == "" {
		g.engine.metrics.Inc(MetricGuardAllowed)
		return Decision{Allowed: true}
	}

	segments := strings.Split(route, "/")
	if routeAllowedWhileLocked(segments) {
		g.engine.metrics.Inc(MetricGuardAllowed)
		return Decision{Allowed: true}
	}

	g.engine.metrics.Inc(MetricGuardRedirected)
	g.engine.emitGuardRedirect(route, snap.NivoraID)
	return Decision{Allowed: false, RedirectTo: UnlockRoute}
}

// emitGuardRedirect records a blocked navigation. The guard has no caller
// context, so the event is emitted on the background context.
func (e *Engine) emitGuardRedirect(route, nivoraID string) {
	if e.audit == nil {
		return
	}
	event := e.newAuditEvent(eventGuardRedirect)
	event.NivoraID = nivoraID
	event.Route = route
	event.Success = false
	e.audit.Emit(context.Background(), event)
}
