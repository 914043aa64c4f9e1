package sanctum

import (
	"context"
)

// IssueTicket mints a short-lived proxy ticket for the current session.
// Tickets carry the Nivora ID (empty for guests) and a guest marker, and
// are only available while the session is unlocked; a locked app has no
// business talking to backend services on the user's behalf.
func (e *Engine) IssueTicket(ctx context.Context) (string, error) {
	if e.tickets == nil {
		return "", ErrTicketsDisabled
	}
	if !e.loaded.Load() {
		return "", ErrNotLoaded
	}

	e.mu.RLock()
	unlocked := (e.rec.IsLoggedIn || e.rec.IsGuest) && e.rec.IsUnlocked
	nivoraID := e.rec.NivoraID
	guest := e.rec.IsGuest
	e.mu.RUnlock()

	if !unlocked {
		return "", ErrNotUnlocked
	}

	token, err := e.tickets.Issue(nivoraID, guest, e.now())
	if err != nil {
		return "", err
	}

	e.metrics.Inc(MetricTicketIssued)
	e.emitAudit(ctx, eventTicketIssued, nivoraID, true, "")
	return token, nil
}

// VerifyTicket validates a ticket minted by IssueTicket and returns its
// claims. Stateless; it does not consult the session record, so a backend
// component can verify with only the shared secret.
func (e *Engine) VerifyTicket(token string) (*TicketClaims, error) {
	if e.tickets == nil {
		return nil, ErrTicketsDisabled
	}
	return e.tickets.Verify(token)
}
