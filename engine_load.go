package sanctum

import (
	"context"

	"github.com/nivora-app/sanctum/internal/state"
)

// Load hydrates the engine from storage. It must be called once at startup
// before any other session operation; until then every mutation fails with
// ErrNotLoaded.
//
// Load never propagates a bad persisted blob: a missing key, an unreadable
// backend, or a corrupt record all resolve to the signed-out default so the
// app can always start. Whatever was read, the session comes up locked; an
// unlocked flag in storage is stale by definition because the process that
// wrote it is gone.
func (e *Engine) Load(ctx context.Context) error {
	rec := state.Empty()

	blob, found, err := e.store.Get(ctx, e.stateKey())
	switch {
	case err != nil:
		e.logf("sanctum: state read failed, starting signed out: %v", err)
	case found:
		decoded, err := state.Decode(blob)
		if err != nil {
			e.logf("sanctum: discarding unreadable state blob: %v", err)
		} else {
			rec = decoded
		}
	}

	// Guest sessions are never persisted, so a blob claiming one is corrupt
	// in a way Decode cannot see. Drop it.
	if rec.IsGuest {
		e.logf("sanctum: discarding persisted guest state")
		rec = state.Empty()
	}

	rec.IsUnlocked = false

	e.mu.Lock()
	e.rec = rec
	e.mu.Unlock()
	e.loaded.Store(true)

	return nil
}
