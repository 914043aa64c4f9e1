// Package sanctum is the session and authorization core of the Nivora
// wellness app: account lifecycle (guest vs. registered), credential
// sign-in, the PIN re-lock gate for returning to an authenticated session,
// and account recovery via a security-image-plus-quiz challenge.
//
// The package is designed around a single persisted session record per
// installation. [Engine] owns that record and exposes the state transitions;
// [Guard] is the navigation-side half of the access-control contract,
// deciding at dispatch time whether a route may be entered while the session
// is locked. Engine methods are safe to call from multiple goroutines after
// initialization through [Builder.Build].
//
// # Architecture boundaries
//
// sanctum is the public surface. It exposes [Engine], [Builder], [Config],
// [Guard], and value types (State, SignUpRequest, MetricsSnapshot, etc.).
// Record encoding, lockout counters, and audit dispatch live under
// internal/ and are never exported. Persistence backends live in storage/,
// hashing in password/, and proxy tickets in ticket/.
//
// # What this package must NOT do
//
//   - Persist or compare plaintext secrets (credentials are argon2id hashes).
//   - Expose storage clients or encoding details in its public API.
//   - Trust a persisted "unlocked" flag across process starts.
package sanctum
