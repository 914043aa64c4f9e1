// Package limiters implements brute-force protection for secret
// verification: PIN unlock, credential sign-in, and the recovery challenge.
//
// Counters are persisted through the engine's key-value store so a lockout
// survives process restart. The window is rolling: the counter carries its
// own expiry timestamp and resets itself once the cooldown elapses, which
// stands in for the TTL a server-side counter store would provide.
package limiters
