// Package audit provides the asynchronous audit event pipeline for the
// session engine: sign-in/out, unlock attempts, lockouts, recovery-challenge
// outcomes, and guard redirects.
//
// Events flow engine → Dispatcher (buffered goroutine) → Sink. Emission
// never blocks an engine operation beyond the configured buffering policy,
// and the dispatcher drains its buffer on Close.
package audit
