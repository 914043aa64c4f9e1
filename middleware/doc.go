// Package middleware exposes an HTTP adapter for proxy-ticket enforcement
// built on top of sanctum.Engine ticket verification.
//
// # Guard
//
// [RequireTicket] reads the Authorization header, calls Engine.VerifyTicket,
// and injects the validated claims into the request context for handlers to
// read via [TicketFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// verify tickets itself; all decisions are delegated to the Engine.
//
// # What this package must NOT do
//
//   - Parse or create tickets directly.
//   - Touch session state or storage.
package middleware
