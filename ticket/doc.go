// Package ticket mints and verifies short-lived session tickets.
//
// The Nivora app talks to a thin companion proxy for chat completions and
// the media catalog. The proxy has no account database; it trusts HS256
// tickets minted on-device by the session engine after a successful
// sign-in, sign-up, or PIN unlock. Tickets carry the public nivora id and a
// guest flag, never credentials.
//
// # What this package must NOT do
//
//   - Read or write session state.
//   - Accept unsigned or foreign-algorithm tokens ("alg" is pinned).
package ticket
