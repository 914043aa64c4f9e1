// Package password implements argon2id hashing for the secrets the sanctum
// engine stores: the account password, the 6-digit re-lock PIN, and the
// recovery-quiz answer.
//
// # Output format
//
// Hashes are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// so the active parameters travel with each hash. [Argon2.NeedsUpgrade]
// reports whether a stored hash was produced with weaker parameters than the
// current configuration, letting the engine re-hash on the next successful
// verification.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Secret policy (password
// entropy, PIN shape, answer normalization) is enforced by the engine.
//
// # What this package must NOT do
//
//   - Store or retrieve secrets — callers supply plaintext and receive hashes.
//   - Import any other sanctum package.
//   - Log plaintext secrets or hash parameters at runtime.
package password
