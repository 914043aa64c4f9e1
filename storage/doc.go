// Package storage provides the key-value persistence backends behind the
// sanctum session engine.
//
// # Design
//
// The engine persists exactly one serialized state blob plus a handful of
// lockout counters, all addressed by string key. [Store] is therefore a
// minimal get/set/remove contract: a missing key is reported as absent, never
// as an error, and writes are full replacements.
//
// # Architecture boundaries
//
// This package owns backend I/O only. It never interprets the blobs it
// stores; serialization and state semantics live in the engine and in
// internal/state.
//
// # What this package must NOT do
//
//   - Import the root sanctum package or any sibling package.
//   - Cache values across calls (the engine holds the authoritative copy).
package storage
