// Package state defines the single persisted session record and its JSON
// codec.
//
// # Architecture boundaries
//
// This package owns the record shape and serialization. Transition rules
// (who may flip which flag, hashing, lockout) live in the engine.
//
// # What this package must NOT do
//
//   - Perform I/O.
//   - Import the root sanctum package or any sibling package.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SchemaVersion is written into every persisted record. Decode rejects blobs
// from a newer schema so an old binary never misreads a future layout.
const SchemaVersion = 1

// Record is the authoritative session snapshot, one instance per
// installation. Credential fields hold argon2id PHC hashes, never plaintext.
type Record struct {
	Schema                 int    `json:"schema"`
	IsLoggedIn             bool   `json:"isLoggedIn"`
	IsGuest                bool   `json:"isGuest"`
	IsUnlocked             bool   `json:"isUnlocked"`
	Username               string `json:"username,omitempty"`
	Email                  string `json:"email,omitempty"`
	PasswordHash           string `json:"passwordHash,omitempty"`
	PINHash                string `json:"pinHash,omitempty"`
	SecurityImage          string `json:"securityImage,omitempty"`
	SecurityQuestion       string `json:"securityQuestion,omitempty"`
	SecurityAnswerHash     string `json:"securityAnswerHash,omitempty"`
	HasChangedUsername     bool   `json:"hasChangedUsername"`
	HasChangedPassword     bool   `json:"hasChangedPassword"`
	HasCompletedOnboarding bool   `json:"hasCompletedOnboarding"`
	NivoraID               string `json:"nivoraId,omitempty"`
}

// Empty returns the well-defined default record: all flags false, all
// optional fields empty.
func Empty() Record {
	return Record{Schema: SchemaVersion}
}

// Encode serializes r, stamping the current schema version.
func Encode(r Record) (string, error) {
	r.Schema = SchemaVersion

	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode state record: %w", err)
	}
	return string(data), nil
}

// Decode parses a persisted blob. Malformed JSON and newer-schema blobs are
// errors; the caller treats both as "nothing saved" and falls back to
// [Empty].
func Decode(blob string) (Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(blob), &r); err != nil {
		return Record{}, fmt.Errorf("decode state record: %w", err)
	}

	// Records written before the schema field existed carry zero; read them
	// as version 1.
	if r.Schema == 0 {
		r.Schema = SchemaVersion
	}
	if r.Schema > SchemaVersion {
		return Record{}, errors.New("decode state record: schema newer than supported")
	}

	return r, nil
}
