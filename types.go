package sanctum

import (
	"io"

	internalaudit "github.com/nivora-app/sanctum/internal/audit"
	"github.com/nivora-app/sanctum/ticket"
)

// SecurityQuiz is the recovery challenge chosen at sign-up: a free-form
// question and its answer. Answers are matched case-insensitively.
type SecurityQuiz struct {
	Question string
	Answer   string
}

// SignInRequest carries the credentials for [Engine.SignIn]. Exactly one of
// Password or PIN must be set; the engine verifies the secret against the
// stored hash.
type SignInRequest struct {
	Username string
	Password string
	PIN      string
}

// SignUpRequest is the complete profile required by [Engine.SignUp].
type SignUpRequest struct {
	Username      string
	Email         string
	Password      string
	PIN           string
	SecurityImage string
	SecurityQuiz  SecurityQuiz
}

// ProfileUpdate is a partial update for [Engine.UpdateProfile] and
// [Engine.ResetCredentials]. Nil fields are left untouched. Secret fields
// are validated and hashed before storage.
type ProfileUpdate struct {
	Username      *string
	Email         *string
	Password      *string
	PIN           *string
	SecurityImage *string
	SecurityQuiz  *SecurityQuiz
}

// RecoveryChallenge is the proof a user submits to reset credentials: the
// security image they chose at sign-up and the quiz answer.
type RecoveryChallenge struct {
	SecurityImage string
	Answer        string
}

// State is the read-only public view of the session record. It never
// carries credential hashes.
type State struct {
	IsLoggedIn             bool
	IsGuest                bool
	IsUnlocked             bool
	Username               string
	Email                  string
	SecurityImage          string
	SecurityQuestion       string
	HasChangedUsername     bool
	HasChangedPassword     bool
	HasCompletedOnboarding bool
	NivoraID               string
}

// SecurityImage is one entry of the fixed recovery-image catalog.
type SecurityImage struct {
	ID    string
	Label string
}

// securityImageCatalog mirrors the six images offered by the app's sign-up
// and recovery screens.
var securityImageCatalog = []SecurityImage{
	{ID: "1", Label: "mountain"},
	{ID: "2", Label: "ocean"},
	{ID: "3", Label: "forest"},
	{ID: "4", Label: "sunset"},
	{ID: "5", Label: "moon"},
	{ID: "6", Label: "sparkles"},
}

// SecurityImages returns the fixed recovery-image catalog.
func SecurityImages() []SecurityImage {
	out := make([]SecurityImage, len(securityImageCatalog))
	copy(out, securityImageCatalog)
	return out
}

func validSecurityImage(id string) bool {
	for _, img := range securityImageCatalog {
		if img.ID == id {
			return true
		}
	}
	return false
}

// TicketClaims is the payload of a verified session ticket.
type TicketClaims = ticket.Claims

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
