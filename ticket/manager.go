package ticket

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const minSecretBytes = 32

var (
	// ErrTicketInvalid covers every verification failure: bad signature,
	// malformed token, wrong algorithm, expired.
	ErrTicketInvalid = errors.New("invalid session ticket")
)

// Config holds ticket signing parameters.
type Config struct {
	Secret []byte        // HS256 key, >= 32 bytes
	TTL    time.Duration // ticket lifetime
	Issuer string
	Leeway time.Duration // clock-skew tolerance on verification
}

// Claims is the ticket payload.
type Claims struct {
	NivoraID string `json:"nid,omitempty"`
	Guest    bool   `json:"gst,omitempty"`
	jwt.RegisteredClaims
}

// Manager issues and verifies tickets with a fixed configuration. Safe for
// concurrent use.
type Manager struct {
	config Config
}

// NewManager validates cfg and returns a ticket manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) < minSecretBytes {
		return nil, fmt.Errorf("ticket secret must be at least %d bytes", minSecretBytes)
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("ticket TTL must be positive")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("ticket leeway must be within [0, 2m]")
	}
	return &Manager{config: cfg}, nil
}

// Issue mints a ticket for the given identity. Guest sessions carry an empty
// nivora id and the guest flag.
func (m *Manager) Issue(nivoraID string, guest bool, now time.Time) (string, error) {
	claims := Claims{
		NivoraID: nivoraID,
		Guest:    guest,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.config.Secret)
	if err != nil {
		return "", fmt.Errorf("sign ticket: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a ticket, returning its claims.
func (m *Manager) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			return m.config.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithLeeway(m.config.Leeway),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrTicketInvalid
	}

	return claims, nil
}
