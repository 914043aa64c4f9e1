package sanctum

import (
	"errors"
	"time"
)

// Config tunes the session engine. Zero values are filled from
// [DefaultConfig] where a safe default exists; Build rejects the rest.
type Config struct {
	Storage  StorageConfig
	Password PasswordConfig
	Lockout  LockoutConfig
	Ticket   TicketConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

// StorageConfig controls the key layout in the persistence backend.
type StorageConfig struct {
	// KeyPrefix namespaces every key the engine writes (state blob and
	// lockout counters).
	KeyPrefix string
}

// PasswordConfig carries the argon2id parameters plus the sign-up entropy
// floor enforced before hashing.
type PasswordConfig struct {
	Memory           uint32 // in KB
	Time             uint32
	Parallelism      uint8
	SaltLength       uint32
	KeyLength        uint32
	MaxPasswordBytes int
	// MinEntropyBits is the minimum estimated password entropy accepted at
	// sign-up and credential reset.
	MinEntropyBits float64
}

// LockoutConfig bounds consecutive secret-verification failures. One shared
// policy covers sign-in, PIN unlock, and the recovery challenge; counters
// are tracked per operation.
type LockoutConfig struct {
	Enabled   bool
	Threshold int
	Cooldown  time.Duration
}

// TicketConfig enables short-lived proxy tickets minted after a successful
// sign-in or unlock. Disabled unless a secret is configured.
type TicketConfig struct {
	Enabled bool
	Secret  []byte
	TTL     time.Duration
	Issuer  string
	Leeway  time.Duration
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig toggles the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the parameters the mobile shell ships with:
// argon2id at 64 MB / t=3 / p=2, a 5-attempt lockout with a 5-minute
// cooldown, metrics on, audit and tickets off.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			KeyPrefix: "nv",
		},
		Password: PasswordConfig{
			Memory:         64 * 1024,
			Time:           3,
			Parallelism:    2,
			SaltLength:     16,
			KeyLength:      32,
			MinEntropyBits: 50,
		},
		Lockout: LockoutConfig{
			Enabled:   true,
			Threshold: 5,
			Cooldown:  5 * time.Minute,
		},
		Ticket: TicketConfig{
			Enabled: false,
			TTL:     10 * time.Minute,
			Issuer:  "sanctum",
			Leeway:  30 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func validateEngineConfig(cfg Config) error {
	if cfg.Storage.KeyPrefix == "" {
		return errors.New("storage key prefix must not be empty")
	}
	if cfg.Password.MinEntropyBits <= 0 {
		return errors.New("password entropy floor must be positive")
	}
	if cfg.Lockout.Enabled {
		if cfg.Lockout.Threshold < 1 {
			return errors.New("lockout threshold must be >= 1")
		}
		if cfg.Lockout.Cooldown <= 0 {
			return errors.New("lockout cooldown must be positive")
		}
	}
	return nil
}
