package sanctum

import (
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nivora-app/sanctum/internal/audit"
	"github.com/nivora-app/sanctum/internal/limiters"
	"github.com/nivora-app/sanctum/password"
	"github.com/nivora-app/sanctum/storage"
	"github.com/nivora-app/sanctum/ticket"
)

// Builder assembles an Engine. Obtain one with [New], chain the With*
// methods, then call Build.
type Builder struct {
	cfg       Config
	cfgSet    bool
	store     storage.Store
	auditSink audit.Sink
	logf      func(format string, args ...any)
	now       func() time.Time
}

// New returns a Builder with the default configuration.
func New() *Builder {
	return &Builder{}
}

// WithConfig replaces the whole configuration. Call it before the other
// With* methods if both are used.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cfg
	b.cfgSet = true
	return b
}

// WithStorage sets the persistence backend for session state and lockout
// counters.
func (b *Builder) WithStorage(store storage.Store) *Builder {
	b.store = store
	return b
}

// WithRedis is shorthand for WithStorage over a redis client.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.store = storage.NewRedis(client)
	return b
}

// WithAuditSink enables audit dispatch into the given sink.
func (b *Builder) WithAuditSink(sink audit.Sink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger redirects the engine's operational log lines. Defaults to the
// standard logger.
func (b *Builder) WithLogger(logf func(format string, args ...any)) *Builder {
	b.logf = logf
	return b
}

// WithClock overrides the time source. Intended for tests.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build validates the configuration and returns a ready Engine. The
// returned Engine still needs Load before session operations succeed.
func (b *Builder) Build() (*Engine, error) {
	cfg := b.cfg
	if !b.cfgSet {
		cfg = DefaultConfig()
	}
	if err := validateEngineConfig(cfg); err != nil {
		return nil, err
	}
	if b.store == nil {
		return nil, errors.New("storage backend is required")
	}

	hasher, err := password.NewArgon2(password.Config{
		Memory:           cfg.Password.Memory,
		Time:             cfg.Password.Time,
		Parallelism:      cfg.Password.Parallelism,
		SaltLength:       cfg.Password.SaltLength,
		KeyLength:        cfg.Password.KeyLength,
		MaxPasswordBytes: cfg.Password.MaxPasswordBytes,
	})
	if err != nil {
		return nil, err
	}

	now := b.now
	if now == nil {
		now = time.Now
	}

	logf := b.logf
	if logf == nil {
		logf = log.Printf
	}

	eng := &Engine{
		cfg:    cfg,
		store:  b.store,
		hasher: hasher,
		now:    now,
		logf:   logf,
	}

	eng.lockout = limiters.NewLockout(b.store, cfg.Storage.KeyPrefix, limiters.LockoutConfig{
		Enabled:   cfg.Lockout.Enabled,
		Threshold: cfg.Lockout.Threshold,
		Cooldown:  cfg.Lockout.Cooldown,
	}, now)

	if cfg.Ticket.Enabled {
		tm, err := ticket.NewManager(ticket.Config{
			Secret: cfg.Ticket.Secret,
			TTL:    cfg.Ticket.TTL,
			Issuer: cfg.Ticket.Issuer,
			Leeway: cfg.Ticket.Leeway,
		})
		if err != nil {
			return nil, err
		}
		eng.tickets = tm
	}

	eng.audit = audit.NewDispatcher(audit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)

	if cfg.Metrics.Enabled {
		eng.metrics = NewMetrics()
	}

	return eng, nil
}
