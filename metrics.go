package sanctum

import (
	"sync/atomic"
)

// MetricID identifies one engine counter.
type MetricID uint16

const (
	// MetricSignInSuccess counts accepted credential sign-ins.
	MetricSignInSuccess MetricID = iota
	// MetricSignInFailure counts rejected credential sign-ins.
	MetricSignInFailure
	// MetricSignInLockedOut counts sign-ins refused by the lockout window.
	MetricSignInLockedOut
	// MetricSignUpSuccess counts created accounts.
	MetricSignUpSuccess
	// MetricSignUpRejected counts sign-ups rejected by validation or policy.
	MetricSignUpRejected
	// MetricSignOut counts sign-outs.
	MetricSignOut
	// MetricGuestEntry counts guest session entries.
	MetricGuestEntry
	// MetricUnlockSuccess counts accepted PIN unlocks.
	MetricUnlockSuccess
	// MetricUnlockFailure counts rejected PIN unlocks.
	MetricUnlockFailure
	// MetricUnlockLockedOut counts unlocks refused by the lockout window.
	MetricUnlockLockedOut
	// MetricLock counts app re-locks.
	MetricLock
	// MetricProfileUpdated counts applied profile updates.
	MetricProfileUpdated
	// MetricOnboardingCompleted counts onboarding completions.
	MetricOnboardingCompleted
	// MetricRecoverySuccess counts accepted recovery challenges.
	MetricRecoverySuccess
	// MetricRecoveryFailure counts rejected recovery challenges.
	MetricRecoveryFailure
	// MetricTicketIssued counts proxy tickets minted.
	MetricTicketIssued
	// MetricGuardAllowed counts routes the guard let through.
	MetricGuardAllowed
	// MetricGuardRedirected counts routes the guard redirected to unlock.
	MetricGuardRedirected
	// MetricPersistFailure counts swallowed storage write failures.
	MetricPersistFailure
	metricIDCount
)

const cacheLineSize = 64

// paddedCounter keeps each counter on its own cache line so unrelated
// operations do not contend on writes.
type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is a fixed set of in-process counters. A nil *Metrics is valid
// and counts nothing, so disabled metrics cost one nil check per increment.
type Metrics struct {
	counters [metricIDCount]paddedCounter
}

// MetricsSnapshot is a point-in-time copy of every counter.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics returns an enabled counter set.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Inc adds one to the counter. No-op on a nil receiver or unknown id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value reads a single counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies all counters. The snapshot is not atomic across counters;
// each individual value is a consistent atomic read.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}

	s := MetricsSnapshot{
		Counters: make(map[MetricID]uint64, int(metricIDCount)),
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	return s
}
