package infra

import (
	"errors"
	"sync"
	"time"
)

// ── Breaker ───────────────────────────────────────────────────────────────────
// Guards calls to the persistent store. Closed lets calls through; after
// FailureThreshold consecutive unavailability errors it opens and every call
// fails fast for OpenTimeout; then a half-open probe decides whether to close.

type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrBreakerOpen is returned without calling fn while the breaker is open.
var ErrBreakerOpen = errors.New("breaker open: persistent store skipped")

type BreakerConfig struct {
	FailureThreshold int
	SuccessThreshold int
	OpenTimeout      time.Duration
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 1,
		OpenTimeout:      30 * time.Second,
	}
}

type Breaker struct {
	mu        sync.Mutex
	cfg       BreakerConfig
	state     BreakerState
	failures  int
	successes int
	openedAt  time.Time
	now       func() time.Time
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	def := DefaultBreakerConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &Breaker{cfg: cfg, now: time.Now}
}

// State reports the current state, moving open → half-open once the timeout
// has elapsed.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

func (b *Breaker) stateLocked() BreakerState {
	if b.state == BreakerOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		b.state = BreakerHalfOpen
		b.successes = 0
	}
	return b.state
}

// Execute runs fn unless the breaker is open. Only errors for which
// countsAsFailure returns true move the breaker toward open; a nil
// countsAsFailure counts every error.
func (b *Breaker) Execute(fn func() error, countsAsFailure func(error) bool) error {
	if b.State() == BreakerOpen {
		return ErrBreakerOpen
	}

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil && (countsAsFailure == nil || countsAsFailure(err)) {
		b.onFailure()
	} else {
		b.onSuccess()
	}
	return err
}

func (b *Breaker) onFailure() {
	b.failures++
	switch b.state {
	case BreakerClosed:
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case BreakerHalfOpen:
		b.trip()
	}
}

func (b *Breaker) onSuccess() {
	switch b.state {
	case BreakerClosed:
		b.failures = 0
	case BreakerHalfOpen:
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.state = BreakerClosed
			b.failures = 0
			b.successes = 0
		}
	}
}

func (b *Breaker) trip() {
	b.state = BreakerOpen
	b.openedAt = b.now()
	b.failures = 0
	b.successes = 0
}
