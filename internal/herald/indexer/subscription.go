package indexer

import (
	"context"
	"errors"
	"log"
	"time"
)

// ErrRetryBudgetExhausted reports that the manager gave up reconnecting.
// The process supervisor is expected to restart the service.
var ErrRetryBudgetExhausted = errors.New("indexer: reconnect budget exhausted")

const (
	defaultInitialBackoff = time.Second
	defaultMaxBackoff     = 60 * time.Second
	defaultMaxTries       = 200
)

// ManagerConfig tunes the reconnect behavior of the subscription manager.
type ManagerConfig struct {
	// InitialBackoff is the first reconnect delay. Doubles per failure.
	InitialBackoff time.Duration
	// MaxBackoff caps the reconnect delay.
	MaxBackoff time.Duration
	// MaxTries is the consecutive-failure budget before giving up.
	MaxTries int
	// Logf receives diagnostics. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

func (c ManagerConfig) normalized() ManagerConfig {
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = defaultInitialBackoff
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = defaultMaxBackoff
	}
	if c.MaxTries <= 0 {
		c.MaxTries = defaultMaxTries
	}
	if c.Logf == nil {
		c.Logf = log.Printf
	}
	return c
}

// Manager owns the indexer subscription. It keeps a filtered entity
// stream open, forwarding each streamed model record into the outbound
// mailbox, and reconnects with bounded exponential backoff when the
// stream fails. A full mailbox suspends the manager; it never drops
// records on its own.
type Manager struct {
	client Client
	filter Filter
	out    chan<- Record
	cfg    ManagerConfig

	// wait is injected by tests to observe backoff delays.
	wait func(ctx context.Context, delay time.Duration) bool
}

// NewManager builds a subscription manager that forwards records into out.
func NewManager(client Client, filter Filter, out chan<- Record, cfg ManagerConfig) *Manager {
	return &Manager{
		client: client,
		filter: filter,
		out:    out,
		cfg:    cfg.normalized(),
		wait:   waitRetry,
	}
}

// Run drives the subscription until the context ends or the retry
// budget is exhausted. Only connect failures and stream termination
// count against the budget; malformed stream items are logged and
// skipped.
func (m *Manager) Run(ctx context.Context) error {
	backoff := m.cfg.InitialBackoff
	tries := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		stream, err := m.client.Subscribe(ctx, m.filter)
		if err != nil {
			m.cfg.Logf("indexer: subscribe failed (try %d): %v", tries+1, err)
		} else {
			// Streaming: reset the budget, then drain until failure.
			backoff = m.cfg.InitialBackoff
			tries = 0
			drainErr := m.drain(ctx, stream)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			m.cfg.Logf("indexer: stream ended: %v", drainErr)
		}

		tries++
		if tries >= m.cfg.MaxTries {
			return ErrRetryBudgetExhausted
		}
		if !m.wait(ctx, backoff) {
			return ctx.Err()
		}
		backoff = nextBackoff(backoff, m.cfg.MaxBackoff)
	}
}

func (m *Manager) drain(ctx context.Context, stream Stream) error {
	for {
		entity, err := stream.Recv()
		if err != nil {
			if errors.Is(err, ErrMalformedEntity) {
				m.cfg.Logf("indexer: skipping malformed entity: %v", err)
				continue
			}
			return err
		}
		for _, record := range entity.Records {
			select {
			case m.out <- record:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func nextBackoff(current, max time.Duration) time.Duration {
	next := current * 2
	if next > max {
		return max
	}
	return next
}

func waitRetry(ctx context.Context, delay time.Duration) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
