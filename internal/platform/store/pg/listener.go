package pg

import (
	"context"
	"sync"
	"time"

	"clientele/internal/platform/logger"

	"github.com/jackc/pgx/v5"
)

// ListenerConfig configures the LISTEN/NOTIFY subscription
type ListenerConfig struct {
	URL     string
	Channel string
}

// Listener holds a dedicated connection on LISTEN and fans payload-free pings
// out to subscribers. Notifications carry no payload guarantees beyond
// "something changed, re-fetch", so subscribers get an empty struct and are
// expected to re-query
type Listener struct {
	cfg ListenerConfig
	log logger.Logger

	mu     sync.RWMutex
	subs   map[chan struct{}]struct{}
	closed bool
}

// NewListener builds a Listener; Run must be called to start receiving
func NewListener(cfg ListenerConfig, log logger.Logger) *Listener {
	return &Listener{
		cfg:  cfg,
		log:  log.With().Str("component", "pgfeed").Logger(),
		subs: make(map[chan struct{}]struct{}),
	}
}

// Subscribe returns a channel that receives a ping when the watched table changed.
// The channel has capacity 1; coalesced pings are fine since subscribers re-fetch anyway.
// Callers must Unsubscribe when done
func (l *Listener) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	l.mu.Lock()
	if !l.closed {
		l.subs[ch] = struct{}{}
	}
	l.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscriber channel
func (l *Listener) Unsubscribe(ch chan struct{}) {
	l.mu.Lock()
	if _, ok := l.subs[ch]; ok {
		delete(l.subs, ch)
		close(ch)
	}
	l.mu.Unlock()
}

// Close drops all subscribers; Run exits on its context, not on Close
func (l *Listener) Close() {
	l.mu.Lock()
	l.closed = true
	for ch := range l.subs {
		delete(l.subs, ch)
		close(ch)
	}
	l.mu.Unlock()
}

// broadcast pings every subscriber without blocking
func (l *Listener) broadcast() {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for ch := range l.subs {
		select {
		case ch <- struct{}{}:
		default:
			// subscriber still has a pending ping, it will re-fetch anyway
		}
	}
}

// Run connects, LISTENs and blocks until ctx is done, reconnecting with
// backoff on connection loss. Intended to run on its own goroutine
func (l *Listener) Run(ctx context.Context) error {
	backoff := 250 * time.Millisecond
	const ceiling = 5 * time.Second

	for {
		if err := l.listenOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			l.log.Warn().Err(err).Dur("retry_in", backoff).Msg("change feed disconnected")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			if backoff < ceiling {
				backoff *= 2
				if backoff > ceiling {
					backoff = ceiling
				}
			}
			continue
		}
		return nil
	}
}

func (l *Listener) listenOnce(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.cfg.URL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close(context.Background()) }()

	if _, err := conn.Exec(ctx, "listen "+pgx.Identifier{l.cfg.Channel}.Sanitize()); err != nil {
		return err
	}
	l.log.Info().Str("channel", l.cfg.Channel).Msg("change feed listening")

	for {
		if _, err := conn.WaitForNotification(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		l.broadcast()
	}
}
