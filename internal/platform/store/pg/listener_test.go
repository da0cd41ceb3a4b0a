package pg

import (
	"testing"
	"time"

	"clientele/internal/platform/logger"
)

func TestListenerFanOut(t *testing.T) {
	l := NewListener(ListenerConfig{Channel: "clients_changed"}, *logger.Get())

	a := l.Subscribe()
	b := l.Subscribe()

	l.broadcast()

	for name, ch := range map[string]chan struct{}{"a": a, "b": b} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s did not receive ping", name)
		}
	}
}

func TestListenerCoalescesPings(t *testing.T) {
	l := NewListener(ListenerConfig{Channel: "clients_changed"}, *logger.Get())
	ch := l.Subscribe()

	// second ping must not block while the first is still pending
	l.broadcast()
	l.broadcast()

	<-ch
	select {
	case <-ch:
		t.Fatalf("expected coalesced pings, got two")
	default:
	}
}

func TestListenerUnsubscribeCloses(t *testing.T) {
	l := NewListener(ListenerConfig{Channel: "clients_changed"}, *logger.Get())
	ch := l.Subscribe()
	l.Unsubscribe(ch)
	if _, open := <-ch; open {
		t.Fatalf("expected closed channel after unsubscribe")
	}
	// double unsubscribe is a no-op
	l.Unsubscribe(ch)
}

func TestListenerCloseDropsSubscribers(t *testing.T) {
	l := NewListener(ListenerConfig{Channel: "clients_changed"}, *logger.Get())
	ch := l.Subscribe()
	l.Close()
	if _, open := <-ch; open {
		t.Fatalf("expected closed channel after Close")
	}
	// subscriptions after Close return a dead channel rather than panicking
	dead := l.Subscribe()
	l.broadcast()
	select {
	case <-dead:
		t.Fatalf("dead channel should receive nothing")
	default:
	}
}
