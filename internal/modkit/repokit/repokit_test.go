package repokit

import (
	"context"
	"errors"
	"testing"

	"clientele/internal/platform/store"
	"clientele/internal/platform/testkit"
)

type nopQueryer struct{}

func (nopQueryer) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (nopQueryer) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (nopQueryer) QueryRow(context.Context, string, ...any) store.Row             { return nil }

// countingTx forwards to fn with its own queryer and counts entries
type countingTx struct {
	nopQueryer
	q      Queryer
	err    error
	called int
}

func (c *countingTx) Tx(_ context.Context, fn func(q Queryer) error) error {
	c.called++
	if fn != nil {
		if err := fn(c.q); err != nil {
			return err
		}
	}
	return c.err
}

func TestWithTx_PassesBoundQueryer(t *testing.T) {
	t.Parallel()

	q := nopQueryer{}
	tx := &countingTx{q: q}

	err := WithTx(context.Background(), tx, func(got Queryer) error {
		if got != Queryer(q) {
			t.Fatalf("fn received a different queryer")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("with tx: %v", err)
	}
	if tx.called != 1 {
		t.Fatalf("tx entered %d times, want 1", tx.called)
	}
}

func TestWithTx_PropagatesErrors(t *testing.T) {
	t.Parallel()

	fnErr := errors.New("fn failed")
	tx := &countingTx{q: nopQueryer{}}
	if err := WithTx(context.Background(), tx, func(Queryer) error { return fnErr }); !errors.Is(err, fnErr) {
		t.Fatalf("fn error not propagated: %v", err)
	}

	txErr := errors.New("commit failed")
	tx = &countingTx{q: nopQueryer{}, err: txErr}
	if err := WithTx(context.Background(), tx, func(Queryer) error { return nil }); !errors.Is(err, txErr) {
		t.Fatalf("runner error not propagated: %v", err)
	}
}

func TestBindFunc_CallsThrough(t *testing.T) {
	t.Parallel()

	b := BindFunc[string](func(Queryer) string { return "bound" })
	if got := b.Bind(nopQueryer{}); got != "bound" {
		t.Fatalf("bind = %q, want bound", got)
	}
}

func TestMustBind_RejectsNilQueryer(t *testing.T) {
	t.Parallel()

	b := BindFunc[int](func(Queryer) int { return 1 })
	testkit.MustPanic(t, func() { MustBind(b, nil) })

	if got := MustBind(b, nopQueryer{}); got != 1 {
		t.Fatalf("must bind = %d, want 1", got)
	}
}

func TestRequireQueryer(t *testing.T) {
	t.Parallel()

	testkit.MustPanic(t, func() { RequireQueryer(nil) })

	in := Queryer(nopQueryer{})
	if out := RequireQueryer(in); out != in {
		t.Fatalf("require queryer did not return the same instance")
	}
}

func TestPassthroughHandles(t *testing.T) {
	t.Parallel()

	q := Queryer(nopQueryer{})
	if got := PG(context.Background(), q); got != q {
		t.Fatalf("PG should hand back the same queryer")
	}

	tx := TxRunner(&countingTx{})
	if got := TX(context.Background(), tx); got != tx {
		t.Fatalf("TX should hand back the same runner")
	}
}
