package repokit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"eltranslit/internal/platform/store"
	kit "eltranslit/internal/platform/testkit"
)

// fakeDB runs Tx bodies against itself and records the statements it sees
type fakeDB struct {
	store.TxRunner
	txErr error
	execs []string
	txs   int
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return nil, nil
}

func (f *fakeDB) Tx(_ context.Context, fn func(store.RowQuerier) error) error {
	f.txs++
	if err := fn(f); err != nil {
		return err
	}
	return f.txErr
}

type languageRepo struct{ q Queryer }

func (r languageRepo) Delete(ctx context.Context, code string) error {
	_, err := r.q.Exec(ctx, "DELETE FROM languages WHERE code = $1", code)
	return err
}

type repoBinder struct{}

func (repoBinder) Bind(q Queryer) languageRepo { return languageRepo{q: q} }

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	db := &fakeDB{}
	err := WithTx(ctx, db, func(q Queryer) error {
		return MustBind[languageRepo](repoBinder{}, q).Delete(ctx, "ru")
	})
	if err != nil || db.txs != 1 || len(db.execs) != 1 || !strings.HasPrefix(db.execs[0], "DELETE FROM languages") {
		t.Fatalf("err=%v txs=%d execs=%v", err, db.txs, db.execs)
	}

	boom := errors.New("constraint")
	if err := WithTx(ctx, db, func(Queryer) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("fn error lost: %v", err)
	}

	db.txErr = errors.New("commit failed")
	if err := WithTx(ctx, db, func(Queryer) error { return nil }); err == nil || err.Error() != "commit failed" {
		t.Fatalf("commit error lost: %v", err)
	}
}

func TestMustBind_NilQueryer(t *testing.T) {
	kit.MustPanic(t, func() { _ = MustBind[languageRepo](repoBinder{}, nil) })
}

type guardFunc func(context.Context) error

func (g guardFunc) Guard(ctx context.Context) error { return g(ctx) }

func TestMustGuard(t *testing.T) {
	MustGuard(context.Background(), guardFunc(func(context.Context) error { return nil }))

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !strings.Contains(err.Error(), "table store unreachable: sqlite: no such file") {
			t.Fatalf("panic = %v", r)
		}
	}()
	MustGuard(context.Background(), guardFunc(func(context.Context) error { return errors.New("sqlite: no such file") }))
}
