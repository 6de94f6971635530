// Package repokit connects repositories to the table stores
package repokit

import (
	"context"
	"fmt"

	"eltranslit/internal/platform/store"
)

// Queryer is the read and write surface repos use
type Queryer = store.RowQuerier

// TxRunner can run a function inside a transaction
type TxRunner = store.TxRunner

// WithTx runs fn inside a transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

type guarder interface {
	Guard(context.Context) error
}

// MustGuard pings every configured store and panics on failure (service startup)
func MustGuard(ctx context.Context, st guarder) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("table store unreachable: %w", err))
	}
}
