// internal/repository/postgres/db_test.go
package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx records the commit/rollback outcome; the embedded interface
// covers the methods withTx never touches.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit(context.Context) error { f.committed = true; return nil }

func (f *fakeTx) Rollback(context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (f *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tx, nil
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}

	err := withTx(context.Background(), db, func(pgx.Tx) error { return nil })
	require.NoError(t, err)

	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	boom := errors.New("constraint violation")

	err := withTx(context.Background(), db, func(pgx.Tx) error { return boom })
	require.ErrorIs(t, err, boom)

	assert.False(t, db.tx.committed)
	assert.True(t, db.tx.rolledBack)
}

func TestWithTxBeginFailure(t *testing.T) {
	db := &fakeBeginner{err: errors.New("pool exhausted")}

	called := false
	err := withTx(context.Background(), db, func(pgx.Tx) error { called = true; return nil })

	require.Error(t, err)
	assert.False(t, called)
}
