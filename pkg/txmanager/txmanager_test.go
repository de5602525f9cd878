package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ForestReservationService/pkg/dbmetrics"
)

type stubTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (s *stubTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (s *stubTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (s *stubTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (s *stubTx) Commit() error {
	if s.commitErr != nil {
		return s.commitErr
	}
	s.committed = true
	return nil
}

func (s *stubTx) Rollback() error {
	s.rolledBack = true
	return nil
}

type stubBeginner struct {
	begun     []*stubTx
	commitErr error
}

func (b *stubBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &stubTx{commitErr: b.commitErr}
	b.begun = append(b.begun, tx)
	return tx, nil
}

func TestDo_CommitsAndRunsHooks(t *testing.T) {
	db := &stubBeginner{}
	m := NewTransactionManager(db)

	hookCalled := false
	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		AfterCommit(ctx, func() { hookCalled = true })
		assert.False(t, hookCalled)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, db.begun, 1)
	assert.True(t, db.begun[0].committed)
	assert.True(t, hookCalled)
}

func TestDo_RollsBackOnError(t *testing.T) {
	db := &stubBeginner{}
	m := NewTransactionManager(db)
	boom := errors.New("boom")

	hookCalled := false
	err := m.Do(context.Background(), func(ctx context.Context) error {
		AfterCommit(ctx, func() { hookCalled = true })
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.True(t, db.begun[0].rolledBack)
	assert.False(t, db.begun[0].committed)
	assert.False(t, hookCalled)
}

func TestDo_NestedJoinsOuterTransaction(t *testing.T) {
	db := &stubBeginner{}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.begun, 1)
}

func TestAfterCommit_OutsideTransactionRunsImmediately(t *testing.T) {
	called := false
	AfterCommit(context.Background(), func() { called = true })
	assert.True(t, called)
}

func TestDo_RunsRollbackHooksOnError(t *testing.T) {
	db := &stubBeginner{}
	m := NewTransactionManager(db)
	boom := errors.New("boom")

	var order []string
	err := m.Do(context.Background(), func(ctx context.Context) error {
		AfterRollback(ctx, func() { order = append(order, "first") })
		AfterRollback(ctx, func() { order = append(order, "second") })
		AfterCommit(ctx, func() { order = append(order, "commit") })
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestDo_RunsRollbackHooksOnCommitFailure(t *testing.T) {
	db := &stubBeginner{commitErr: errors.New("connection reset")}
	m := NewTransactionManager(db)

	rolledBack := false
	committed := false
	err := m.Do(context.Background(), func(ctx context.Context) error {
		AfterRollback(ctx, func() { rolledBack = true })
		AfterCommit(ctx, func() { committed = true })
		return nil
	})

	assert.ErrorIs(t, err, ErrCommitTx)
	assert.True(t, rolledBack)
	assert.False(t, committed)
}

func TestDo_RunsRollbackHooksOnPanic(t *testing.T) {
	db := &stubBeginner{}
	m := NewTransactionManager(db)

	rolledBack := false
	assert.Panics(t, func() {
		_ = m.Do(context.Background(), func(ctx context.Context) error {
			AfterRollback(ctx, func() { rolledBack = true })
			panic("boom")
		})
	})

	assert.True(t, rolledBack)
	assert.True(t, db.begun[0].rolledBack)
}

func TestDo_CommitDiscardsRollbackHooks(t *testing.T) {
	db := &stubBeginner{}
	m := NewTransactionManager(db)

	rolledBack := false
	err := m.Do(context.Background(), func(ctx context.Context) error {
		AfterRollback(ctx, func() { rolledBack = true })
		return nil
	})

	require.NoError(t, err)
	assert.False(t, rolledBack)
}

func TestAfterRollback_OutsideTransactionIsNoop(t *testing.T) {
	called := false
	AfterRollback(context.Background(), func() { called = true })
	assert.False(t, called)
}
