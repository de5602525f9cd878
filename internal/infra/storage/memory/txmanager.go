package memory

import (
	"context"
	"sync"

	"github.com/m04kA/ForestReservationService/pkg/txmanager"
)

type txKey struct{}

// tx журнал отмены изменений текущей транзакции
type tx struct {
	mu   sync.Mutex
	undo []func()
}

func (t *tx) record(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.undo = append(t.undo, fn)
}

func (t *tx) rollback() {
	t.mu.Lock()
	undo := t.undo
	t.undo = nil
	t.mu.Unlock()

	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
}

func txFromContext(ctx context.Context) (*tx, bool) {
	t, ok := ctx.Value(txKey{}).(*tx)
	return t, ok
}

// TxManager сериализует транзакции хранилища в памяти
// При ошибке изменения, сделанные внутри транзакции, откатываются по журналу
type TxManager struct {
	store *Store
}

// Do выполняет fn как транзакцию
// Вложенный вызов выполняется в уже открытой транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	t := &tx{}
	txCtx, hooks := txmanager.WithHooks(context.WithValue(ctx, txKey{}, t))

	defer func() {
		if p := recover(); p != nil {
			hooks.RunRollback()
			panic(p)
		}
	}()

	if err = m.run(txCtx, t, fn); err != nil {
		hooks.RunRollback()
		return err
	}

	hooks.RunCommit()
	return nil
}

// run держит блокировку хранилища на время fn, колбэки выполняются уже после ее снятия
func (m *TxManager) run(ctx context.Context, t *tx, fn func(ctx context.Context) error) (err error) {
	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			t.rollback()
			panic(p)
		}
	}()

	if err = fn(ctx); err != nil {
		t.rollback()
		return err
	}
	return nil
}

// DoSerializable то же, что Do: транзакции в памяти всегда выполняются последовательно
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// write выполняет изменение хранилища
// Вне транзакции изменение ждет завершения открытой транзакции, как строка под FOR UPDATE
func (s *Store) write(ctx context.Context, fn func() error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn()
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn()
}

// journal регистрирует отмену изменения, если запрос выполняется в транзакции
func journal(ctx context.Context, undo func()) {
	if t, ok := txFromContext(ctx); ok {
		t.record(undo)
	}
}
