package txmanager

import (
	"context"
	"sync"
)

type hooksKey struct{}

// Hooks колбэки, которые выполняются после завершения транзакции
type Hooks struct {
	mu         sync.Mutex
	onCommit   []func()
	onRollback []func()
}

func (h *Hooks) addCommit(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCommit = append(h.onCommit, fn)
}

func (h *Hooks) addRollback(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRollback = append(h.onRollback, fn)
}

// take забирает накопленные колбэки, повторный запуск ничего не делает
func (h *Hooks) take() (commit, rollback []func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	commit, rollback = h.onCommit, h.onRollback
	h.onCommit, h.onRollback = nil, nil
	return commit, rollback
}

// RunCommit запускает колбэки AfterCommit, колбэки AfterRollback отбрасываются
func (h *Hooks) RunCommit() {
	commit, _ := h.take()
	for _, fn := range commit {
		fn()
	}
}

// RunRollback запускает колбэки AfterRollback в обратном порядке регистрации
func (h *Hooks) RunRollback() {
	_, rollback := h.take()
	for i := len(rollback) - 1; i >= 0; i-- {
		rollback[i]()
	}
}

// WithHooks создает в контексте списки колбэков транзакции
func WithHooks(ctx context.Context) (context.Context, *Hooks) {
	h := &Hooks{}
	return context.WithValue(ctx, hooksKey{}, h), h
}

// AfterCommit регистрирует fn на выполнение после коммита текущей транзакции
// Вне транзакции fn выполняется сразу
func AfterCommit(ctx context.Context, fn func()) {
	if h, ok := ctx.Value(hooksKey{}).(*Hooks); ok {
		h.addCommit(fn)
		return
	}
	fn()
}

// AfterRollback регистрирует fn на выполнение после отката текущей транзакции
// Вне транзакции откатывать нечего, fn не вызывается
func AfterRollback(ctx context.Context, fn func()) {
	if h, ok := ctx.Value(hooksKey{}).(*Hooks); ok {
		h.addRollback(fn)
	}
}

// HasHooks сообщает, открыт ли в контексте список колбэков
func HasHooks(ctx context.Context) bool {
	_, ok := ctx.Value(hooksKey{}).(*Hooks)
	return ok
}
