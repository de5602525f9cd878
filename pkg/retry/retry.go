package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

var (
	// ErrMaxRetriesExceeded возвращается, когда попытки исчерпаны
	ErrMaxRetriesExceeded = errors.New("retry: max retries exceeded")

	// ErrContextCanceled возвращается, когда контекст отменен во время ожидания
	ErrContextCanceled = errors.New("retry: context canceled")
)

// Config параметры экспоненциального backoff
type Config struct {
	MaxRetries      int           // 0 = только первая попытка
	InitialInterval time.Duration // интервал перед первым повтором
	MaxInterval     time.Duration // верхняя граница интервала
	Multiplier      float64       // множитель интервала после каждой попытки
	JitterFactor    float64       // 0..1, разброс интервала (0.1 = ±10%)
}

// DefaultConfig 1s, 2s, 4s, 8s, 16s с jitter ±10%
func DefaultConfig() Config {
	return Config{
		MaxRetries:      5,
		InitialInterval: time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
		JitterFactor:    0.1,
	}
}

// Operation повторяемая операция
type Operation func(ctx context.Context) error

// Callback вызывается перед каждым повтором
type Callback func(attempt int, err error, next time.Duration)

// PermanentError ошибка, после которой повторять бессмысленно
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent помечает ошибку как неповторяемую
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// Result итог выполнения операции с повторами
type Result struct {
	Err       error // nil при успехе
	LastError error // ошибка последней попытки
	Attempts  int
}

// Retrier выполняет операции с экспоненциальным backoff
type Retrier struct {
	cfg Config
}

// New создает Retrier, подставляя значения по умолчанию для нулевых полей
func New(cfg Config) *Retrier {
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = time.Second
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 30 * time.Second
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = 2.0
	}
	if cfg.JitterFactor < 0 {
		cfg.JitterFactor = 0
	}
	if cfg.JitterFactor > 1 {
		cfg.JitterFactor = 1
	}
	return &Retrier{cfg: cfg}
}

// Do выполняет op, повторяя при ошибках
func (r *Retrier) Do(ctx context.Context, op Operation, callback Callback) *Result {
	result := &Result{}
	var lastErr error

	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		result.Attempts = attempt + 1

		if ctx.Err() != nil {
			result.Err = ErrContextCanceled
			result.LastError = lastErr
			return result
		}

		err := op(ctx)
		if err == nil {
			return result
		}
		lastErr = err

		var permErr *PermanentError
		if errors.As(err, &permErr) {
			result.Err = permErr.Err
			result.LastError = permErr.Err
			return result
		}

		if attempt == r.cfg.MaxRetries {
			break
		}

		interval := r.interval(attempt)
		if callback != nil {
			callback(attempt+1, err, interval)
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			result.Err = ErrContextCanceled
			result.LastError = lastErr
			return result
		case <-timer.C:
		}
	}

	result.Err = ErrMaxRetriesExceeded
	result.LastError = lastErr
	return result
}

// interval initial * multiplier^attempt с jitter, ограниченный MaxInterval
func (r *Retrier) interval(attempt int) time.Duration {
	interval := float64(r.cfg.InitialInterval) * math.Pow(r.cfg.Multiplier, float64(attempt))

	if r.cfg.JitterFactor > 0 {
		jitter := interval * r.cfg.JitterFactor
		interval += (rand.Float64()*2 - 1) * jitter
	}

	if interval > float64(r.cfg.MaxInterval) {
		interval = float64(r.cfg.MaxInterval)
	}
	if interval < 0 {
		interval = float64(r.cfg.InitialInterval)
	}

	return time.Duration(interval)
}

// Do удобная обертка: New(cfg).Do(ctx, op, callback)
func Do(ctx context.Context, cfg Config, op Operation, callback Callback) *Result {
	return New(cfg).Do(ctx, op, callback)
}
