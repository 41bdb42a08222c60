package dbmetrics

import "context"

type executorCtxKey struct{}

// WithExecutor кладёт исполнителя (обычно транзакцию) в context.
// Репозитории достают его через GetExecutor и тем самым прозрачно
// участвуют в транзакции, открытой выше по стеку.
func WithExecutor(ctx context.Context, exec DBExecutor) context.Context {
	return context.WithValue(ctx, executorCtxKey{}, exec)
}

// GetExecutor возвращает исполнителя из context или fallback, если его там нет
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if exec, ok := ctx.Value(executorCtxKey{}).(DBExecutor); ok {
		return exec
	}
	return fallback
}

// IsInTransaction returns true if the context carries an active transaction
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(executorCtxKey{}).(TxExecutor)
	return ok
}
