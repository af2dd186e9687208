package domain

import "context"

// ReaderPort exposes typed period-scoped settings to other modules.
// The boolean return is false when no row exists for (period, key);
// a stored row whose kind or value does not match the requested type
// yields a configuration error instead
type ReaderPort interface {
	Float(ctx context.Context, periodID, key string) (float64, bool, error)
	IntList(ctx context.Context, periodID, key string) ([]int, bool, error)
	Bool(ctx context.Context, periodID, key string) (bool, bool, error)
	String(ctx context.Context, periodID, key string) (string, bool, error)
}
