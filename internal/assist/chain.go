package assist

import "context"

// Attempt is one entry in an ordered fallback chain.
type Attempt[T any] struct {
	Name   string
	Invoke func(ctx context.Context) (T, error)
}

// RunChain tries each attempt in order and returns the first success along
// with the name of the attempt that produced it. A recoverable error advances
// the chain; any other error stops it immediately. When every attempt fails
// recoverably, the last error is returned. Attempts are strictly sequential:
// the next provider is only contacted after the previous one definitively
// failed.
func RunChain[T any](ctx context.Context, attempts []Attempt[T]) (T, string, error) {
	var zero T
	var lastErr error
	for _, a := range attempts {
		if err := ctx.Err(); err != nil {
			return zero, "", err
		}
		v, err := a.Invoke(ctx)
		if err == nil {
			return v, a.Name, nil
		}
		if !Recoverable(err) {
			return zero, a.Name, err
		}
		lastErr = err
	}
	return zero, "", lastErr
}
